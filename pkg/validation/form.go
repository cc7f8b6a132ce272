package validation

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// MaxUploadBytes bounds uploaded files.
const MaxUploadBytes = 10 << 20

func invalid(name string) error {
	return httpError(http.StatusUnprocessableEntity, "invalid "+name)
}

func httpError(status int, msg string) error {
	return echo.NewHTTPError(status, map[string]string{"error": msg})
}

// Upload reads a multipart file and its declared content type, sniffing
// the type when the client sent none.
func Upload(c echo.Context, name string) ([]byte, string, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, "", httpError(http.StatusBadRequest, name+" is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", httpError(http.StatusBadRequest, "could not read "+name)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, "", httpError(http.StatusBadRequest, "could not read "+name)
	}
	if len(data) > MaxUploadBytes {
		return nil, "", httpError(http.StatusRequestEntityTooLarge, name+" too large")
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return data, ct, nil
}

// FormValue reads a form field, falling back to the query string.
func FormValue(c echo.Context, name string) string {
	if v := c.FormValue(name); v != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.QueryParam(name))
}

// OptionalUint returns nil when the field is absent.
func OptionalUint(c echo.Context, name string) (*uint, error) {
	raw := FormValue(c, name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, invalid(name)
	}
	v := uint(n)
	return &v, nil
}

func RequiredUint(c echo.Context, name string) (uint, error) {
	v, err := OptionalUint(c, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, httpError(http.StatusUnprocessableEntity, name+" is required")
	}
	return *v, nil
}

func OptionalFloat(c echo.Context, name string) (*float64, error) {
	raw := FormValue(c, name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(name)
	}
	return &f, nil
}

// Bool parses true/false style flags; def applies when the field is absent.
func Bool(c echo.Context, name string, def bool) (bool, error) {
	raw := FormValue(c, name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return def, invalid(name)
	}
	return b, nil
}
