package validation

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func formContext(t *testing.T, fields map[string]string, file []byte) echo.Context {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", "leaf.bin")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(file)
	}
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/?field_id=7", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func status(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

func TestUpload(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	data, ct, err := Upload(formContext(t, nil, png), "file")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, png) {
		t.Errorf("Expected file bytes back")
	}
	if ct != "image/png" {
		t.Errorf("Expected sniffed image/png, got %s", ct)
	}

	if _, _, err := Upload(formContext(t, nil, nil), "file"); status(err) != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing file, got %v", err)
	}

	big := []byte(strings.Repeat("a", MaxUploadBytes+1))
	if _, _, err := Upload(formContext(t, nil, big), "file"); status(err) != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for oversized file, got %v", err)
	}
}

func TestFormHelpers(t *testing.T) {
	c := formContext(t, map[string]string{"pct": " 12.5 ", "flag": "TRUE", "bad": "x", "zero": "0"}, nil)

	id, err := OptionalUint(c, "field_id")
	if err != nil || id == nil || *id != 7 {
		t.Errorf("Expected field_id 7 from query, got %v (%v)", id, err)
	}
	if v, err := OptionalUint(c, "missing"); v != nil || err != nil {
		t.Errorf("Expected nil for absent value, got %v (%v)", v, err)
	}
	if _, err := OptionalUint(c, "zero"); status(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for zero id, got %v", err)
	}
	if _, err := RequiredUint(c, "missing"); status(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for missing required id, got %v", err)
	}

	pct, err := OptionalFloat(c, "pct")
	if err != nil || pct == nil || *pct != 12.5 {
		t.Errorf("Expected 12.5, got %v (%v)", pct, err)
	}
	if _, err := OptionalFloat(c, "bad"); status(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for bad float, got %v", err)
	}

	if b, err := Bool(c, "flag", false); err != nil || !b {
		t.Errorf("Expected true, got %v (%v)", b, err)
	}
	if b, _ := Bool(c, "missing", true); !b {
		t.Errorf("Expected default true")
	}
	if _, err := Bool(c, "bad", false); status(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for bad bool, got %v", err)
	}
}
