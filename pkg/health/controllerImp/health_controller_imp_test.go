package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"minascan/pkg/testutil"
)

func call(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return rec.Code, body
}

func TestHealthOK(t *testing.T) {
	db := testutil.NewDB(t)
	code, body := call(t, NewHealthCtrl(db, map[string]Check{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}))
	if code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
	checks := body["checks"].(map[string]any)
	if checks["database"].(map[string]any)["ok"] != true {
		t.Errorf("Expected database ok, got %v", checks["database"])
	}
	if checks["redis"].(map[string]any)["err"] != "connection refused" {
		t.Errorf("Expected redis error reported, got %v", checks["redis"])
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	code, _ := call(t, NewHealthCtrl(db, nil))
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", code)
	}
	code, _ = call(t, NewHealthCtrl(nil, nil))
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without db, got %d", code)
	}
}
