package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Check probes one dependency; a nil error means healthy.
type Check func(ctx context.Context) error

type HealthCtrl struct {
	db     *gorm.DB
	extras map[string]Check
}

// NewHealthCtrl always checks the database; extras are reported next to it.
func NewHealthCtrl(db *gorm.DB, extras map[string]Check) *HealthCtrl {
	return &HealthCtrl{db: db, extras: extras}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

// GET /health
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	checks := map[string]sub{"database": db}
	for name, check := range h.extras {
		s := sub{OK: true}
		if err := check(ctx); err != nil {
			s = sub{Err: err.Error()}
		}
		checks[name] = s
	}

	// only the database decides availability
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
