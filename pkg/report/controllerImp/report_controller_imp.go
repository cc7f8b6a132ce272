package controllerImp

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/middleware"
	"minascan/pkg/report/controller"
	"minascan/pkg/report/service"
	"minascan/pkg/validation"
)

type EmployeeLister interface {
	EmployeeIDs(boss *entities.User) ([]uint, error)
}

type ReportCtrl struct {
	s     service.ReportService
	staff EmployeeLister
}

func New(s service.ReportService, staff EmployeeLister) controller.ReportController {
	return &ReportCtrl{s: s, staff: staff}
}

func (h *ReportCtrl) Create(c echo.Context) error {
	var req service.CreateInput
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	rep, err := h.s.Create(middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusCreated, rep)
}

// POST /reports/generate-ai
func (h *ReportCtrl) GenerateAI(c echo.Context) error {
	var req service.GenerateInput
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	rep, err := h.s.GenerateAI(c.Request().Context(), middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *ReportCtrl) List(c echo.Context) error {
	list, err := h.s.List(middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReportCtrl) Get(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	rep, err := h.s.Get(id, middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportCtrl) Update(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req service.ReportPatch
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	rep, err := h.s.Update(id, middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *ReportCtrl) Delete(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.Delete(id, middleware.UID(c)); err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Reporte eliminado exitosamente"})
}

// POST /reports/:id/export-pdf
func (h *ReportCtrl) ExportPDF(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	path, err := h.s.ExportPDF(id, middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// GET /reports/boss/employees
func (h *ReportCtrl) EmployeeReports(c echo.Context) error {
	ids, err := h.staff.EmployeeIDs(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	list, err := h.s.ListForUsers(ids)
	if err != nil {
		return apperr.Respond(c, "report", err)
	}
	return c.JSON(http.StatusOK, list)
}
