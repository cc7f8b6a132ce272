package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/field/controller"
	"minascan/pkg/field/service"
	"minascan/pkg/middleware"
	"minascan/pkg/validation"
)

// EmployeeLister resolves a boss's linked employees.
type EmployeeLister interface {
	EmployeeIDs(boss *entities.User) ([]uint, error)
}

type FieldCtrl struct {
	s     service.FieldService
	staff EmployeeLister
}

func New(s service.FieldService, staff EmployeeLister) controller.FieldController {
	return &FieldCtrl{s: s, staff: staff}
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req service.FieldInput
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	f, err := h.s.Create(middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	list, err := h.s.List(middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.s.Get(id, middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Update(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req service.FieldPatch
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	f, err := h.s.Update(id, middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Delete(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.Delete(id, middleware.UID(c)); err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Campo eliminado exitosamente"})
}

func (h *FieldCtrl) EmployeeFields(c echo.Context) error {
	ids, err := h.staff.EmployeeIDs(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	list, err := h.s.ListForUsers(ids)
	if err != nil {
		return apperr.Respond(c, "field", err)
	}
	return c.JSON(http.StatusOK, list)
}
