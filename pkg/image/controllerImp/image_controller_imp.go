package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minascan/pkg/apperr"
	"minascan/pkg/image/controller"
	"minascan/pkg/image/service"
	"minascan/pkg/middleware"
	"minascan/pkg/validation"
)

type ImageCtrl struct {
	s service.ImageService
}

func New(s service.ImageService) controller.ImageController {
	return &ImageCtrl{s: s}
}

// POST /photo/upload
func (h *ImageCtrl) Upload(c echo.Context) error {
	data, ct, err := validation.Upload(c, "file")
	if err != nil {
		return err
	}
	pct, err := validation.OptionalFloat(c, "porcentaje_plaga")
	if err != nil {
		return err
	}
	if pct == nil {
		if pct, err = validation.OptionalFloat(c, "plague_percentage"); err != nil {
			return err
		}
	}
	detectionID, err := validation.OptionalUint(c, "detection_id")
	if err != nil {
		return err
	}
	fh, _ := c.FormFile("file")

	in := service.UploadInput{
		FileName:    fh.Filename,
		ContentType: ct,
		Data:        data,
		DetectionID: detectionID,
	}
	if pct != nil {
		in.PlaguePercentage = *pct
	}
	img, err := h.s.Upload(c.Request().Context(), middleware.UID(c), in)
	if err != nil {
		return apperr.Respond(c, "image", err)
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *ImageCtrl) List(c echo.Context) error {
	list, err := h.s.List(middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "image", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ImageCtrl) Get(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	img, err := h.s.Get(id, middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "image", err)
	}
	return c.JSON(http.StatusOK, img)
}

// PATCH /photo/:id/validation
func (h *ImageCtrl) SetValidation(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req service.ValidationPatch
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	img, err := h.s.SetValidation(id, middleware.UID(c), req)
	if err != nil {
		return apperr.Respond(c, "image", err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *ImageCtrl) Delete(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.Delete(c.Request().Context(), id, middleware.UID(c)); err != nil {
		return apperr.Respond(c, "image", err)
	}
	return c.NoContent(http.StatusNoContent)
}
