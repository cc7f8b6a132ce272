package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"minascan/pkg/apperr"
	"minascan/pkg/detection/controller"
	"minascan/pkg/detection/service"
	"minascan/pkg/middleware"
	"minascan/pkg/validation"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DetectionCtrl struct {
	s service.DetectionService
}

func New(s service.DetectionService) controller.DetectionController {
	return &DetectionCtrl{s: s}
}

// POST /detection/detect-pests
func (h *DetectionCtrl) DetectPests(c echo.Context) error {
	data, ct, err := validation.Upload(c, "file")
	if err != nil {
		return err
	}
	returnImage, err := validation.Bool(c, "return_image", true)
	if err != nil {
		return err
	}
	fieldID, err := validation.OptionalUint(c, "field_id")
	if err != nil {
		return err
	}
	pct, err := validation.OptionalFloat(c, "plague_percentage")
	if err != nil {
		return err
	}

	res, err := h.s.Analyze(c.Request().Context(), middleware.UID(c), service.AnalyzeInput{
		Image:            data,
		ContentType:      ct,
		ReturnImage:      returnImage,
		FieldID:          fieldID,
		PlaguePercentage: pct,
	})
	if err != nil {
		return apperr.Respond(c, "detection", err)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /detection/save_detection (form)
func (h *DetectionCtrl) Save(c echo.Context) error {
	fieldID, err := validation.RequiredUint(c, "field_id")
	if err != nil {
		return err
	}
	imageID, err := validation.OptionalUint(c, "image_id")
	if err != nil {
		return err
	}
	pct, err := validation.OptionalFloat(c, "plague_percentage")
	if err != nil {
		return err
	}
	in := service.SaveInput{
		FieldID:         fieldID,
		ImageID:         imageID,
		Result:          validation.FormValue(c, "result"),
		PredictionValue: validation.FormValue(c, "prediction_value"),
		TimeInitial:     validation.FormValue(c, "time_initial"),
		TimeFinal:       validation.FormValue(c, "time_final"),
		DateDetection:   validation.FormValue(c, "date_detection"),
	}
	if pct != nil {
		in.PlaguePercentage = *pct
	}
	for _, f := range []struct{ name, value string }{
		{"result", in.Result},
		{"prediction_value", in.PredictionValue},
		{"time_initial", in.TimeInitial},
		{"time_final", in.TimeFinal},
		{"date_detection", in.DateDetection},
	} {
		if f.value == "" {
			return apperr.JSON(c, http.StatusUnprocessableEntity, f.name+" is required")
		}
	}

	d, err := h.s.Save(middleware.UID(c), in)
	if err != nil {
		return apperr.Respond(c, "detection", err)
	}
	return c.JSON(http.StatusCreated, service.SaveResponse{
		IDDetection:     d.ID,
		Plaga:           d.Result,
		PredictionValue: d.PredictionValue,
	})
}

// GET /detection?field_id=
func (h *DetectionCtrl) List(c echo.Context) error {
	fieldID, err := validation.OptionalUint(c, "field_id")
	if err != nil {
		return err
	}
	list, err := h.s.List(middleware.UID(c), fieldID)
	if err != nil {
		return apperr.Respond(c, "detection", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DetectionCtrl) Get(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.s.Get(id, middleware.UID(c))
	if err != nil {
		return apperr.Respond(c, "detection", err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DetectionCtrl) Delete(c echo.Context) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.s.Delete(id, middleware.UID(c)); err != nil {
		return apperr.Respond(c, "detection", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /detection/export
func (h *DetectionCtrl) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.s.ExportXLSX(middleware.UID(c), &buf); err != nil {
		return apperr.Respond(c, "detection", err)
	}
	name := fmt.Sprintf("detecciones_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMime, buf.Bytes())
}
