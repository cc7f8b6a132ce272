package controller

import "github.com/labstack/echo/v4"

type DetectionController interface {
	DetectPests(c echo.Context) error
	Save(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Delete(c echo.Context) error
	Export(c echo.Context) error
}
