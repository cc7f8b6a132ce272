package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	Create(c echo.Context) error
	GenerateAI(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	ExportPDF(c echo.Context) error
	EmployeeReports(c echo.Context) error
}
