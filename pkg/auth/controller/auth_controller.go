package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	Register(c echo.Context) error
	Login(c echo.Context) error
	Me(c echo.Context) error
	UpdateMe(c echo.Context) error
	LinkEmployee(c echo.Context) error
	Employees(c echo.Context) error
	Boss(c echo.Context) error
	RegenerateLinkingCode(c echo.Context) error
	LinkingCode(c echo.Context) error
}
