package controllerImp

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"minascan/pkg/apperr"
	"minascan/pkg/auth/controller"
	"minascan/pkg/auth/service"
	"minascan/pkg/logger"
	"minascan/pkg/middleware"
	"minascan/pkg/ratelimit"
	"minascan/pkg/validation"
)

type authCtrl struct {
	s       service.AuthService
	limiter ratelimit.Limiter
}

func NewAuthController(s service.AuthService, limiter ratelimit.Limiter) controller.AuthController {
	return &authCtrl{s: s, limiter: limiter}
}

func (h *authCtrl) Register(c echo.Context) error {
	var req service.RegisterInput
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	u, err := h.s.Register(req)
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *authCtrl) Login(c echo.Context) error {
	ctx := c.Request().Context()
	ip := c.RealIP()
	if ok, wait, err := h.limiter.Allow(ctx, ip); err != nil {
		logger.LogError(logger.Get(), "auth", "Login", "rate limiter", nil, err)
	} else if !ok {
		c.Response().Header().Set("Retry-After", fmt.Sprint(int(math.Ceil(wait.Seconds()))))
		return apperr.JSON(c, http.StatusTooManyRequests, "too many failed login attempts, try again later")
	}

	var req service.LoginInput
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.Login()) == "" {
		return apperr.JSON(c, http.StatusUnprocessableEntity, "username is required")
	}
	res, err := h.s.Login(req.Login(), req.Password)
	if err != nil {
		if apperr.Status(err) == http.StatusUnauthorized {
			if ferr := h.limiter.RecordFailure(ctx, ip); ferr != nil {
				logger.LogError(logger.Get(), "auth", "Login", "record failure", nil, ferr)
			}
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
		}
		return apperr.Respond(c, "auth", err)
	}
	_ = h.limiter.Reset(ctx, ip)
	return c.JSON(http.StatusOK, res)
}

func (h *authCtrl) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *authCtrl) UpdateMe(c echo.Context) error {
	var req service.UserPatch
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	u, err := h.s.UpdateMe(middleware.CurrentUser(c), req)
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *authCtrl) LinkEmployee(c echo.Context) error {
	var req struct {
		LinkingCode string `json:"linking_code" form:"linking_code" validate:"required"`
	}
	if ok, err := validation.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.s.LinkEmployee(middleware.CurrentUser(c), req.LinkingCode)
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *authCtrl) Employees(c echo.Context) error {
	list, err := h.s.Employees(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *authCtrl) Boss(c echo.Context) error {
	boss, err := h.s.Boss(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, boss)
}

func (h *authCtrl) RegenerateLinkingCode(c echo.Context) error {
	code, err := h.s.RegenerateLinkingCode(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"linking_code": code,
		"message":      "Código de vinculación regenerado",
	})
}

func (h *authCtrl) LinkingCode(c echo.Context) error {
	code, err := h.s.LinkingCode(middleware.CurrentUser(c))
	if err != nil {
		return apperr.Respond(c, "auth", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"linking_code": code})
}
