package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"minascan/entities"
	"minascan/pkg/apperr"
)

const userKey = "user"

// UserResolver turns a raw bearer token into the stored user.
type UserResolver interface {
	UserFromToken(raw string) (*entities.User, error)
}

// Bearer requires "Authorization: Bearer <jwt>" and an active user.
// It sets "user" (*entities.User) and "uid" (uint) on the context.
func Bearer(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return unauthorized(c)
			}
			u, err := users.UserFromToken(raw)
			if err != nil {
				if apperr.Status(err) == http.StatusUnauthorized {
					return unauthorized(c)
				}
				return apperr.Respond(c, "middleware", err)
			}
			if !u.IsActive {
				return apperr.JSON(c, http.StatusBadRequest, "inactive user")
			}
			c.Set(userKey, u)
			c.Set("uid", u.ID)
			return next(c)
		}
	}
}

// RequireRole must run after Bearer.
func RequireRole(role entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return unauthorized(c)
			}
			if u.Role != role {
				return apperr.JSON(c, http.StatusForbidden, "requires role "+string(role))
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *entities.User {
	u, _ := c.Get(userKey).(*entities.User)
	return u
}

func UID(c echo.Context) uint {
	uid, _ := c.Get("uid").(uint)
	return uid
}

func bearerToken(h string) string {
	parts := strings.SplitN(strings.TrimSpace(h), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return apperr.JSON(c, http.StatusUnauthorized, "could not validate credentials")
}
