package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	UserIDHeader = "X-User-Id"
	UserIDCookie = "AGRI_UID"
	userIDKey    = "uid"
)

// Identity attaches the caller's user id to the request when the header or
// cookie carries a valid one. Authentication happens upstream; this only
// attributes requests. With required set, anonymous requests get 401.
func Identity(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(UserIDHeader)
			if raw == "" {
				if ck, err := c.Cookie(UserIDCookie); err == nil {
					raw = ck.Value
				}
			}
			if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
				c.Set(userIDKey, id)
			} else if required {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing user id")
			}
			return next(c)
		}
	}
}

// UserID returns the id set by Identity, or nil for anonymous requests.
func UserID(c echo.Context) *uuid.UUID {
	if id, ok := c.Get(userIDKey).(uuid.UUID); ok {
		return &id
	}
	return nil
}
