package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly accepts only tokens whose subject is the configured admin name.
// The admin is not a user record, so no store lookup happens here.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		subject, err := m.Tokens.Verify(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
		}

		if subject != m.AdminName {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
		}

		return next(c)
	}
}
