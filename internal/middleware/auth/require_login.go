package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLogin verifies the bearer token and resolves its subject to a user
// record. A valid signature with an unknown subject is still rejected; the
// account may have been deleted after the token was issued.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		subject, err := m.Tokens.Verify(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
		}

		user, err := m.Repo.FindUser(c.Request().Context(), subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
		}

		setUserContext(c, user)
		return next(c)
	}
}
