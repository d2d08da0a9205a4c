package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/models"
	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/token"
)

type Middleware struct {
	Tokens    *token.Service
	Repo      *repo.GormRepo
	AdminName string
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

func setUserContext(c echo.Context, user *models.User) {
	c.Set("user", user)
}

// CurrentUser returns the principal resolved by RequireLogin.
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get("user").(*models.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return user, nil
}
