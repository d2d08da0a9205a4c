package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/hash"
	"github.com/carshop/backend/internal/middleware/auth"
	"github.com/carshop/backend/internal/mykafka"
	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/token"
)

type AuthHandler struct {
	Repo     *repo.GormRepo
	Tokens   *token.Service
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// Register handles POST /api/reg/reg_user.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and password are required")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.Repo.CreateUser(c.Request().Context(), req.Name, pwHash)
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, repo.UserInfo{ID: user.ID, Name: user.Username})
}

// Token handles POST /api/reg/token, the form-encoded user login.
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.Repo.VerifyUser(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	accessToken, err := h.Tokens.Issue(user.Username, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// Me handles GET /api/reg/me.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repo.UserInfo{ID: user.ID, Name: user.Username})
}
