package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/models"
	"github.com/carshop/backend/internal/mykafka"
	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/search"
	"github.com/carshop/backend/internal/service/token"
	"github.com/carshop/backend/internal/upload"
)

type AdminHandler struct {
	Repo      *repo.GormRepo
	Tokens    *token.Service
	Uploads   *upload.Store
	Producer  *mykafka.Producer
	ES        *elasticsearch.Client
	Index     string
	AdminName string
}

func (h *AdminHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "car_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// Token handles POST /api/admin/token, the form-encoded admin login.
func (h *AdminHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username != h.AdminName {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	admin, err := h.Repo.VerifyAdmin(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	accessToken, err := h.Tokens.Issue(admin.Username, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// CreateCar handles POST /api/admin/create_car. The multipart form carries
// the car fields plus the image file; the image is validated by its bytes
// before anything is persisted.
func (h *AdminHandler) CreateCar(c echo.Context) error {
	brand := c.FormValue("brand")
	model := c.FormValue("model")
	drive := c.FormValue("drive")

	power, err := strconv.Atoi(c.FormValue("power"))
	if err != nil || power <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "power must be a positive integer")
	}
	displacement, err := strconv.ParseFloat(c.FormValue("displacement"), 64)
	if err != nil || displacement <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "displacement must be positive")
	}
	price, err := strconv.Atoi(c.FormValue("price"))
	if err != nil || price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be a positive integer")
	}

	switch drive {
	case models.DriveFront, models.DriveRear, models.DriveAll:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "drive must be one of front, rear, all")
	}
	if brand == "" || model == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "brand and model are required")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if file.Size > upload.MaxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file error")
	}
	defer src.Close()

	contents, err := io.ReadAll(io.LimitReader(src, upload.MaxImageBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file error")
	}
	if len(contents) > upload.MaxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}
	if err := upload.Sniff(contents); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	imagePath, err := h.Uploads.SaveCarImage(file.Filename, contents)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	car := models.Car{
		Brand:        brand,
		Model:        model,
		Power:        power,
		Displacement: displacement,
		Drive:        drive,
		Price:        price,
		ImagePath:    imagePath,
	}
	if err := h.Repo.CreateCar(c.Request().Context(), &car); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.ES != nil {
		if err := search.IndexCar(c.Request().Context(), h.ES, h.Index, &car); err != nil {
			c.Logger().Errorf("ES index error: %v", err)
		}
	}

	h.publish(c, fmt.Sprint(car.ID), map[string]any{
		"type":  "car_created",
		"carID": car.ID,
		"brand": car.Brand,
		"model": car.Model,
	})

	return c.JSON(http.StatusOK, car)
}

// DeleteCar handles DELETE /api/admin/delete_car?id=. Idempotent; also
// removes the stored image and the search index entry.
func (h *AdminHandler) DeleteCar(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	imagePath, found, err := h.Repo.DeleteCar(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if found {
		if imagePath != "" {
			if err := h.Uploads.Remove(imagePath); err != nil {
				c.Logger().Errorf("image cleanup error: %v", err)
			}
		}
		if h.ES != nil {
			if err := search.RemoveCar(c.Request().Context(), h.ES, h.Index, uint(id)); err != nil {
				c.Logger().Errorf("ES delete error: %v", err)
			}
		}
		h.publish(c, fmt.Sprint(id), map[string]any{
			"type":  "car_deleted",
			"carID": id,
		})
	}

	return c.NoContent(http.StatusOK)
}

// DeleteUser handles DELETE /api/admin/delete_user?id=. Idempotent.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Repo.DeleteUser(c.Request().Context(), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

// AllUsers handles GET /api/admin/all_users.
func (h *AdminHandler) AllUsers(c echo.Context) error {
	users, err := h.Repo.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}
