package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/search"
	"github.com/carshop/backend/internal/util"
)

type CarHandler struct {
	Repo  *repo.GormRepo
	ES    *elasticsearch.Client
	Index string
}

// GetCars handles GET /api/cars/all.
func (h *CarHandler) GetCars(c echo.Context) error {
	cars, err := h.Repo.ListCars(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cars)
}

// Search handles GET /api/cars/search?q=.
func (h *CarHandler) Search(c echo.Context) error {
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, cars, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "cars": cars})
}
