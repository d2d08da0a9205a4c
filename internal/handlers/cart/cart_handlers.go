package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/logging"
	"github.com/carshop/backend/internal/middleware/auth"
	"github.com/carshop/backend/internal/mykafka"
	"github.com/carshop/backend/internal/repo"
)

type CartHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// AddToCart handles POST /api/cars/add_car?car_id=. The referenced car must
// exist; the same car can be added any number of times.
func (h *CartHandler) AddToCart(c echo.Context) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	carID, err := strconv.Atoi(c.QueryParam("car_id"))
	if err != nil || carID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car_id")
	}

	item, err := h.Repo.AddToCart(c.Request().Context(), user.ID, uint(carID))
	if err != nil {
		if errors.Is(err, repo.ErrCarNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "car not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, user.ID, map[string]any{
		"type":   "cart_item_added",
		"userID": user.ID,
		"carID":  carID,
		"itemID": item.ID,
	})

	return c.JSON(http.StatusOK, item)
}

// GetCart handles GET /api/cars/cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.Repo.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

// RemoveOne handles DELETE /api/cars/remove_from_cart?car_id=. Removes
// exactly one matching item; nothing matching is a silent no-op.
func (h *CartHandler) RemoveOne(c echo.Context) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	carID, err := strconv.Atoi(c.QueryParam("car_id"))
	if err != nil || carID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car_id")
	}

	if err := h.Repo.RemoveOneFromCart(c.Request().Context(), user.ID, uint(carID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, user.ID, map[string]any{
		"type":   "cart_item_removed",
		"userID": user.ID,
		"carID":  carID,
	})

	return c.NoContent(http.StatusOK)
}

// BuyAll handles POST /api/cars/buy_all: clears the cart and reports the
// count and total price of the purchased items.
func (h *CartHandler) BuyAll(c echo.Context) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	l := logging.FromContext(c.Request().Context()).With("svc", "cart.checkout", "userID", user.ID)

	res, err := h.Repo.CheckoutCart(c.Request().Context(), user.ID)
	if err != nil {
		l.Error("checkout failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	l.Info("cart checked out", "items_count", res.ItemsCount, "total_price", res.TotalPrice)

	if res.ItemsCount > 0 {
		h.publish(c, user.ID, map[string]any{
			"type":        "cart_checked_out",
			"userID":      user.ID,
			"items_count": res.ItemsCount,
			"total_price": res.TotalPrice,
		})
	}

	return c.JSON(http.StatusOK, res)
}
