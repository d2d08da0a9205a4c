package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carshop/backend/internal/handlers"
	"github.com/carshop/backend/internal/handlers/cart"
	"github.com/carshop/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler  *handlers.AuthHandler
	AdminHandler *handlers.AdminHandler
	CarHandler   *handlers.CarHandler
	CartHandler  *cart.CartHandler
	Auth         *auth.Middleware
	UploadDir    string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	reg := e.Group("/api/reg")
	reg.POST("/token", d.AuthHandler.Token)
	reg.POST("/reg_user", d.AuthHandler.Register)
	reg.GET("/me", d.AuthHandler.Me, d.Auth.RequireLogin)

	admin := e.Group("/api/admin")
	admin.POST("/token", d.AdminHandler.Token)
	admin.POST("/create_car", d.AdminHandler.CreateCar, d.Auth.AdminOnly)
	admin.DELETE("/delete_car", d.AdminHandler.DeleteCar, d.Auth.AdminOnly)
	admin.DELETE("/delete_user", d.AdminHandler.DeleteUser, d.Auth.AdminOnly)
	admin.GET("/all_users", d.AdminHandler.AllUsers, d.Auth.AdminOnly)

	cars := e.Group("/api/cars")
	cars.GET("/all", d.CarHandler.GetCars)
	cars.GET("/search", d.CarHandler.Search)
	cars.POST("/add_car", d.CartHandler.AddToCart, d.Auth.RequireLogin)
	cars.GET("/cart", d.CartHandler.GetCart, d.Auth.RequireLogin)
	cars.DELETE("/remove_from_cart", d.CartHandler.RemoveOne, d.Auth.RequireLogin)
	cars.POST("/buy_all", d.CartHandler.BuyAll, d.Auth.RequireLogin)

	e.Static("/uploads", d.UploadDir)
}
