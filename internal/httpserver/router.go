package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	mwauth "github.com/stridewear/storefront/internal/middleware/auth"
	mwlog "github.com/stridewear/storefront/internal/middleware/logging"

	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/service"
)

type Server struct {
	Echo *echo.Echo
}

type Deps struct {
	Repo      *repo.GormRepo
	Auth      *service.AuthService
	Account   *service.AccountService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	JWTSecret []byte
	Logger    *slog.Logger
}

// New wires middleware and routes. Route shape follows the storefront
// client: public catalog reads, bearer-gated user routes, admin gating
// layered on top of user auth.
func New(d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(mwlog.RequestLogger(d.Logger))

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		if err := d.Repo.Ping(); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authH := NewAuthHandler(d.Auth)
	userH := NewUserHandler(d.Account)
	catalogH := NewCatalogHandler(d.Catalog)
	orderH := NewOrderHandler(d.Orders)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authH.Signup)
	authGroup.POST("/login", authH.Login)
	authGroup.POST("/admin/login", authH.AdminLogin)

	products := api.Group("/products")
	products.GET("", catalogH.ListProducts)
	products.GET("/:id", catalogH.GetProduct)

	adminProducts := api.Group("/products", mwauth.RequireAuth(d.JWTSecret), mwauth.RequireAdmin())
	adminProducts.POST("", catalogH.CreateProduct)
	adminProducts.PUT("/:id", catalogH.UpdateProduct)
	adminProducts.DELETE("/:id", catalogH.DeleteProduct)

	users := api.Group("/users", mwauth.RequireAuth(d.JWTSecret))
	users.GET("/cart", userH.GetCart)
	users.POST("/cart", userH.AddToCart)
	users.DELETE("/cart/:itemId", userH.RemoveFromCart)
	users.GET("/wishlist", userH.GetWishlist)
	users.POST("/wishlist", userH.AddToWishlist)
	users.DELETE("/wishlist/:productId", userH.RemoveFromWishlist)
	users.GET("/profile", userH.GetProfile)
	users.PUT("/profile", userH.UpdateProfile)
	users.PUT("/change-password", userH.ChangePassword)
	users.PUT("/preferences", userH.UpdatePreferences)
	users.DELETE("/account", userH.DeleteAccount)
	users.GET("/admin/users", userH.ListUsers, mwauth.RequireAdmin())

	orders := api.Group("/orders", mwauth.RequireAuth(d.JWTSecret))
	orders.POST("", orderH.CreateOrder)
	orders.GET("/user", orderH.GetUserOrders)
	orders.GET("/admin", orderH.GetAllOrders, mwauth.RequireAdmin())
	orders.PUT("/:id/status", orderH.UpdateOrderStatus, mwauth.RequireAdmin())

	return &Server{Echo: e}
}
