package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/server/http/handlers"
	"github.com/sxtvrno/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := middleware.NewServerMetrics()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(metrics.Collect())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	catalog := api.Group("/products")
	catalog.Use(middleware.OptionalAuth(facade))
	catalog.GET("", productHandler.List)
	catalog.GET("/:id", productHandler.Get)

	cart := api.Group("/cart")
	cart.Use(middleware.OptionalAuth(facade))
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:productID", cartHandler.SetQuantity)
	cart.DELETE("/items/:productID", cartHandler.RemoveItem)

	checkout := api.Group("/checkout")
	checkout.Use(middleware.AuthRequired(facade))
	checkout.POST("/orders", checkoutHandler.CreateOrder)
	checkout.POST("/payment/create", checkoutHandler.CreatePayment)
	checkout.POST("/payment/confirm", checkoutHandler.ConfirmPayment)
	checkout.POST("/payment/refund", middleware.AdminRequired(facade), checkoutHandler.Refund)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/payments", orderHandler.Payments)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.PUT("/products/:id/stock", productHandler.SetStock)

	return engine
}
