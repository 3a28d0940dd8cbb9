package sokoserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
)

// ApiHandleFunctions bundles the per-context HTTP handlers.
type ApiHandleFunctions struct {
	OrdersAPI   OrdersAPI
	ProductsAPI ProductsAPI
	UsersAPI    UsersAPI
	MessagesAPI MessagesAPI
}

// NewRouter returns a new router with recovery middleware wired.
func NewRouter(handlers ApiHandleFunctions, users userports.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handlers, users)
}

// NewRouterWithGinEngine adds the marketplace routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions, users userports.Service) *gin.Engine {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")

	v1.POST("/auth/register", handlers.UsersAPI.Register)
	v1.POST("/auth/login", handlers.UsersAPI.Login)

	authed := v1.Group("")
	authed.Use(RequireSession(users))

	authed.POST("/auth/logout", handlers.UsersAPI.Logout)
	authed.GET("/users/me", handlers.UsersAPI.GetMe)
	authed.PATCH("/users/me", handlers.UsersAPI.UpdateMe)

	v1.GET("/products", handlers.ProductsAPI.Search)
	v1.GET("/products/:productId", handlers.ProductsAPI.GetProductById)
	authed.POST("/products", handlers.ProductsAPI.CreateProduct)

	authed.POST("/orders", handlers.OrdersAPI.Checkout)
	authed.GET("/orders", handlers.OrdersAPI.Board)
	authed.GET("/orders/:orderId", handlers.OrdersAPI.GetOrderById)
	authed.PATCH("/orders/:orderId/status", handlers.OrdersAPI.TransitionStatus)
	authed.PATCH("/orders/:orderId/payment", handlers.OrdersAPI.TransitionPayment)

	authed.GET("/conversations", handlers.MessagesAPI.Conversations)
	authed.POST("/conversations/:peerId/read", handlers.MessagesAPI.MarkRead)
	authed.POST("/messages", handlers.MessagesAPI.Send)
	authed.GET("/messages/:peerId", handlers.MessagesAPI.Thread)

	return router
}
