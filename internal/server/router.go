package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopcore-backend/internal/handlers"
	"github.com/yungbote/shopcore-backend/internal/middleware"
	"github.com/yungbote/shopcore-backend/internal/observability"
)

type RouterConfig struct {
	Metrics         *observability.Metrics
	OrderHandler    *handlers.OrderHandler
	MemberHandler   *handlers.MemberHandler
	ItemHandler     *handlers.ItemHandler
	CategoryHandler *handlers.CategoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Metrics(cfg.Metrics))

	router.GET("/healthcheck", handlers.HealthCheck)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := router.Group("/api")
	{
		// Orders
		api.POST("/orders", cfg.OrderHandler.Place)
		api.POST("/orders/:id/cancel", cfg.OrderHandler.Cancel)
		api.GET("/orders", cfg.OrderHandler.Search)
		api.GET("/orders/views", cfg.OrderHandler.ListViews)

		// Deliveries
		api.POST("/deliveries/:id/complete", cfg.OrderHandler.CompleteDelivery)

		// Members
		api.POST("/members", cfg.MemberHandler.Register)
		api.GET("/members", cfg.MemberHandler.List)
		api.GET("/members/:id", cfg.MemberHandler.Get)

		// Items
		api.POST("/items", cfg.ItemHandler.Create)
		api.PATCH("/items/:id", cfg.ItemHandler.Update)
		api.GET("/items", cfg.ItemHandler.List)
		api.GET("/items/:id", cfg.ItemHandler.Get)

		// Categories
		api.POST("/categories", cfg.CategoryHandler.Create)
		api.POST("/categories/:id/items", cfg.CategoryHandler.AddItem)
		api.GET("/categories/:id/children", cfg.CategoryHandler.ListChildren)
		api.GET("/categories/:id/items", cfg.CategoryHandler.ListItems)
	}

	return router
}
