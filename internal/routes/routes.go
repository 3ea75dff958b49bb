package routes

import (
	"net/http"

	"benchracers_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	// Health check для балансировщика: без БД, без JSON
	ginRouter.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	api := ginRouter.Group("/api")
	{
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.GarageHandler.RegisterRoutes(api)
		appHandlers.ExploreHandler.RegisterRoutes(api)
		appHandlers.CommentHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}
}
