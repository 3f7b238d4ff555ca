package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"instalab_backend/internal/handlers"
	"instalab_backend/internal/logger"
	"instalab_backend/internal/middleware"
	"instalab_backend/ws"
)

// RegisterRoutes registers all HTTP and WebSocket routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
		appHandlers.FeedHandler.RegisterRoutes(api)
		appHandlers.StoryHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.StudentHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	if wsHandler != nil {
		wsGroup := ginRouter.Group("/ws")
		wsGroup.Use(middleware.AuthMiddleware())
		{
			wsGroup.GET("", wsHandler.ServeWS)
		}
		logger.GetLogger().Info("WebSocket route /ws registered")
	}
}
