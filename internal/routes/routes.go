package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unifit_backend/internal/handlers"
)

// RegisterRoutes wires every HTTP route of the application.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, authMW gin.HandlerFunc) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.CalorieHandler.RegisterRoutes(api)
		appHandlers.ResetMailHandler.RegisterRoutes(api)
	}
}
