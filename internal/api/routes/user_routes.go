package routes

import (
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers authentication and user profile routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
	}

	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/:id", userHandler.GetUserByID)
	}
}
