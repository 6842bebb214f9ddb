package router

import (
	"notes_service/internal/handlers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes defines the unauthenticated account endpoints
func AuthRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.POST("/restore", userHandler.RestoreAccount)
	}
}

// UserRoutes defines the authenticated account endpoints
func UserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := rg.Group("/users")
	{
		users.POST("/logout", userHandler.Logout)
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.DELETE("/me", userHandler.DeleteMe)
		users.DELETE("/me/permanent", userHandler.DeleteMePermanent)
	}
}
