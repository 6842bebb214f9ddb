package router

import (
	"github.com/gin-gonic/gin"
)

// SiteRoutes defines the unauthenticated service endpoints
func SiteRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
