package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devmood-server/middleware"
	"devmood-server/models"
)

// RegisterUserRoutes registers the current-user endpoint
func RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
}

// GetCurrentUser returns the provisioned profile for the caller
func GetCurrentUser(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
