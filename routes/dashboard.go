package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devmood-server/database"
	"devmood-server/middleware"
	"devmood-server/services"
	"devmood-server/utils"
)

// RegisterDashboardRoutes registers the personal dashboard endpoints
func RegisterDashboardRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", GetDashboardStats)
		dashboard.GET("/trend", GetDashboardTrend)
	}
}

// GetDashboardStats returns the caller's current mood, streak and totals
func GetDashboardStats(c *gin.Context) {
	userID := c.GetString("user_id")

	stats, err := services.NewDashboardService(database.GetDB()).Stats(userID)
	if err != nil {
		utils.Log.WithError(err).Error("failed to compute dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetDashboardTrend returns the caller's daily average rating series
func GetDashboardTrend(c *gin.Context) {
	userID := c.GetString("user_id")

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	trend, err := services.NewDashboardService(database.GetDB()).Trend(userID, days)
	if err != nil {
		utils.Log.WithError(err).Error("failed to compute rating trend")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rating trend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
