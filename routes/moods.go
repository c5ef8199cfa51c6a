package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devmood-server/config"
	"devmood-server/database"
	"devmood-server/middleware"
	"devmood-server/models"
	"devmood-server/services"
	"devmood-server/utils"
)

// RegisterMoodRoutes registers the public feed and the authenticated
// submission endpoints
func RegisterMoodRoutes(router *gin.RouterGroup) {
	moods := router.Group("/moods")
	{
		// Public feed with filtering, search and pagination; auth is
		// optional so logged-in readers still carry identity context
		moods.GET("", middleware.OptionalAuthMiddleware(), GetMoodFeed)

		// Distinct technology tags for filter UI
		moods.GET("/technologies", GetTechnologies)

		// Log a new mood (authenticated owner only)
		moods.POST("", middleware.AuthMiddleware(), CreateMood)

		// The caller's own entries, same filter machinery
		moods.GET("/mine", middleware.AuthMiddleware(), GetMyMoods)
	}
}

func feedService() *services.FeedService {
	if cache := database.GetRedis(); cache != nil {
		return services.NewCachedFeedService(database.GetDB(), cache, config.AppConfig.Feed.FacetCacheTTL)
	}
	return services.NewFeedService(database.GetDB())
}

// GetMoodFeed returns one page of the public mood feed
func GetMoodFeed(c *gin.Context) {
	filters := services.ParseMoodFilters(c.Request.URL.Query())

	page, err := feedService().Query(filters)
	if err != nil {
		utils.Log.WithError(err).Error("failed to fetch mood feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moods"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetMyMoods returns one page of the authenticated user's own entries
func GetMyMoods(c *gin.Context) {
	filters := services.ParseMoodFilters(c.Request.URL.Query())
	filters.UserID = c.GetString("user_id")

	page, err := feedService().Query(filters)
	if err != nil {
		utils.Log.WithError(err).Error("failed to fetch user moods")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moods"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetTechnologies returns the sorted set of distinct technology tags
func GetTechnologies(c *gin.Context) {
	technologies, err := feedService().Technologies(c.Request.Context())
	if err != nil {
		utils.Log.WithError(err).Error("failed to fetch technologies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch technologies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"technologies": technologies})
}

// CreateMood logs a new mood entry for the authenticated user
func CreateMood(c *gin.Context) {
	var body models.MoodCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood data", "details": err.Error()})
		return
	}

	mood := models.Mood{
		UserID: c.GetString("user_id"),
		Emoji:  body.Emoji,
		Rating: body.Rating,
		Date:   time.Now().UTC(),
	}
	if body.Comment != "" {
		mood.Comment = &body.Comment
	}
	if body.Tech != "" {
		mood.Tech = &body.Tech
	}

	if err := database.DB.Create(&mood).Error; err != nil {
		utils.Log.WithError(err).Error("failed to create mood")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mood"})
		return
	}

	// Reload with the owner so the response carries the flattened identity
	var created models.Mood
	if err := database.DB.Preload("User").First(&created, "id = ?", mood.ID).Error; err != nil {
		utils.Log.WithError(err).Error("failed to load created mood")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mood created but failed to load details"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Mood logged successfully",
		"mood":    created.ToResponse(),
	})
}
