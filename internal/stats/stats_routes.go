package stats

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterStatsRoutes mounts the read-only stat endpoints.
func RegisterStatsRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewStatsRepository(db)
	controller := NewStatsController(repo)

	group := router.Group("/sessions/:session_id/stats")
	{
		group.GET("", controller.GetSessionStats)
		group.GET("/:display_id", controller.GetStatLine)
	}
}
