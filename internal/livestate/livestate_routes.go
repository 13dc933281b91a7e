package livestate

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterLiveStateRoutes mounts the read-only live-state endpoints.
func RegisterLiveStateRoutes(router *gin.RouterGroup, db *gorm.DB) {
	tracker := NewTracker(db)
	controller := NewLiveStateController(tracker)

	router.GET("/sessions/:session_id/live", controller.GetLiveState)
}
