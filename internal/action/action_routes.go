package action

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/operator"
)

// RegisterActionRoutes mounts the action log endpoints. All mutations
// require an authenticated operator; the query endpoint is public for
// UI rendering.
func RegisterActionRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	log := NewActionLog(db)
	controller := NewActionController(log)

	router.GET("/sessions/:session_id/actions", controller.Query)

	authenticated := router.Group("/")
	authenticated.Use(operator.AuthMiddleware(jwtSecret, db))
	{
		authenticated.POST("/sessions/:session_id/actions/stats", controller.RecordStatDelta)
		authenticated.POST("/sessions/:session_id/actions/live", controller.RecordLiveDelta)
		authenticated.POST("/actions/:action_id/undo", controller.Undo)
	}
}
