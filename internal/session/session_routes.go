package session

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/operator"
)

// RegisterSessionRoutes mounts the session endpoints. Reads are public;
// mutations require an authenticated operator.
func RegisterSessionRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewSessionRepository(db)
	controller := NewSessionController(repo)

	public := router.Group("/sessions")
	{
		public.GET("", controller.GetAllSessions)
		public.GET("/:session_id", controller.GetSessionByID)
	}

	authenticated := router.Group("/sessions")
	authenticated.Use(operator.AuthMiddleware(jwtSecret, db))
	{
		authenticated.POST("", controller.CreateSession)
		authenticated.PATCH("/:session_id", controller.UpdateSession)
		authenticated.POST("/:session_id/stop", controller.StopSession)
		authenticated.DELETE("/:session_id", controller.DeleteSession)
	}
}
