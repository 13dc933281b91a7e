package roster

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/operator"
)

// RegisterRosterRoutes mounts the roster and import endpoints.
func RegisterRosterRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewRosterRepository(db)
	controller := NewRosterController(repo)

	public := router.Group("/roster")
	{
		public.GET("", controller.GetRoster)
		public.GET("/:display_id", controller.GetRosterEntry)
	}

	authenticated := router.Group("/")
	authenticated.Use(operator.AuthMiddleware(jwtSecret, db))
	{
		authenticated.POST("/roster/ingest", controller.Ingest)
		authenticated.DELETE("/roster/:display_id", controller.DeleteRosterEntry)
		authenticated.GET("/import-logs", controller.GetImportLogs)
	}
}
