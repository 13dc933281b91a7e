package operator

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/config"
)

// RegisterOperatorRoutes mounts the auth endpoints.
func RegisterOperatorRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewOperatorRepository(db)
	controller := NewOperatorController(repo, appConfig)

	auth := router.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
	}
}
