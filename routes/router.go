package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/config"
	"github.com/TonyMalanga/BroadcastControl/internal/action"
	"github.com/TonyMalanga/BroadcastControl/internal/livestate"
	"github.com/TonyMalanga/BroadcastControl/internal/operator"
	"github.com/TonyMalanga/BroadcastControl/internal/roster"
	"github.com/TonyMalanga/BroadcastControl/internal/session"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
)

// SetupRoutes wires every component onto the router. The store handle is
// passed down explicitly; nothing here holds global state.
func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	operator.RegisterOperatorRoutes(api, db, appConfig)
	session.RegisterSessionRoutes(api, db, appConfig.JWT.Secret)
	roster.RegisterRosterRoutes(api, db, appConfig.JWT.Secret)
	stats.RegisterStatsRoutes(api, db)
	livestate.RegisterLiveStateRoutes(api, db)
	action.RegisterActionRoutes(api, db, appConfig.JWT.Secret)

	// Combined snapshot for the display-device client: the session and
	// its scoreboard state in one payload.
	sessionRepo := session.NewSessionRepository(db)
	tracker := livestate.NewTracker(db)
	api.GET("/sessions/:session_id/display", func(c *gin.Context) {
		s, err := sessionRepo.GetByID(c.Param("session_id"))
		if err != nil {
			responses.InternalServerError(c, "")
			return
		}
		if s == nil {
			responses.NotFound(c, "Session")
			return
		}
		state, err := tracker.Read(s.SessionID)
		if err != nil && !apperrors.IsNotFound(err) {
			responses.SendDomainError(c, err)
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", gin.H{
			"session":    s,
			"live_state": state,
		})
	})

	return r
}
