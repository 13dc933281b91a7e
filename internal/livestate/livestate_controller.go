// internal/livestate/livestate_controller.go
package livestate

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
)

// LiveStateController serves scoreboard snapshots for UI rendering and
// the display-device client. Live-state mutations go through the action
// log, not here.
type LiveStateController struct {
	tracker Tracker
}

// NewLiveStateController creates a new LiveStateController.
func NewLiveStateController(tracker Tracker) *LiveStateController {
	return &LiveStateController{tracker: tracker}
}

// GetLiveState returns the current scoreboard snapshot for a session.
func (lc *LiveStateController) GetLiveState(c *gin.Context) {
	state, err := lc.tracker.Read(c.Param("session_id"))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", state)
}
