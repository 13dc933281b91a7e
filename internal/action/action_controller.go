// internal/action/action_controller.go
package action

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/operator"
	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
	"github.com/TonyMalanga/BroadcastControl/pkg/validator"
)

// ActionController is the operator-facing surface for state-changing
// actions: every stat or live-state mutation arrives here and goes
// through the action log's atomic path.
type ActionController struct {
	log *ActionLog
}

// NewActionController creates a new ActionController.
func NewActionController(log *ActionLog) *ActionController {
	return &ActionController{log: log}
}

type StatDeltaRequest struct {
	DisplayID string             `json:"display_id" binding:"required,len=4"`
	Sport     string             `json:"sport" binding:"required"`
	Deltas    map[string]float64 `json:"deltas" binding:"required"`
}

type LiveDeltaRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// RecordStatDelta applies counter deltas and logs the action.
func (ac *ActionController) RecordStatDelta(c *gin.Context) {
	var req StatDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	sport, err := identity.ParseSport(req.Sport)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	entry, line, err := ac.log.RecordStatDelta(c.Param("session_id"), operator.ActorFromContext(c), req.DisplayID, sport, req.Deltas)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Stat delta recorded", gin.H{
		"action": entry,
		"stats":  line,
	})
}

// RecordLiveDelta applies a live-state field delta and logs the action.
func (ac *ActionController) RecordLiveDelta(c *gin.Context) {
	var req LiveDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	entry, state, err := ac.log.RecordLiveDelta(c.Param("session_id"), operator.ActorFromContext(c), req.Fields)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Live state updated", gin.H{
		"action":     entry,
		"live_state": state,
	})
}

// Undo restores an action's pre-state via a new restore entry.
func (ac *ActionController) Undo(c *gin.Context) {
	actionID, err := strconv.ParseUint(c.Param("action_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "action_id must be numeric")
		return
	}

	entry, err := ac.log.Undo(uint(actionID), operator.ActorFromContext(c))
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Action undone", entry)
}

// Query lists a session's action entries newest-first.
func (ac *ActionController) Query(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			responses.BadRequest(c, "since must be RFC3339")
			return
		}
		since = &t
	}

	entries, err := ac.log.Query(c.Param("session_id"), limit, since)
	if err != nil {
		responses.InternalServerError(c, "Failed to list actions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", entries)
}
