// internal/stats/stats_controller.go
package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
)

// StatsController serves stat lines with their derived metrics for UI
// rendering. Stat mutations go through the action log, not here.
type StatsController struct {
	repo StatsRepository
}

// NewStatsController creates a new StatsController.
func NewStatsController(repo StatsRepository) *StatsController {
	return &StatsController{repo: repo}
}

// StatLineView is a stat line joined with its computed derived metrics.
type StatLineView struct {
	StatLine
	Derived map[string]interface{} `json:"derived"`
}

func view(line *StatLine) (*StatLineView, error) {
	schema, err := SchemaFor(line.Sport)
	if err != nil {
		return nil, err
	}
	return &StatLineView{StatLine: *line, Derived: schema.ComputeDerived(line.Counters)}, nil
}

// GetSessionStats lists every stat line recorded for a session.
func (sc *StatsController) GetSessionStats(c *gin.Context) {
	sessionID := c.Param("session_id")
	lines, err := sc.repo.ListBySession(sessionID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list stats")
		return
	}

	views := make([]*StatLineView, 0, len(lines))
	for i := range lines {
		v, err := view(&lines[i])
		if err != nil {
			responses.SendDomainError(c, err)
			return
		}
		views = append(views, v)
	}
	responses.SendSuccess(c, http.StatusOK, "", views)
}

// GetStatLine returns one participant's counters and derived metrics,
// an all-zero default when nothing was recorded yet. The sport tag is
// recovered from the session id.
func (sc *StatsController) GetStatLine(c *gin.Context) {
	sessionID := c.Param("session_id")
	displayID := c.Param("display_id")

	sport, _, err := identity.ParseSessionID(sessionID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	line, err := sc.repo.Get(sessionID, displayID, sport)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	v, err := view(line)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", v)
}
