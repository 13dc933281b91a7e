// internal/roster/roster_controller.go
package roster

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
	"github.com/TonyMalanga/BroadcastControl/pkg/validator"
)

// RosterController handles API requests related to the roster and its
// import pipeline.
type RosterController struct {
	repo RosterRepository
	sync *SyncEngine
}

// NewRosterController creates a new RosterController.
func NewRosterController(repo RosterRepository) *RosterController {
	return &RosterController{repo: repo, sync: NewSyncEngine(repo)}
}

type IngestRequest struct {
	Rows []FeedRow `json:"rows" binding:"required"`
}

// GetRoster lists roster entries. Inactive entries are excluded unless
// include_inactive is set.
func (rc *RosterController) GetRoster(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	rosters, total, err := rc.repo.GetAll(c.Query("team"), includeInactive, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list roster")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", rosters, total, page, pageSize)
}

// GetRosterEntry returns one roster entry by display id.
func (rc *RosterController) GetRosterEntry(c *gin.Context) {
	entry, err := rc.repo.GetByDisplayID(c.Param("display_id"))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if entry == nil {
		responses.NotFound(c, "Roster entry")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", entry)
}

// Ingest reconciles an already-materialized feed snapshot into the
// roster table.
func (rc *RosterController) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	result, err := rc.sync.Ingest(req.Rows)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Feed ingested", result)
}

// DeleteRosterEntry removes a roster entry. With cascade=true its stat
// lines go too; without it, foreign stat lines block the delete.
func (rc *RosterController) DeleteRosterEntry(c *gin.Context) {
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))
	if err := rc.repo.DeleteRoster(c.Param("display_id"), cascade); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Roster entry deleted", nil)
}

// GetImportLogs lists ingestion audit entries newest-first.
func (rc *RosterController) GetImportLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	entries, total, err := rc.repo.GetImportLogs(c.Query("level"), page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list import logs")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", entries, total, page, pageSize)
}
