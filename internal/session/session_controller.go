// internal/session/session_controller.go
package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
	"github.com/TonyMalanga/BroadcastControl/pkg/validator"
)

// SessionController handles API requests related to broadcast sessions.
type SessionController struct {
	repo SessionRepository
}

// NewSessionController creates a new SessionController.
func NewSessionController(repo SessionRepository) *SessionController {
	return &SessionController{repo: repo}
}

type CreateSessionRequest struct {
	Sport       string   `json:"sport" binding:"required"`
	StartedUtc  string   `json:"started_utc" binding:"omitempty"`
	Notes       string   `json:"notes" binding:"omitempty,max=5000"`
	ActiveTeams []string `json:"active_teams" binding:"omitempty,dive,len=1"`
}

type UpdateSessionRequest struct {
	Notes       *string  `json:"notes" binding:"omitempty,max=5000"`
	ActiveTeams []string `json:"active_teams" binding:"omitempty,dive,len=1"`
}

// CreateSession starts a new broadcast session.
func (sc *SessionController) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	sport, err := identity.ParseSport(req.Sport)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	start := time.Now().UTC()
	if req.StartedUtc != "" {
		start, err = time.Parse(time.RFC3339, req.StartedUtc)
		if err != nil {
			responses.BadRequest(c, "started_utc must be RFC3339")
			return
		}
	}

	teams := make(TeamCodes, 0, len(req.ActiveTeams))
	for _, t := range req.ActiveTeams {
		if !identity.IsValidTeamCode(t) {
			responses.BadRequest(c, "active_teams contains an unknown team code: "+t)
			return
		}
		teams = append(teams, identity.TeamCode(t))
	}

	created, err := sc.repo.Create(sport, start, req.Notes, teams)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Session created successfully", created)
}

// GetAllSessions lists sessions, filterable by sport and active state.
func (sc *SessionController) GetAllSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))

	sessions, total, err := sc.repo.GetAll(c.Query("sport"), activeOnly, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "Failed to list sessions")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", sessions, total, page, pageSize)
}

// GetSessionByID returns one session.
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	s, err := sc.repo.GetByID(c.Param("session_id"))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if s == nil {
		responses.NotFound(c, "Session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", s)
}

// UpdateSession edits the mutable session fields (notes, active teams).
func (sc *SessionController) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetByID(c.Param("session_id"))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if s == nil {
		responses.NotFound(c, "Session")
		return
	}

	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if req.ActiveTeams != nil {
		teams := make(TeamCodes, 0, len(req.ActiveTeams))
		for _, t := range req.ActiveTeams {
			if !identity.IsValidTeamCode(t) {
				responses.BadRequest(c, "active_teams contains an unknown team code: "+t)
				return
			}
			teams = append(teams, identity.TeamCode(t))
		}
		s.ActiveTeams = teams
	}

	if err := sc.repo.Update(s); err != nil {
		responses.InternalServerError(c, "Failed to update session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session updated successfully", s)
}

// StopSession stamps the session's stop time.
func (sc *SessionController) StopSession(c *gin.Context) {
	s, err := sc.repo.Stop(c.Param("session_id"), time.Now().UTC())
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session stopped", s)
}

// DeleteSession removes a session and everything it owns.
func (sc *SessionController) DeleteSession(c *gin.Context) {
	if err := sc.repo.Delete(c.Param("session_id")); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Session deleted", nil)
}
