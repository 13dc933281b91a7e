// internal/action/action_model.go
package action

import (
	"time"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
)

// ActionType tags which store an action's payload applies to.
type ActionType string

const (
	// ActionStatDelta targets a participant's stat counters.
	ActionStatDelta ActionType = "stat_delta"
	// ActionLiveDelta targets the session's live scoreboard state.
	ActionLiveDelta ActionType = "live_state_delta"
)

// Action is one append-only entry in the operator action log. Entries
// are never edited or deleted; an undo appends a new entry carrying a
// back-reference to the entry it restores.
type Action struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	SessionID        string     `json:"session_id" gorm:"index;size:64;not null"`
	WhenUtc          time.Time  `json:"when_utc" gorm:"index:idx_actions_when,sort:desc;not null"`
	Actor            string     `json:"actor,omitempty"`
	ActionType       ActionType `json:"action_type" gorm:"not null"`
	PostState        string     `json:"post_state" gorm:"type:json;not null"`
	PreState         *string    `json:"pre_state,omitempty" gorm:"type:json"`
	RestoresActionID *uint      `json:"restores_action_id,omitempty" gorm:"index"`
}

// IsRestore reports whether the entry was synthesized by an undo.
func (a *Action) IsRestore() bool {
	return a.RestoresActionID != nil
}

// StatPayload is the serialized state of a stat_delta action: the full
// post (or pre) counter snapshot for one participant.
type StatPayload struct {
	DisplayID string           `json:"display_id"`
	Sport     identity.Sport   `json:"sport"`
	Counters  stats.CounterMap `json:"counters"`
}

// LivePayload is the serialized state of a live_state_delta action: the
// touched columns and their values.
type LivePayload struct {
	Fields map[string]interface{} `json:"fields"`
}
