// internal/session/session_model.go
package session

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
)

// TeamCodes is the JSON column listing a session's active team codes.
type TeamCodes []identity.TeamCode

func (t TeamCodes) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan unmarshals a JSON column into the slice.
func (t *TeamCodes) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("TeamCodes: expected []byte or string, got %T", src)
	}
}

// Session is one broadcast event instance. The id encodes sport and
// start time and is immutable once created. A session owns its stat
// lines, live state and action entries by cascade.
type Session struct {
	SessionID   string         `json:"session_id" gorm:"primaryKey;size:64"`
	Sport       identity.Sport `json:"sport" gorm:"index;not null"`
	StartedUtc  time.Time      `json:"started_utc" gorm:"not null"`
	StoppedUtc  *time.Time     `json:"stopped_utc,omitempty" gorm:"index"`
	Notes       string         `json:"notes,omitempty" gorm:"type:text"`
	ActiveTeams TeamCodes      `json:"active_teams,omitempty" gorm:"type:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Active reports whether the session is still running.
func (s *Session) Active() bool {
	return s.StoppedUtc == nil
}
