// internal/roster/roster_model.go
package roster

import (
	"time"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
)

// Roster is one participant entry. The display id is stable for the
// whole season: deactivated rows are excluded from active-roster queries
// but retained so historical stat lines keep a valid reference.
type Roster struct {
	DisplayID      string            `json:"display_id" gorm:"primaryKey;size:8"`
	TeamCode       identity.TeamCode `json:"team_code" gorm:"size:1;not null;index:idx_team_number"`
	Number         int               `json:"number" gorm:"not null;index:idx_team_number"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Position       string            `json:"position"`
	Grade          string            `json:"grade"`
	IsActive       bool              `json:"is_active" gorm:"index;default:true"`
	LastUpdatedUtc time.Time         `json:"last_updated_utc"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// SheetSource is the provenance record for a roster row: exactly one per
// Roster, keyed by the same display id. Used purely for change
// detection between feed snapshots.
type SheetSource struct {
	DisplayID       string    `json:"display_id" gorm:"primaryKey;size:8"`
	Roster          Roster    `json:"-" gorm:"foreignKey:DisplayID;references:DisplayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SheetName       string    `json:"sheet_name" gorm:"index;not null"`
	RowNumber       int       `json:"row_number"`
	RowHash         string    `json:"row_hash" gorm:"size:64;not null"`
	LastImportedUtc time.Time `json:"last_imported_utc"`
}

// Import log levels.
const (
	LevelInfo = "Info"
	LevelWarn = "Warn"
)

// ImportLog is an append-only audit entry written during roster
// ingestion. Entries are never mutated.
type ImportLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Level      string    `json:"level" gorm:"index;not null"`
	Message    string    `json:"message" gorm:"not null"`
	Context    string    `json:"context,omitempty" gorm:"type:json"`
	CreatedUtc time.Time `json:"created_utc" gorm:"index"`
}

// FeedRow is one already-materialized row from the external roster feed.
// The spreadsheet transport that produces these is an external
// collaborator.
type FeedRow struct {
	SheetName string `json:"sheet_name"`
	RowNumber int    `json:"row_number"`
	TeamCode  string `json:"team_code"`
	Number    int    `json:"number"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Grade     string `json:"grade"`
}
