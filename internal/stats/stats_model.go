// internal/stats/stats_model.go
package stats

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
)

// CounterMap is the JSON column holding a stat line's raw counters,
// keyed by counter name. All counters are stored as float64; integer
// counters simply never carry a fractional part.
type CounterMap map[string]float64

func (m CounterMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan unmarshals a JSON column into the map.
func (m *CounterMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("CounterMap: expected []byte or string, got %T", src)
	}
}

// Clone returns an independent copy of the map.
func (m CounterMap) Clone() CounterMap {
	out := make(CounterMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// StatLine is one participant's raw counters for one session. The sport
// tag selects which counter schema and derived-formula table applies;
// the pair (SessionID, DisplayID) is unique. Derived metrics are never
// persisted here.
type StatLine struct {
	SessionID string         `json:"session_id" gorm:"primaryKey;size:64"`
	DisplayID string         `json:"display_id" gorm:"primaryKey;size:8"`
	Sport     identity.Sport `json:"sport" gorm:"index;not null"`
	Counters  CounterMap     `json:"counters" gorm:"type:json;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
