// internal/livestate/livestate_model.go
package livestate

import (
	"time"
)

// LiveState is the mutable scoreboard overlay for one session, singleton
// by session id. The sport-family overlay fields are nullable and stay
// null for sports that do not use them.
type LiveState struct {
	SessionID string `json:"session_id" gorm:"primaryKey;size:64"`

	HomeScore  int     `json:"home_score" gorm:"default:0"`
	AwayScore  int     `json:"away_score" gorm:"default:0"`
	Period     int     `json:"period" gorm:"default:0"`
	GameClock  string  `json:"game_clock"`
	Possession *string `json:"possession,omitempty"`

	// Football overlay
	Down     *int    `json:"down,omitempty"`
	Distance *int    `json:"distance,omitempty"`
	BallOn   *string `json:"ball_on,omitempty"`

	// Baseball/softball overlay
	Balls      *int    `json:"balls,omitempty"`
	Strikes    *int    `json:"strikes,omitempty"`
	Outs       *int    `json:"outs,omitempty"`
	InningHalf *string `json:"inning_half,omitempty"`

	// Volleyball/tennis overlay
	HomeSets *int `json:"home_sets,omitempty"`
	AwaySets *int `json:"away_sets,omitempty"`

	// Basketball overlay
	HomeFouls *int  `json:"home_fouls,omitempty"`
	AwayFouls *int  `json:"away_fouls,omitempty"`
	HomeBonus *bool `json:"home_bonus,omitempty"`
	AwayBonus *bool `json:"away_bonus,omitempty"`

	LastUpdatedUtc time.Time `json:"last_updated_utc"`
}

// deltaColumns is the set of columns a live-state delta may touch.
var deltaColumns = map[string]struct{}{
	"home_score": {}, "away_score": {}, "period": {}, "game_clock": {},
	"possession": {},
	"down":       {}, "distance": {}, "ball_on": {},
	"balls": {}, "strikes": {}, "outs": {}, "inning_half": {},
	"home_sets": {}, "away_sets": {},
	"home_fouls": {}, "away_fouls": {}, "home_bonus": {}, "away_bonus": {},
}

// FieldMap returns the state's delta-addressable columns and their
// current values. Used to capture pre-state snapshots for undo.
func (s *LiveState) FieldMap() map[string]interface{} {
	return map[string]interface{}{
		"home_score":  s.HomeScore,
		"away_score":  s.AwayScore,
		"period":      s.Period,
		"game_clock":  s.GameClock,
		"possession":  s.Possession,
		"down":        s.Down,
		"distance":    s.Distance,
		"ball_on":     s.BallOn,
		"balls":       s.Balls,
		"strikes":     s.Strikes,
		"outs":        s.Outs,
		"inning_half": s.InningHalf,
		"home_sets":   s.HomeSets,
		"away_sets":   s.AwaySets,
		"home_fouls":  s.HomeFouls,
		"away_fouls":  s.AwayFouls,
		"home_bonus":  s.HomeBonus,
		"away_bonus":  s.AwayBonus,
	}
}
