// internal/identity/identity.go
package identity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// Sport tags one of the supported broadcast sport variants. The tag
// selects a counter schema and derived-formula table in the stats store.
type Sport string

const (
	SportBasketball   Sport = "Basketball"
	SportFootball     Sport = "Football"
	SportVolleyball   Sport = "Volleyball"
	SportSoccer       Sport = "Soccer"
	SportTennis       Sport = "Tennis"
	SportSwimming     Sport = "Swimming"
	SportTrackField   Sport = "TrackField"
	SportTrackFieldHS Sport = "TrackFieldHS"
	SportWrestling    Sport = "Wrestling"
	SportCrossCountry Sport = "CrossCountry"
	SportGolf         Sport = "Golf"
	SportBowling      Sport = "Bowling"
	SportBaseball     Sport = "Baseball"
	SportSoftball     Sport = "Softball"
)

// Sports lists every supported sport tag.
var Sports = []Sport{
	SportBasketball, SportFootball, SportVolleyball, SportSoccer,
	SportTennis, SportSwimming, SportTrackField, SportTrackFieldHS,
	SportWrestling, SportCrossCountry, SportGolf, SportBowling,
	SportBaseball, SportSoftball,
}

// ParseSport validates a sport tag string.
func ParseSport(s string) (Sport, error) {
	for _, sp := range Sports {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", apperrors.NewValidation("sport", fmt.Sprintf("unknown sport %q", s))
}

// TeamCode identifies one of the fixed roster team slots.
type TeamCode string

const (
	TeamA TeamCode = "A"
	TeamB TeamCode = "B"
	TeamC TeamCode = "C"
	TeamD TeamCode = "D"
	TeamE TeamCode = "E"
	TeamF TeamCode = "F"
	TeamG TeamCode = "G"
	TeamH TeamCode = "H"
)

// TeamCodes lists the fixed team-code enumeration.
var TeamCodes = []TeamCode{TeamA, TeamB, TeamC, TeamD, TeamE, TeamF, TeamG, TeamH}

// IsValidTeamCode reports whether code belongs to the fixed enumeration.
func IsValidTeamCode(code string) bool {
	for _, tc := range TeamCodes {
		if string(tc) == code {
			return true
		}
	}
	return false
}

const sessionIDLayout = "2006-01-02_150405"

// NewSessionID formats the identifier for a broadcast session:
// {Sport}_{UTCDate}_{UTCTime}, e.g. "Football_2025-10-28_190000".
// Uniqueness against concurrently started sessions is enforced by the
// session store at insert time.
func NewSessionID(sport Sport, startUTC time.Time) string {
	return fmt.Sprintf("%s_%s", sport, startUTC.UTC().Format(sessionIDLayout))
}

// ParseSessionID recovers the sport tag and start time from a session id.
func ParseSessionID(id string) (Sport, time.Time, error) {
	idx := strings.Index(id, "_")
	if idx <= 0 {
		return "", time.Time{}, apperrors.NewValidation("session_id", fmt.Sprintf("malformed session id %q", id))
	}
	sport, err := ParseSport(id[:idx])
	if err != nil {
		return "", time.Time{}, err
	}
	start, err := time.Parse(sessionIDLayout, id[idx+1:])
	if err != nil {
		return "", time.Time{}, apperrors.NewValidation("session_id", fmt.Sprintf("malformed timestamp in session id %q", id))
	}
	return sport, start.UTC(), nil
}

// NewDisplayID formats the identifier for a roster participant:
// {TeamCode}{Number:000}, e.g. NewDisplayID("A", 23) == "A023".
// The jersey number must lie strictly between 0 and 1000.
func NewDisplayID(teamCode string, number int) (string, error) {
	if !IsValidTeamCode(teamCode) {
		return "", apperrors.NewValidation("team_code", fmt.Sprintf("team code %q is outside the fixed enumeration A-H", teamCode))
	}
	if number <= 0 || number >= 1000 {
		return "", apperrors.NewValidation("number", fmt.Sprintf("jersey number %d must be between 1 and 999", number))
	}
	return fmt.Sprintf("%s%03d", teamCode, number), nil
}

// ParseDisplayID recovers (teamCode, number) from a display id. A value
// produced by NewDisplayID always round-trips exactly.
func ParseDisplayID(id string) (TeamCode, int, error) {
	if len(id) != 4 {
		return "", 0, apperrors.NewValidation("display_id", fmt.Sprintf("display id %q must be 4 characters", id))
	}
	code := id[:1]
	if !IsValidTeamCode(code) {
		return "", 0, apperrors.NewValidation("display_id", fmt.Sprintf("display id %q has an unknown team code", id))
	}
	number, err := strconv.Atoi(id[1:])
	if err != nil || number <= 0 || number >= 1000 {
		return "", 0, apperrors.NewValidation("display_id", fmt.Sprintf("display id %q has an invalid jersey number", id))
	}
	return TeamCode(code), number, nil
}
