// internal/stats/schema.go
package stats

import (
	"fmt"
	"math"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// Placeholder is rendered for a derived mark whose source counter was
// never recorded (e.g. no best time yet).
const Placeholder = "N/A"

// DerivedMetric is one entry in a sport's derived-formula table. Compute
// receives the raw counters and returns either a number or a formatted
// display string. Formulas must be total: a zero denominator yields 0
// (or Placeholder), never a panic.
type DerivedMetric struct {
	Name    string
	Compute func(c CounterMap) interface{}
}

// SportSchema is one tagged variant of the stat store: the fixed counter
// set and the fixed derived-formula table for a sport.
type SportSchema struct {
	Sport    identity.Sport
	Counters []string
	Derived  []DerivedMetric

	counterSet map[string]struct{}
}

// SchemaFor returns the schema registered for a sport.
func SchemaFor(sport identity.Sport) (*SportSchema, error) {
	s, ok := schemas[sport]
	if !ok {
		return nil, apperrors.NewValidation("sport", fmt.Sprintf("no stat schema for sport %q", sport))
	}
	return s, nil
}

// ZeroCounters returns a counter map with every counter defaulted to zero.
func (s *SportSchema) ZeroCounters() CounterMap {
	out := make(CounterMap, len(s.Counters))
	for _, name := range s.Counters {
		out[name] = 0
	}
	return out
}

// ValidateDeltas rejects counter names outside the schema.
func (s *SportSchema) ValidateDeltas(deltas map[string]float64) error {
	for name := range deltas {
		if _, ok := s.counterSet[name]; !ok {
			return apperrors.NewValidation(name, fmt.Sprintf("unknown counter %q for sport %s", name, s.Sport))
		}
	}
	return nil
}

// ComputeDerived evaluates the sport's derived-formula table against a
// counter map, returning metric name -> value.
func (s *SportSchema) ComputeDerived(c CounterMap) map[string]interface{} {
	out := make(map[string]interface{}, len(s.Derived))
	for _, d := range s.Derived {
		out[d.Name] = d.Compute(c)
	}
	return out
}

// pct is made/attempted scaled to 100, 0 when nothing was attempted.
func pct(made, attempted float64) float64 {
	if attempted <= 0 {
		return 0
	}
	return round2(made / attempted * 100)
}

// ratio is a plain quotient guarded to 0 on a zero denominator.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return round2(num / den)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// formatRaceTime renders seconds as M:SS.ss, Placeholder when unset.
func formatRaceTime(seconds float64) interface{} {
	if seconds <= 0 {
		return Placeholder
	}
	mins := int(seconds) / 60
	rem := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, rem)
}

// formatMeters renders a centimeter mark as meters (1 m = 100 cm),
// Placeholder when unset.
func formatMeters(cm float64) interface{} {
	if cm <= 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.2f m", cm/100)
}

// formatFeetInches renders an inch mark as feet and inches
// (1 ft = 12 in), Placeholder when unset.
func formatFeetInches(inches float64) interface{} {
	if inches <= 0 {
		return Placeholder
	}
	feet := int(inches) / 12
	rem := inches - float64(feet*12)
	return fmt.Sprintf("%d' %.1f\"", feet, rem)
}

var schemas = map[identity.Sport]*SportSchema{}

func register(s *SportSchema) {
	s.counterSet = make(map[string]struct{}, len(s.Counters))
	for _, name := range s.Counters {
		s.counterSet[name] = struct{}{}
	}
	schemas[s.Sport] = s
}

func init() {
	register(basketballSchema())
	register(footballSchema())
	register(volleyballSchema())
	register(soccerSchema())
	register(tennisSchema())
	register(swimmingSchema())
	register(trackFieldSchema(identity.SportTrackField))
	register(trackFieldHSSchema())
	register(wrestlingSchema())
	register(crossCountrySchema())
	register(golfSchema())
	register(bowlingSchema())
	register(diamondSchema(identity.SportBaseball))
	// Softball shares the baseball counter set and formula table.
	register(diamondSchema(identity.SportSoftball))
}

func basketballSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportBasketball,
		Counters: []string{
			"field_goals_made", "field_goals_attempted",
			"three_points_made", "three_points_attempted",
			"free_throws_made", "free_throws_attempted",
			"offensive_rebounds", "defensive_rebounds",
			"assists", "steals", "blocks", "turnovers", "personal_fouls",
		},
		Derived: []DerivedMetric{
			{"points", func(c CounterMap) interface{} {
				twos := c["field_goals_made"] - c["three_points_made"]
				return twos*2 + c["three_points_made"]*3 + c["free_throws_made"]
			}},
			{"field_goal_pct", func(c CounterMap) interface{} {
				return pct(c["field_goals_made"], c["field_goals_attempted"])
			}},
			{"three_point_pct", func(c CounterMap) interface{} {
				return pct(c["three_points_made"], c["three_points_attempted"])
			}},
			{"free_throw_pct", func(c CounterMap) interface{} {
				return pct(c["free_throws_made"], c["free_throws_attempted"])
			}},
			{"total_rebounds", func(c CounterMap) interface{} {
				return c["offensive_rebounds"] + c["defensive_rebounds"]
			}},
		},
	}
}

func footballSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportFootball,
		Counters: []string{
			"pass_completions", "pass_attempts", "pass_yards", "pass_touchdowns",
			"interceptions_thrown",
			"rush_attempts", "rush_yards", "rush_touchdowns",
			"receptions", "receiving_yards", "receiving_touchdowns",
			"tackles", "sacks", "fumbles_lost",
		},
		Derived: []DerivedMetric{
			{"completion_pct", func(c CounterMap) interface{} {
				return pct(c["pass_completions"], c["pass_attempts"])
			}},
			{"yards_per_carry", func(c CounterMap) interface{} {
				return ratio(c["rush_yards"], c["rush_attempts"])
			}},
			{"yards_per_reception", func(c CounterMap) interface{} {
				return ratio(c["receiving_yards"], c["receptions"])
			}},
			{"total_touchdowns", func(c CounterMap) interface{} {
				return c["pass_touchdowns"] + c["rush_touchdowns"] + c["receiving_touchdowns"]
			}},
		},
	}
}

func volleyballSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportVolleyball,
		Counters: []string{
			"kills", "attack_attempts", "attack_errors",
			"service_aces", "service_attempts", "service_errors",
			"digs", "solo_blocks", "block_assists",
			"set_assists", "reception_errors",
		},
		Derived: []DerivedMetric{
			{"hitting_pct", func(c CounterMap) interface{} {
				return pct(c["kills"]-c["attack_errors"], c["attack_attempts"])
			}},
			{"serve_pct", func(c CounterMap) interface{} {
				return pct(c["service_attempts"]-c["service_errors"], c["service_attempts"])
			}},
			{"total_blocks", func(c CounterMap) interface{} {
				return c["solo_blocks"] + c["block_assists"]*0.5
			}},
		},
	}
}

func soccerSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportSoccer,
		Counters: []string{
			"goals", "assists", "shots", "shots_on_goal",
			"saves", "goals_allowed",
			"fouls", "yellow_cards", "red_cards", "corner_kicks",
		},
		Derived: []DerivedMetric{
			{"shot_accuracy_pct", func(c CounterMap) interface{} {
				return pct(c["shots_on_goal"], c["shots"])
			}},
			{"save_pct", func(c CounterMap) interface{} {
				return pct(c["saves"], c["saves"]+c["goals_allowed"])
			}},
			{"points", func(c CounterMap) interface{} {
				return c["goals"]*2 + c["assists"]
			}},
		},
	}
}

func tennisSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportTennis,
		Counters: []string{
			"aces", "double_faults",
			"first_serves_in", "first_serve_attempts",
			"break_points_won", "break_point_chances",
			"winners", "unforced_errors",
			"games_won", "sets_won",
		},
		Derived: []DerivedMetric{
			{"first_serve_pct", func(c CounterMap) interface{} {
				return pct(c["first_serves_in"], c["first_serve_attempts"])
			}},
			{"break_point_pct", func(c CounterMap) interface{} {
				return pct(c["break_points_won"], c["break_point_chances"])
			}},
		},
	}
}

func swimmingSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportSwimming,
		Counters: []string{
			"events_entered", "first_place", "second_place", "third_place",
			"team_points", "personal_records", "best_time_seconds", "disqualifications",
		},
		Derived: []DerivedMetric{
			{"best_time", func(c CounterMap) interface{} {
				return formatRaceTime(c["best_time_seconds"])
			}},
			{"podium_finishes", func(c CounterMap) interface{} {
				return c["first_place"] + c["second_place"] + c["third_place"]
			}},
		},
	}
}

// trackFieldSchema is the metric-units variant: field marks are recorded
// in centimeters and displayed in meters.
func trackFieldSchema(sport identity.Sport) *SportSchema {
	return &SportSchema{
		Sport: sport,
		Counters: []string{
			"events_entered", "first_place", "second_place", "third_place",
			"team_points",
			"best_distance_cm", "best_height_cm", "best_time_seconds",
		},
		Derived: []DerivedMetric{
			{"best_distance", func(c CounterMap) interface{} {
				return formatMeters(c["best_distance_cm"])
			}},
			{"best_height", func(c CounterMap) interface{} {
				return formatMeters(c["best_height_cm"])
			}},
			{"best_time", func(c CounterMap) interface{} {
				return formatRaceTime(c["best_time_seconds"])
			}},
			{"podium_finishes", func(c CounterMap) interface{} {
				return c["first_place"] + c["second_place"] + c["third_place"]
			}},
		},
	}
}

// trackFieldHSSchema is the high-school variant: field marks are
// recorded in inches and displayed as feet and inches.
func trackFieldHSSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportTrackFieldHS,
		Counters: []string{
			"events_entered", "first_place", "second_place", "third_place",
			"team_points",
			"best_distance_inches", "best_height_inches", "best_time_seconds",
		},
		Derived: []DerivedMetric{
			{"best_distance", func(c CounterMap) interface{} {
				return formatFeetInches(c["best_distance_inches"])
			}},
			{"best_height", func(c CounterMap) interface{} {
				return formatFeetInches(c["best_height_inches"])
			}},
			{"best_time", func(c CounterMap) interface{} {
				return formatRaceTime(c["best_time_seconds"])
			}},
			{"podium_finishes", func(c CounterMap) interface{} {
				return c["first_place"] + c["second_place"] + c["third_place"]
			}},
		},
	}
}

func wrestlingSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportWrestling,
		Counters: []string{
			"wins", "losses", "pins", "technical_falls",
			"major_decisions", "decisions",
			"takedowns", "escapes", "reversals", "near_fall_points",
			"team_points",
		},
		Derived: []DerivedMetric{
			{"bouts", func(c CounterMap) interface{} {
				return c["wins"] + c["losses"]
			}},
			{"win_pct", func(c CounterMap) interface{} {
				return pct(c["wins"], c["wins"]+c["losses"])
			}},
		},
	}
}

func crossCountrySchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportCrossCountry,
		Counters: []string{
			"races_run", "top_ten_finishes", "team_points", "best_time_seconds",
		},
		Derived: []DerivedMetric{
			{"best_time", func(c CounterMap) interface{} {
				return formatRaceTime(c["best_time_seconds"])
			}},
			{"points_per_race", func(c CounterMap) interface{} {
				return ratio(c["team_points"], c["races_run"])
			}},
		},
	}
}

func golfSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportGolf,
		Counters: []string{
			"rounds_played", "holes_played", "total_strokes",
			"eagles", "birdies", "pars", "bogeys",
			"fairways_hit", "fairway_attempts",
			"greens_in_regulation", "putts",
		},
		Derived: []DerivedMetric{
			{"strokes_per_round", func(c CounterMap) interface{} {
				return ratio(c["total_strokes"], c["rounds_played"])
			}},
			{"fairway_pct", func(c CounterMap) interface{} {
				return pct(c["fairways_hit"], c["fairway_attempts"])
			}},
			{"gir_pct", func(c CounterMap) interface{} {
				return pct(c["greens_in_regulation"], c["holes_played"])
			}},
			{"putts_per_hole", func(c CounterMap) interface{} {
				return ratio(c["putts"], c["holes_played"])
			}},
		},
	}
}

func bowlingSchema() *SportSchema {
	return &SportSchema{
		Sport: identity.SportBowling,
		Counters: []string{
			"games_bowled", "total_pins", "strikes", "spares",
			"open_frames", "high_game",
		},
		Derived: []DerivedMetric{
			{"average", func(c CounterMap) interface{} {
				return ratio(c["total_pins"], c["games_bowled"])
			}},
			// Strike and spare rates divide by total frames, ten per game.
			{"strike_pct", func(c CounterMap) interface{} {
				return pct(c["strikes"], c["games_bowled"]*10)
			}},
			{"spare_pct", func(c CounterMap) interface{} {
				return pct(c["spares"], c["games_bowled"]*10)
			}},
		},
	}
}

// diamondSchema serves both baseball and softball, which share one
// counter set and formula table.
func diamondSchema(sport identity.Sport) *SportSchema {
	return &SportSchema{
		Sport: sport,
		Counters: []string{
			"at_bats", "runs", "hits", "doubles", "triples", "home_runs",
			"runs_batted_in", "walks", "strikeouts", "stolen_bases",
			"outs_recorded", "earned_runs",
			"pitcher_strikeouts", "walks_allowed", "hits_allowed",
		},
		Derived: []DerivedMetric{
			{"batting_average", func(c CounterMap) interface{} {
				if c["at_bats"] <= 0 {
					return float64(0)
				}
				return round3(c["hits"] / c["at_bats"])
			}},
			{"on_base_pct", func(c CounterMap) interface{} {
				den := c["at_bats"] + c["walks"]
				if den <= 0 {
					return float64(0)
				}
				return round3((c["hits"] + c["walks"]) / den)
			}},
			{"slugging_pct", func(c CounterMap) interface{} {
				if c["at_bats"] <= 0 {
					return float64(0)
				}
				singles := c["hits"] - c["doubles"] - c["triples"] - c["home_runs"]
				bases := singles + c["doubles"]*2 + c["triples"]*3 + c["home_runs"]*4
				return round3(bases / c["at_bats"])
			}},
			// Rate-per-nine-innings stats: 27 outs per nine innings.
			{"earned_run_average", func(c CounterMap) interface{} {
				if c["outs_recorded"] <= 0 {
					return float64(0)
				}
				return round2(c["earned_runs"] * 27 / c["outs_recorded"])
			}},
			{"whip", func(c CounterMap) interface{} {
				if c["outs_recorded"] <= 0 {
					return float64(0)
				}
				return round2((c["walks_allowed"] + c["hits_allowed"]) * 3 / c["outs_recorded"])
			}},
		},
	}
}
