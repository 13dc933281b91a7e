package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

func TestEverySportHasASchema(t *testing.T) {
	for _, sport := range identity.Sports {
		schema, err := SchemaFor(sport)
		require.NoError(t, err, "sport %s", sport)
		assert.NotEmpty(t, schema.Counters, "sport %s", sport)
		assert.NotEmpty(t, schema.Derived, "sport %s", sport)
	}
	_, err := SchemaFor(identity.Sport("Quidditch"))
	assert.True(t, apperrors.IsValidation(err))
}

// Every derived formula must be total: on all-zero counters each result
// is 0 or the placeholder, never a panic.
func TestDerivedFormulasGuardZeroDenominators(t *testing.T) {
	for _, sport := range identity.Sports {
		schema, err := SchemaFor(sport)
		require.NoError(t, err)

		derived := schema.ComputeDerived(schema.ZeroCounters())
		for name, value := range derived {
			switch v := value.(type) {
			case float64:
				assert.Zero(t, v, "%s.%s", sport, name)
			case string:
				assert.Equal(t, Placeholder, v, "%s.%s", sport, name)
			default:
				t.Errorf("%s.%s returned unexpected type %T", sport, name, value)
			}
		}
	}
}

func TestEarnedRunAverage(t *testing.T) {
	schema, err := SchemaFor(identity.SportBaseball)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["outs_recorded"] = 81
	counters["earned_runs"] = 9

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, 3.00, derived["earned_run_average"])
}

func TestBasketballPercentages(t *testing.T) {
	schema, err := SchemaFor(identity.SportBasketball)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["field_goals_made"] = 7
	counters["field_goals_attempted"] = 14
	counters["three_points_made"] = 2
	counters["three_points_attempted"] = 5
	counters["free_throws_made"] = 3
	counters["free_throws_attempted"] = 4
	counters["offensive_rebounds"] = 2
	counters["defensive_rebounds"] = 6

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, 50.0, derived["field_goal_pct"])
	assert.Equal(t, 40.0, derived["three_point_pct"])
	assert.Equal(t, 75.0, derived["free_throw_pct"])
	assert.Equal(t, 8.0, derived["total_rebounds"])
	// 5 twos, 2 threes, 3 free throws
	assert.Equal(t, 19.0, derived["points"])
}

func TestBattingAverage(t *testing.T) {
	schema, err := SchemaFor(identity.SportSoftball)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["hits"] = 2
	counters["at_bats"] = 6

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, 0.333, derived["batting_average"])
}

// Bowling strike percentage divides by total frames, ten per game.
func TestBowlingStrikePct(t *testing.T) {
	schema, err := SchemaFor(identity.SportBowling)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["games_bowled"] = 3
	counters["strikes"] = 12
	counters["total_pins"] = 540

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, 40.0, derived["strike_pct"])
	assert.Equal(t, 180.0, derived["average"])
}

func TestTrackFieldMarkFormatting(t *testing.T) {
	schema, err := SchemaFor(identity.SportTrackField)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["best_distance_cm"] = 1234
	counters["best_height_cm"] = 185
	counters["best_time_seconds"] = 125.42

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, "12.34 m", derived["best_distance"])
	// Height reads the height mark, not the distance mark.
	assert.Equal(t, "1.85 m", derived["best_height"])
	assert.Equal(t, "2:05.42", derived["best_time"])
}

func TestTrackFieldHSMarkFormatting(t *testing.T) {
	schema, err := SchemaFor(identity.SportTrackFieldHS)
	require.NoError(t, err)

	counters := schema.ZeroCounters()
	counters["best_distance_inches"] = 246 // 20 ft 6 in
	counters["best_height_inches"] = 66.5

	derived := schema.ComputeDerived(counters)
	assert.Equal(t, "20' 6.0\"", derived["best_distance"])
	assert.Equal(t, "5' 6.5\"", derived["best_height"])
	assert.Equal(t, Placeholder, derived["best_time"])
}

func TestValidateDeltasRejectsUnknownCounter(t *testing.T) {
	schema, err := SchemaFor(identity.SportSoccer)
	require.NoError(t, err)

	require.NoError(t, schema.ValidateDeltas(map[string]float64{"goals": 1}))

	err = schema.ValidateDeltas(map[string]float64{"touchdowns": 1})
	assert.True(t, apperrors.IsValidation(err))
}

func TestBaseballSoftballShareSchema(t *testing.T) {
	baseball, err := SchemaFor(identity.SportBaseball)
	require.NoError(t, err)
	softball, err := SchemaFor(identity.SportSoftball)
	require.NoError(t, err)

	assert.Equal(t, baseball.Counters, softball.Counters)
	require.Equal(t, len(baseball.Derived), len(softball.Derived))
	for i := range baseball.Derived {
		assert.Equal(t, baseball.Derived[i].Name, softball.Derived[i].Name)
	}
}
