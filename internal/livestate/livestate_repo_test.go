package livestate

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&LiveState{}))
	require.NoError(t, db.Exec(`CREATE TABLE sessions (session_id TEXT PRIMARY KEY)`).Error)
	return db
}

func seedSession(t *testing.T, db *gorm.DB, sessionID string) {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT OR IGNORE INTO sessions (session_id) VALUES (?)`, sessionID).Error)
}

func TestApplyDeltaCreatesStateOnFirstWrite(t *testing.T) {
	db := newTestDB(t)
	seedSession(t, db, "Basketball_2025-11-01_190000")
	tr := NewTracker(db)

	state, err := tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{
		"home_score": 2,
		"period":     1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, state.HomeScore)
	assert.Equal(t, 0, state.AwayScore)
	assert.Equal(t, 1, state.Period)
	assert.False(t, state.LastUpdatedUtc.IsZero())
}

func TestApplyDeltaMergesDisjointFields(t *testing.T) {
	db := newTestDB(t)
	seedSession(t, db, "Basketball_2025-11-01_190000")
	tr := NewTracker(db)

	_, err := tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{"home_score": 10})
	require.NoError(t, err)
	state, err := tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{"game_clock": "04:32"})
	require.NoError(t, err)

	// The second delta does not clobber the first one's column.
	assert.Equal(t, 10, state.HomeScore)
	assert.Equal(t, "04:32", state.GameClock)
}

func TestApplyDeltaSetsSportOverlayFields(t *testing.T) {
	db := newTestDB(t)
	seedSession(t, db, "Football_2025-10-28_190000")
	tr := NewTracker(db)

	ballOn := "OWN 35"
	state, err := tr.ApplyDelta("Football_2025-10-28_190000", map[string]interface{}{
		"down":     3,
		"distance": 7,
		"ball_on":  ballOn,
	})
	require.NoError(t, err)
	require.NotNil(t, state.Down)
	assert.Equal(t, 3, *state.Down)
	require.NotNil(t, state.Distance)
	assert.Equal(t, 7, *state.Distance)
	require.NotNil(t, state.BallOn)
	assert.Equal(t, ballOn, *state.BallOn)
}

func TestApplyDeltaRejectsUnknownField(t *testing.T) {
	db := newTestDB(t)
	seedSession(t, db, "Basketball_2025-11-01_190000")
	tr := NewTracker(db)

	_, err := tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{"quarterback_rating": 120})
	assert.True(t, apperrors.IsValidation(err))

	_, err = tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplyDeltaRequiresExistingSession(t *testing.T) {
	db := newTestDB(t)
	tr := NewTracker(db)

	_, err := tr.ApplyDelta("Basketball_2025-11-01_190000", map[string]interface{}{"home_score": 2})
	assert.True(t, apperrors.IsConsistency(err))
}

func TestReadMissingStateReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	tr := NewTracker(db)

	_, err := tr.Read("Basketball_2025-11-01_190000")
	assert.True(t, apperrors.IsNotFound(err))
}
