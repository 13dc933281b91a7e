package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

func seedStatLine(t *testing.T, db *gorm.DB, sessionID, displayID string) {
	t.Helper()
	schema, err := stats.SchemaFor(identity.SportBasketball)
	require.NoError(t, err)
	require.NoError(t, db.Create(&stats.StatLine{
		SessionID: sessionID,
		DisplayID: displayID,
		Sport:     identity.SportBasketball,
		Counters:  schema.ZeroCounters(),
	}).Error)
}

func TestDeleteRosterBlockedByForeignStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewRosterRepository(db)
	engine := NewSyncEngine(repo)

	_, err := engine.Ingest([]FeedRow{feedRow("A", 23, "Jordan")})
	require.NoError(t, err)
	seedStatLine(t, db, "Basketball_2025-11-01_190000", "A023")

	err = repo.DeleteRoster("A023", false)
	assert.True(t, apperrors.IsConsistency(err))

	// The blocked delete leaves the entry and its provenance intact.
	entry, err := repo.GetByDisplayID("A023")
	require.NoError(t, err)
	assert.NotNil(t, entry)
	source, err := repo.GetSheetSource("A023")
	require.NoError(t, err)
	assert.NotNil(t, source)
}

func TestDeleteRosterWithoutStatsNeedsNoCascade(t *testing.T) {
	db := newTestDB(t)
	repo := NewRosterRepository(db)
	engine := NewSyncEngine(repo)

	_, err := engine.Ingest([]FeedRow{feedRow("A", 23, "Jordan")})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRoster("A023", false))

	entry, err := repo.GetByDisplayID("A023")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestDeleteRosterCascadeRemovesStatsAndSource(t *testing.T) {
	db := newTestDB(t)
	repo := NewRosterRepository(db)
	engine := NewSyncEngine(repo)

	_, err := engine.Ingest([]FeedRow{feedRow("A", 23, "Jordan"), feedRow("B", 5, "Irving")})
	require.NoError(t, err)
	seedStatLine(t, db, "Basketball_2025-11-01_190000", "A023")
	seedStatLine(t, db, "Basketball_2025-11-02_190000", "A023")
	seedStatLine(t, db, "Basketball_2025-11-01_190000", "B005")

	require.NoError(t, repo.DeleteRoster("A023", true))

	entry, err := repo.GetByDisplayID("A023")
	require.NoError(t, err)
	assert.Nil(t, entry)
	source, err := repo.GetSheetSource("A023")
	require.NoError(t, err)
	assert.Nil(t, source)

	statsRepo := stats.NewStatsRepository(db)
	count, err := statsRepo.CountByDisplayID("A023")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The sibling entry and its stat line are untouched.
	other, err := repo.GetByDisplayID("B005")
	require.NoError(t, err)
	assert.NotNil(t, other)
	count, err = statsRepo.CountByDisplayID("B005")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
