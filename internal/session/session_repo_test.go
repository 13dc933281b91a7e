package session

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TonyMalanga/BroadcastControl/internal/action"
	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/livestate"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}, &stats.StatLine{}, &livestate.LiveState{}, &action.Action{}))
	require.NoError(t, db.Exec(`CREATE TABLE rosters (display_id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO rosters (display_id) VALUES ('A023')`).Error)
	return db
}

func mustCreate(t *testing.T, repo SessionRepository, sport identity.Sport, start time.Time) *Session {
	t.Helper()
	s, err := repo.Create(sport, start, "", nil)
	require.NoError(t, err)
	return s
}

func TestCreateDerivesIDFromSportAndStart(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	start := time.Date(2025, 10, 28, 19, 0, 0, 0, time.UTC)
	s, err := repo.Create(identity.SportFootball, start, "senior night", TeamCodes{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, "Football_2025-10-28_190000", s.SessionID)
	assert.True(t, s.Active())

	stored, err := repo.GetByID(s.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "senior night", stored.Notes)
	assert.Equal(t, TeamCodes{"A", "B"}, stored.ActiveTeams)
}

func TestCreateSameSecondCollides(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	start := time.Date(2025, 10, 28, 19, 0, 0, 0, time.UTC)

	mustCreate(t, repo, identity.SportFootball, start)
	_, err := repo.Create(identity.SportFootball, start, "", nil)
	assert.True(t, apperrors.IsValidation(err))

	// Sub-second offsets truncate to the same id.
	_, err = repo.Create(identity.SportFootball, start.Add(500*time.Millisecond), "", nil)
	assert.True(t, apperrors.IsValidation(err))

	// A different sport in the same second is a distinct id.
	_, err = repo.Create(identity.SportBasketball, start, "", nil)
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownSport(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	_, err := repo.Create(identity.Sport("Cricket"), time.Now(), "", nil)
	assert.Error(t, err)
}

func TestGetAllFiltersActiveOnly(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	base := time.Date(2025, 10, 28, 19, 0, 0, 0, time.UTC)

	running := mustCreate(t, repo, identity.SportFootball, base)
	stopped := mustCreate(t, repo, identity.SportFootball, base.Add(time.Hour))
	_, err := repo.Stop(stopped.SessionID, base.Add(3*time.Hour))
	require.NoError(t, err)

	active, total, err := repo.GetAll("", true, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, active, 1)
	assert.Equal(t, running.SessionID, active[0].SessionID)

	all, total, err := repo.GetAll("Football", false, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestStopIsIdempotent(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	s := mustCreate(t, repo, identity.SportBasketball, time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC))

	first := time.Date(2025, 11, 1, 21, 0, 0, 0, time.UTC)
	stopped, err := repo.Stop(s.SessionID, first)
	require.NoError(t, err)
	require.NotNil(t, stopped.StoppedUtc)

	again, err := repo.Stop(s.SessionID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, again.StoppedUtc.Equal(first), "second stop keeps the original stamp")

	_, err = repo.Stop("Basketball_2030-01-01_000000", first)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteCascadesToOwnedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	keep := mustCreate(t, repo, identity.SportBasketball, time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC))
	doomed := mustCreate(t, repo, identity.SportBasketball, time.Date(2025, 11, 2, 19, 0, 0, 0, time.UTC))

	log := action.NewActionLog(db)
	for _, s := range []*Session{keep, doomed} {
		_, _, err := log.RecordStatDelta(s.SessionID, "courtside", "A023", identity.SportBasketball, map[string]float64{"assists": 1})
		require.NoError(t, err)
		_, _, err = log.RecordLiveDelta(s.SessionID, "courtside", map[string]interface{}{"home_score": 2})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(doomed.SessionID))

	gone, err := repo.GetByID(doomed.SessionID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var statCount, actionCount int64
	require.NoError(t, db.Model(&stats.StatLine{}).Where("session_id = ?", doomed.SessionID).Count(&statCount).Error)
	require.NoError(t, db.Model(&action.Action{}).Where("session_id = ?", doomed.SessionID).Count(&actionCount).Error)
	assert.Zero(t, statCount)
	assert.Zero(t, actionCount)
	_, err = livestate.NewTracker(db).Read(doomed.SessionID)
	assert.True(t, apperrors.IsNotFound(err))

	// Sibling session's rows are untouched.
	survivors, err := log.Query(keep.SessionID, 0, nil)
	require.NoError(t, err)
	assert.Len(t, survivors, 2)
	line, err := stats.NewStatsRepository(db).Get(keep.SessionID, "A023", identity.SportBasketball)
	require.NoError(t, err)
	assert.Equal(t, float64(1), line.Counters["assists"])

	err = repo.Delete(doomed.SessionID)
	assert.True(t, apperrors.IsNotFound(err))
}
