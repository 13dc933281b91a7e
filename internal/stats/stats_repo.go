// internal/stats/stats_repo.go
package stats

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// StatsRepository defines the interface for stat line data operations.
type StatsRepository interface {
	// Get returns the stored counters for a (session, participant) pair,
	// or an all-zero default line. It never creates a row.
	Get(sessionID, displayID string, sport identity.Sport) (*StatLine, error)
	// Upsert applies per-counter deltas inside one transaction, creating
	// the line with defaulted counters on first touch. Returns the post
	// snapshot.
	Upsert(sessionID, displayID string, sport identity.Sport, deltas map[string]float64) (*StatLine, error)
	// SetCounters replaces a line's counters with an absolute snapshot,
	// creating the line if needed. Used by the action log's apply path.
	SetCounters(sessionID, displayID string, sport identity.Sport, counters CounterMap) (*StatLine, error)
	ListBySession(sessionID string) ([]StatLine, error)
	DeleteBySession(sessionID string) error
	DeleteByDisplayID(displayID string) error
	CountByDisplayID(displayID string) (int64, error)
	WithTransaction(txFunc func(StatsRepository) error) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(sessionID, displayID string, sport identity.Sport) (*StatLine, error) {
	schema, err := SchemaFor(sport)
	if err != nil {
		return nil, err
	}
	var line StatLine
	err = r.db.Where("session_id = ? AND display_id = ?", sessionID, displayID).First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StatLine{
				SessionID: sessionID,
				DisplayID: displayID,
				Sport:     sport,
				Counters:  schema.ZeroCounters(),
			}, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *statsRepository) Upsert(sessionID, displayID string, sport identity.Sport, deltas map[string]float64) (*StatLine, error) {
	schema, err := SchemaFor(sport)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateDeltas(deltas); err != nil {
		return nil, err
	}

	var result *StatLine
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkParents(tx, sessionID, displayID); err != nil {
			return err
		}

		var line StatLine
		err := tx.Where("session_id = ? AND display_id = ?", sessionID, displayID).
			First(&line).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = StatLine{
				SessionID: sessionID,
				DisplayID: displayID,
				Sport:     sport,
				Counters:  schema.ZeroCounters(),
			}
			for name, d := range deltas {
				line.Counters[name] += d
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if line.Sport != sport {
				return apperrors.NewValidation("sport", fmt.Sprintf("stat line for %s/%s is tagged %s, not %s", sessionID, displayID, line.Sport, sport))
			}
			counters := line.Counters.Clone()
			for name, d := range deltas {
				counters[name] += d
			}
			line.Counters = counters
			if err := tx.Model(&StatLine{}).
				Where("session_id = ? AND display_id = ?", sessionID, displayID).
				Update("counters", counters).Error; err != nil {
				return err
			}
		}
		result = &line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statsRepository) SetCounters(sessionID, displayID string, sport identity.Sport, counters CounterMap) (*StatLine, error) {
	schema, err := SchemaFor(sport)
	if err != nil {
		return nil, err
	}
	deltas := make(map[string]float64, len(counters))
	for name, v := range counters {
		deltas[name] = v
	}
	if err := schema.ValidateDeltas(deltas); err != nil {
		return nil, err
	}
	// Missing counters in the snapshot reset to zero.
	full := schema.ZeroCounters()
	for name, v := range counters {
		full[name] = v
	}

	var result *StatLine
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkParents(tx, sessionID, displayID); err != nil {
			return err
		}
		line := StatLine{
			SessionID: sessionID,
			DisplayID: displayID,
			Sport:     sport,
			Counters:  full,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "display_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"counters", "updated_at"}),
		}).Create(&line).Error; err != nil {
			return err
		}
		result = &line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statsRepository) ListBySession(sessionID string) ([]StatLine, error) {
	var lines []StatLine
	if err := r.db.Where("session_id = ?", sessionID).Order("display_id asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *statsRepository) DeleteBySession(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&StatLine{}).Error
}

func (r *statsRepository) DeleteByDisplayID(displayID string) error {
	return r.db.Where("display_id = ?", displayID).Delete(&StatLine{}).Error
}

func (r *statsRepository) CountByDisplayID(displayID string) (int64, error) {
	var count int64
	err := r.db.Model(&StatLine{}).Where("display_id = ?", displayID).Count(&count).Error
	return count, err
}

func (r *statsRepository) WithTransaction(txFunc func(StatsRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&statsRepository{db: tx})
	})
}

// checkParents enforces referential integrity on insert: a stat line may
// only reference an existing Session and an existing Roster row.
func checkParents(tx *gorm.DB, sessionID, displayID string) error {
	var count int64
	if err := tx.Table("sessions").Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewConsistency(fmt.Sprintf("stat line references nonexistent session %q", sessionID))
	}
	if err := tx.Table("rosters").Where("display_id = ?", displayID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewConsistency(fmt.Sprintf("stat line references nonexistent roster entry %q", displayID))
	}
	return nil
}
