// internal/livestate/livestate_repo.go
package livestate

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// Tracker defines the interface for the live scoreboard overlay.
type Tracker interface {
	// ApplyDelta partially updates only the supplied columns and stamps
	// the update time. Concurrent deltas touching disjoint columns both
	// survive: the write is a column-level update, never a full-record
	// overwrite.
	ApplyDelta(sessionID string, fields map[string]interface{}) (*LiveState, error)
	// Read returns the current snapshot, NotFoundError if the session
	// has no live state yet.
	Read(sessionID string) (*LiveState, error)
	DeleteBySession(sessionID string) error
	WithTransaction(txFunc func(Tracker) error) error
}

type tracker struct {
	db *gorm.DB
}

// NewTracker creates a new instance of Tracker.
func NewTracker(db *gorm.DB) Tracker {
	return &tracker{db: db}
}

func (t *tracker) ApplyDelta(sessionID string, fields map[string]interface{}) (*LiveState, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidation("fields", "delta must touch at least one field")
	}
	for name := range fields {
		if _, ok := deltaColumns[name]; !ok {
			return nil, apperrors.NewValidation(name, fmt.Sprintf("unknown live-state field %q", name))
		}
	}

	var result LiveState
	err := t.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("sessions").Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NewConsistency(fmt.Sprintf("live state references nonexistent session %q", sessionID))
		}

		var existing LiveState
		err := tx.Where("session_id = ?", sessionID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&LiveState{SessionID: sessionID, LastUpdatedUtc: time.Now().UTC()}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := make(map[string]interface{}, len(fields)+1)
		for name, v := range fields {
			updates[name] = v
		}
		updates["last_updated_utc"] = time.Now().UTC()
		if err := tx.Model(&LiveState{}).Where("session_id = ?", sessionID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).First(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (t *tracker) Read(sessionID string) (*LiveState, error) {
	var state LiveState
	if err := t.db.Where("session_id = ?", sessionID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("live state", sessionID)
		}
		return nil, err
	}
	return &state, nil
}

func (t *tracker) DeleteBySession(sessionID string) error {
	return t.db.Where("session_id = ?", sessionID).Delete(&LiveState{}).Error
}

func (t *tracker) WithTransaction(txFunc func(Tracker) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&tracker{db: tx})
	})
}
