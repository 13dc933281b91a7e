// internal/session/session_repo.go
package session

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/action"
	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/livestate"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// SessionRepository defines the interface for session data operations.
type SessionRepository interface {
	// Create inserts a session whose id is derived from sport and start
	// time. A second session for the same sport started in the same
	// second collides on the id and fails with a ValidationError.
	Create(sport identity.Sport, startUTC time.Time, notes string, activeTeams TeamCodes) (*Session, error)
	GetByID(sessionID string) (*Session, error)
	GetAll(sport string, activeOnly bool, page, limit int) ([]Session, int64, error)
	Update(s *Session) error
	// Stop stamps the stop time; stopping an already stopped session is
	// a no-op returning the stored record.
	Stop(sessionID string, when time.Time) (*Session, error)
	// Delete removes the session and cascades to its stat lines, live
	// state and action entries in the same transaction.
	Delete(sessionID string) error
	WithTransaction(txFunc func(SessionRepository) error) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(sport identity.Sport, startUTC time.Time, notes string, activeTeams TeamCodes) (*Session, error) {
	if _, err := identity.ParseSport(string(sport)); err != nil {
		return nil, err
	}
	startUTC = startUTC.UTC().Truncate(time.Second)
	sessionID := identity.NewSessionID(sport, startUTC)

	entry := &Session{
		SessionID:   sessionID,
		Sport:       sport,
		StartedUtc:  startUTC,
		Notes:       notes,
		ActiveTeams: activeTeams,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewValidation("session_id", fmt.Sprintf("session %q already exists; a %s session already started in that second", sessionID, sport))
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *sessionRepository) GetByID(sessionID string) (*Session, error) {
	var s Session
	if err := r.db.Where("session_id = ?", sessionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) GetAll(sport string, activeOnly bool, page, limit int) ([]Session, int64, error) {
	var sessions []Session
	var total int64

	query := r.db.Model(&Session{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if activeOnly {
		query = query.Where("stopped_utc IS NULL")
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("started_utc desc").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) Update(s *Session) error {
	return r.db.Save(s).Error
}

func (r *sessionRepository) Stop(sessionID string, when time.Time) (*Session, error) {
	var s Session
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("session", sessionID)
			}
			return err
		}
		if s.StoppedUtc != nil {
			return nil
		}
		when = when.UTC()
		s.StoppedUtc = &when
		return tx.Model(&Session{}).Where("session_id = ?", sessionID).Update("stopped_utc", when).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(sessionID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NewNotFound("session", sessionID)
		}
		// Owned rows go with the parent, inside the same transaction.
		if err := stats.NewStatsRepository(tx).DeleteBySession(sessionID); err != nil {
			return err
		}
		if err := livestate.NewTracker(tx).DeleteBySession(sessionID); err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&action.Action{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&Session{}).Error
	})
}

func (r *sessionRepository) WithTransaction(txFunc func(SessionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&sessionRepository{db: tx})
	})
}
