// internal/roster/roster_repo.go
package roster

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// RosterRepository defines the interface for roster data operations.
type RosterRepository interface {
	CreateRoster(r *Roster) error
	GetByDisplayID(displayID string) (*Roster, error)
	// GetAll lists roster rows, optionally filtered by team code.
	// Inactive rows are excluded unless includeInactive is set.
	GetAll(teamCode string, includeInactive bool, page, limit int) ([]Roster, int64, error)
	UpdateRoster(r *Roster) error
	Deactivate(displayID string) error
	// DeleteRoster removes a roster row. With cascade set, its stat
	// lines and sheet source go in the same transaction; without it,
	// foreign stat lines block the delete with a ConsistencyError.
	DeleteRoster(displayID string, cascade bool) error
	ListKnownDisplayIDs(sheetNames []string) ([]string, error)

	GetSheetSource(displayID string) (*SheetSource, error)
	UpsertSheetSource(s *SheetSource) error

	CreateImportLog(entry *ImportLog) error
	GetImportLogs(level string, page, limit int) ([]ImportLog, int64, error)

	WithTransaction(txFunc func(RosterRepository) error) error
}

type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new instance of RosterRepository.
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) CreateRoster(roster *Roster) error {
	return r.db.Create(roster).Error
}

func (r *rosterRepository) GetByDisplayID(displayID string) (*Roster, error) {
	var roster Roster
	if err := r.db.Where("display_id = ?", displayID).First(&roster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &roster, nil
}

func (r *rosterRepository) GetAll(teamCode string, includeInactive bool, page, limit int) ([]Roster, int64, error) {
	var rosters []Roster
	var total int64

	query := r.db.Model(&Roster{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if teamCode != "" {
		query = query.Where("team_code = ?", teamCode)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("team_code asc, number asc").Find(&rosters).Error; err != nil {
		return nil, 0, err
	}
	return rosters, total, nil
}

func (r *rosterRepository) UpdateRoster(roster *Roster) error {
	return r.db.Save(roster).Error
}

func (r *rosterRepository) Deactivate(displayID string) error {
	return r.db.Model(&Roster{}).Where("display_id = ?", displayID).Update("is_active", false).Error
}

func (r *rosterRepository) DeleteRoster(displayID string, cascade bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		statsRepo := stats.NewStatsRepository(tx)
		if !cascade {
			count, err := statsRepo.CountByDisplayID(displayID)
			if err != nil {
				return err
			}
			if count > 0 {
				return apperrors.NewConsistency(fmt.Sprintf("roster entry %q still has %d stat lines", displayID, count))
			}
		} else if err := statsRepo.DeleteByDisplayID(displayID); err != nil {
			return err
		}
		if err := tx.Where("display_id = ?", displayID).Delete(&SheetSource{}).Error; err != nil {
			return err
		}
		return tx.Where("display_id = ?", displayID).Delete(&Roster{}).Error
	})
}

func (r *rosterRepository) ListKnownDisplayIDs(sheetNames []string) ([]string, error) {
	var ids []string
	err := r.db.Model(&SheetSource{}).
		Where("sheet_name IN ?", sheetNames).
		Pluck("display_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *rosterRepository) GetSheetSource(displayID string) (*SheetSource, error) {
	var source SheetSource
	if err := r.db.Where("display_id = ?", displayID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &source, nil
}

func (r *rosterRepository) UpsertSheetSource(s *SheetSource) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "display_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sheet_name", "row_number", "row_hash", "last_imported_utc"}),
	}).Create(s).Error
}

func (r *rosterRepository) CreateImportLog(entry *ImportLog) error {
	return r.db.Create(entry).Error
}

func (r *rosterRepository) GetImportLogs(level string, page, limit int) ([]ImportLog, int64, error) {
	var entries []ImportLog
	var total int64

	query := r.db.Model(&ImportLog{})
	if level != "" {
		query = query.Where("level = ?", level)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_utc desc, id desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *rosterRepository) WithTransaction(txFunc func(RosterRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&rosterRepository{db: tx})
	})
}
