// internal/roster/sync.go
package roster

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
	"github.com/TonyMalanga/BroadcastControl/pkg/rowhash"
)

// SyncEngine reconciles an external roster feed snapshot into the roster
// table. Runs are idempotent: re-ingesting an unchanged snapshot
// performs zero writes and logs nothing.
type SyncEngine struct {
	repo RosterRepository
}

// NewSyncEngine creates a new SyncEngine.
func NewSyncEngine(repo RosterRepository) *SyncEngine {
	return &SyncEngine{repo: repo}
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	Inserted    int `json:"inserted"`
	Updated     int `json:"updated"`
	Unchanged   int `json:"unchanged"`
	Skipped     int `json:"skipped"`
	Deactivated int `json:"deactivated"`
}

// Ingest processes each feed row independently: a bad row is skipped
// with a Warn audit entry and never aborts the batch, while each
// accepted row's writes commit as one transaction. Roster ids known
// from earlier imports of the same sheets but absent from this snapshot
// are soft-deleted. An empty snapshot is treated as unreadable and
// aborts with no writes.
func (e *SyncEngine) Ingest(rows []FeedRow) (*IngestResult, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidation("feed", "feed snapshot is empty or unreadable")
	}

	result := &IngestResult{}
	seen := make(map[string]struct{}, len(rows))
	sheetSet := make(map[string]struct{})

	for _, row := range rows {
		sheetSet[row.SheetName] = struct{}{}

		displayID, err := identity.NewDisplayID(row.TeamCode, row.Number)
		if err != nil {
			e.warn(fmt.Sprintf("skipping feed row %d: %v", row.RowNumber, err), row)
			result.Skipped++
			continue
		}
		if row.LastName == "" {
			e.warn(fmt.Sprintf("skipping feed row %d: missing last name", row.RowNumber), row)
			result.Skipped++
			continue
		}
		seen[displayID] = struct{}{}

		if err := e.reconcileRow(displayID, row, result); err != nil {
			e.warn(fmt.Sprintf("feed row %d for %s failed: %v", row.RowNumber, displayID, err), row)
			result.Skipped++
		}
	}

	sheetNames := make([]string, 0, len(sheetSet))
	for name := range sheetSet {
		sheetNames = append(sheetNames, name)
	}
	sort.Strings(sheetNames)

	if err := e.deactivateMissing(sheetNames, seen, result); err != nil {
		return result, err
	}
	return result, nil
}

// reconcileRow applies steps insert / skip-unchanged / update-changed
// for one validated row, all writes in one transaction.
func (e *SyncEngine) reconcileRow(displayID string, row FeedRow, result *IngestResult) error {
	hash := rowHash(row)
	now := time.Now().UTC()

	return e.repo.WithTransaction(func(tx RosterRepository) error {
		source, err := tx.GetSheetSource(displayID)
		if err != nil {
			return err
		}

		if source == nil {
			entry := &Roster{
				DisplayID:      displayID,
				TeamCode:       identity.TeamCode(row.TeamCode),
				Number:         row.Number,
				FirstName:      row.FirstName,
				LastName:       row.LastName,
				Position:       row.Position,
				Grade:          row.Grade,
				IsActive:       true,
				LastUpdatedUtc: now,
			}
			if err := tx.CreateRoster(entry); err != nil {
				return err
			}
			if err := tx.UpsertSheetSource(&SheetSource{
				DisplayID:       displayID,
				SheetName:       row.SheetName,
				RowNumber:       row.RowNumber,
				RowHash:         hash,
				LastImportedUtc: now,
			}); err != nil {
				return err
			}
			result.Inserted++
			return e.info(tx, fmt.Sprintf("imported new roster entry %s (%s %s)", displayID, row.FirstName, row.LastName), row)
		}

		existing, err := tx.GetByDisplayID(displayID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NewConsistency(fmt.Sprintf("sheet source for %q has no roster row", displayID))
		}

		if source.RowHash == hash {
			// A row present in the snapshot is active by definition even
			// when its content is unchanged.
			if !existing.IsActive {
				existing.IsActive = true
				existing.LastUpdatedUtc = now
				if err := tx.UpdateRoster(existing); err != nil {
					return err
				}
				result.Updated++
				return e.info(tx, fmt.Sprintf("reactivated roster entry %s", displayID), row)
			}
			result.Unchanged++
			return nil
		}

		existing.TeamCode = identity.TeamCode(row.TeamCode)
		existing.Number = row.Number
		existing.FirstName = row.FirstName
		existing.LastName = row.LastName
		existing.Position = row.Position
		existing.Grade = row.Grade
		existing.IsActive = true
		existing.LastUpdatedUtc = now
		if err := tx.UpdateRoster(existing); err != nil {
			return err
		}
		if err := tx.UpsertSheetSource(&SheetSource{
			DisplayID:       displayID,
			SheetName:       row.SheetName,
			RowNumber:       row.RowNumber,
			RowHash:         hash,
			LastImportedUtc: now,
		}); err != nil {
			return err
		}
		result.Updated++
		return e.info(tx, fmt.Sprintf("updated roster entry %s from feed row %d", displayID, row.RowNumber), row)
	})
}

// deactivateMissing soft-deletes roster ids previously imported from
// the snapshot's sheets that the snapshot no longer carries. Historical
// stat lines are untouched.
func (e *SyncEngine) deactivateMissing(sheetNames []string, seen map[string]struct{}, result *IngestResult) error {
	known, err := e.repo.ListKnownDisplayIDs(sheetNames)
	if err != nil {
		return err
	}
	for _, displayID := range known {
		if _, ok := seen[displayID]; ok {
			continue
		}
		entry, err := e.repo.GetByDisplayID(displayID)
		if err != nil {
			return err
		}
		if entry == nil || !entry.IsActive {
			continue
		}
		if err := e.repo.Deactivate(displayID); err != nil {
			return err
		}
		result.Deactivated++
		err = e.repo.CreateImportLog(&ImportLog{
			Level:      LevelInfo,
			Message:    fmt.Sprintf("deactivated roster entry %s: absent from feed snapshot", displayID),
			CreatedUtc: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// rowHash computes the order-independent content hash over a feed row's
// included fields.
func rowHash(row FeedRow) string {
	return rowhash.Hash(map[string]string{
		"team_code":  row.TeamCode,
		"number":     strconv.Itoa(row.Number),
		"first_name": row.FirstName,
		"last_name":  row.LastName,
		"position":   row.Position,
		"grade":      row.Grade,
	})
}

func (e *SyncEngine) info(repo RosterRepository, message string, row FeedRow) error {
	return repo.CreateImportLog(&ImportLog{
		Level:      LevelInfo,
		Message:    message,
		Context:    rowContext(row),
		CreatedUtc: time.Now().UTC(),
	})
}

func (e *SyncEngine) warn(message string, row FeedRow) {
	// Audit failures must not abort the batch; the warn entry is best
	// effort by construction.
	_ = e.repo.CreateImportLog(&ImportLog{
		Level:      LevelWarn,
		Message:    message,
		Context:    rowContext(row),
		CreatedUtc: time.Now().UTC(),
	})
}

func rowContext(row FeedRow) string {
	b, err := json.Marshal(row)
	if err != nil {
		return ""
	}
	return string(b)
}
