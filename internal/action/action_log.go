// internal/action/action_log.go
package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/internal/identity"
	"github.com/TonyMalanga/BroadcastControl/internal/livestate"
	"github.com/TonyMalanga/BroadcastControl/internal/stats"
	"github.com/TonyMalanga/BroadcastControl/pkg/apperrors"
)

// ActionLog is the append-only, undoable record of state-changing
// operator actions. Every append and the state mutation it records
// commit in one transaction: "logged but not applied" (or the reverse)
// is never observable.
type ActionLog struct {
	db *gorm.DB
}

// NewActionLog creates a new ActionLog over a shared store handle.
func NewActionLog(db *gorm.DB) *ActionLog {
	return &ActionLog{db: db}
}

// RecordStatDelta applies counter deltas for one participant and appends
// the action entry atomically. The entry captures the full pre and post
// counter snapshots so the action can be undone exactly.
func (l *ActionLog) RecordStatDelta(sessionID, actor, displayID string, sport identity.Sport, deltas map[string]float64) (*Action, *stats.StatLine, error) {
	var entry *Action
	var line *stats.StatLine

	err := l.db.Transaction(func(tx *gorm.DB) error {
		repo := stats.NewStatsRepository(tx)

		before, err := repo.Get(sessionID, displayID, sport)
		if err != nil {
			return err
		}
		line, err = repo.Upsert(sessionID, displayID, sport, deltas)
		if err != nil {
			return err
		}

		pre, err := marshalStat(displayID, sport, before.Counters)
		if err != nil {
			return err
		}
		post, err := marshalStat(displayID, sport, line.Counters)
		if err != nil {
			return err
		}
		entry, err = l.append(tx, sessionID, actor, ActionStatDelta, post, &pre, nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, line, nil
}

// RecordLiveDelta applies a live-state field delta and appends the
// action entry atomically. The pre-state captures only the touched
// columns; a session with no live state yet has no pre-state to
// capture, so its first live action is not undoable.
func (l *ActionLog) RecordLiveDelta(sessionID, actor string, fields map[string]interface{}) (*Action, *livestate.LiveState, error) {
	var entry *Action
	var state *livestate.LiveState

	err := l.db.Transaction(func(tx *gorm.DB) error {
		tracker := livestate.NewTracker(tx)

		var pre *string
		before, err := tracker.Read(sessionID)
		switch {
		case apperrors.IsNotFound(err):
			// first delta for this session, nothing to restore to
		case err != nil:
			return err
		default:
			touched := make(map[string]interface{}, len(fields))
			current := before.FieldMap()
			for name := range fields {
				touched[name] = current[name]
			}
			p, err := marshalLive(touched)
			if err != nil {
				return err
			}
			pre = &p
		}

		state, err = tracker.ApplyDelta(sessionID, fields)
		if err != nil {
			return err
		}

		post, err := marshalLive(fields)
		if err != nil {
			return err
		}
		entry, err = l.append(tx, sessionID, actor, ActionLiveDelta, post, pre, nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return entry, state, nil
}

// Record appends an entry whose post-state payload is applied to the
// target store as an absolute snapshot. Both the append and the apply
// succeed or fail together.
func (l *ActionLog) Record(sessionID, actor string, actionType ActionType, postState []byte, preState []byte) (*Action, error) {
	var pre *string
	if preState != nil {
		p := string(preState)
		pre = &p
	}
	var entry *Action
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = l.recordIn(tx, sessionID, actor, actionType, string(postState), pre, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// recordIn is the shared atomic step under Record and Undo: apply the
// absolute post-state, then append the entry, in the caller's
// transaction.
func (l *ActionLog) recordIn(tx *gorm.DB, sessionID, actor string, actionType ActionType, postState string, preState *string, restores *uint) (*Action, error) {
	if err := l.apply(tx, sessionID, actionType, []byte(postState)); err != nil {
		return nil, err
	}
	return l.append(tx, sessionID, actor, actionType, postState, preState, restores)
}

// Undo loads an entry and synthesizes a new forward entry restoring its
// pre-state, applied through the same atomic path as any other action.
// The restore entry captures the state it overwrote as its own
// pre-state, so undoing a restore is a redo. An entry without a
// pre-state fails with NotUndoableError.
func (l *ActionLog) Undo(actionID uint, actor string) (*Action, error) {
	var original Action
	if err := l.db.First(&original, actionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("action", fmt.Sprintf("%d", actionID))
		}
		return nil, err
	}
	if original.PreState == nil {
		return nil, &apperrors.NotUndoableError{ActionID: actionID}
	}

	var entry *Action
	err := l.db.Transaction(func(tx *gorm.DB) error {
		newPre, err := l.snapshotCurrent(tx, &original)
		if err != nil {
			return err
		}
		entry, err = l.recordIn(tx, original.SessionID, actor, original.ActionType, *original.PreState, newPre, &original.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Query returns a session's entries newest-first, optionally bounded by
// a lower timestamp.
func (l *ActionLog) Query(sessionID string, limit int, since *time.Time) ([]Action, error) {
	query := l.db.Where("session_id = ?", sessionID)
	if since != nil {
		query = query.Where("when_utc >= ?", since.UTC())
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []Action
	if err := query.Order("when_utc desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// append inserts the log row; callers hold the surrounding transaction.
func (l *ActionLog) append(tx *gorm.DB, sessionID, actor string, actionType ActionType, postState string, preState *string, restores *uint) (*Action, error) {
	var count int64
	if err := tx.Table("sessions").Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.NewNotFound("session", sessionID)
	}
	entry := &Action{
		SessionID:        sessionID,
		WhenUtc:          time.Now().UTC(),
		Actor:            actor,
		ActionType:       actionType,
		PostState:        postState,
		PreState:         preState,
		RestoresActionID: restores,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// apply writes an absolute state payload to the store the action type
// targets.
func (l *ActionLog) apply(tx *gorm.DB, sessionID string, actionType ActionType, payload []byte) error {
	switch actionType {
	case ActionStatDelta:
		var p StatPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return apperrors.NewValidation("post_state", "malformed stat payload: "+err.Error())
		}
		_, err := stats.NewStatsRepository(tx).SetCounters(sessionID, p.DisplayID, p.Sport, p.Counters)
		return err
	case ActionLiveDelta:
		var p LivePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return apperrors.NewValidation("post_state", "malformed live-state payload: "+err.Error())
		}
		_, err := livestate.NewTracker(tx).ApplyDelta(sessionID, p.Fields)
		return err
	default:
		return apperrors.NewValidation("action_type", fmt.Sprintf("unknown action type %q", actionType))
	}
}

// snapshotCurrent captures the target's current state for the fields the
// entry's pre-state covers, so the restore entry is itself undoable.
func (l *ActionLog) snapshotCurrent(tx *gorm.DB, original *Action) (*string, error) {
	switch original.ActionType {
	case ActionStatDelta:
		var p StatPayload
		if err := json.Unmarshal([]byte(*original.PreState), &p); err != nil {
			return nil, apperrors.NewValidation("pre_state", "malformed stat payload: "+err.Error())
		}
		line, err := stats.NewStatsRepository(tx).Get(original.SessionID, p.DisplayID, p.Sport)
		if err != nil {
			return nil, err
		}
		s, err := marshalStat(p.DisplayID, p.Sport, line.Counters)
		if err != nil {
			return nil, err
		}
		return &s, nil
	case ActionLiveDelta:
		var p LivePayload
		if err := json.Unmarshal([]byte(*original.PreState), &p); err != nil {
			return nil, apperrors.NewValidation("pre_state", "malformed live-state payload: "+err.Error())
		}
		state, err := livestate.NewTracker(tx).Read(original.SessionID)
		if err != nil {
			return nil, err
		}
		touched := make(map[string]interface{}, len(p.Fields))
		current := state.FieldMap()
		for name := range p.Fields {
			touched[name] = current[name]
		}
		s, err := marshalLive(touched)
		if err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, apperrors.NewValidation("action_type", fmt.Sprintf("unknown action type %q", original.ActionType))
	}
}

func marshalStat(displayID string, sport identity.Sport, counters stats.CounterMap) (string, error) {
	b, err := json.Marshal(StatPayload{DisplayID: displayID, Sport: sport, Counters: counters})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalLive(fields map[string]interface{}) (string, error) {
	b, err := json.Marshal(LivePayload{Fields: fields})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
