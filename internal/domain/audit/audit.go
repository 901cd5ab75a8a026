// Package audit records entity state changes through service after-hooks.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	appctx "rentora/internal/core/context"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/pkg/logger"
)

// Action is the audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one audited change. Snapshot holds the entity state after the change.
type Entry struct {
	EntityType string
	EntityID   id.ID
	Action     Action
	UserID     string
	Snapshot   json.RawMessage
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Attach registers after-hooks on hooks that record every create, update and delete.
func Attach[T entity.Entity](hooks *domain.HookRegistry[T], entityType string, rec Recorder) {
	record := func(action Action) domain.Hook[T] {
		return func(ctx context.Context, e T) error {
			snapshot, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal %s snapshot: %w", entityType, err)
			}
			return rec.Record(ctx, Entry{
				EntityType: entityType,
				EntityID:   e.GetID(),
				Action:     action,
				UserID:     appctx.GetUserID(ctx),
				Snapshot:   snapshot,
			})
		}
	}

	hooks.OnAfterCreate(record(ActionCreate))
	hooks.OnAfterUpdate(record(ActionUpdate))
	hooks.OnAfterDelete(record(ActionDelete))
}

// LogRecorder writes entries to the application log. Used when no audit table exists.
type LogRecorder struct{}

// Record implements Recorder.
func (LogRecorder) Record(ctx context.Context, entry Entry) error {
	logger.Info(ctx, "audit",
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID,
		"action", entry.Action,
		"user_id", entry.UserID,
		"snapshot_bytes", len(entry.Snapshot),
	)
	return nil
}
