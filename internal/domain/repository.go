// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"rentora/internal/core/id"
	"rentora/internal/domain/filter"
)

// --- DataStore ---

// Query selects rows of one collection.
// Soft-deleted rows are excluded unless IncludeDeleted is set; no service path sets it.
type Query struct {
	// IDs restricts the result to the given ids (empty means no restriction).
	IDs []id.ID

	// Conditions are ANDed together.
	Conditions []filter.Item

	// IncludeDeleted includes soft-deleted rows.
	IncludeDeleted bool
}

// Collection is the per-entity-type view of a DataStore.
// Add and Update only stage changes; they become visible after SaveChanges.
type Collection[T any] interface {
	// Add stages a new entity for insertion.
	Add(ctx context.Context, entity T) error

	// Update stages a full replacement of a stored entity.
	Update(ctx context.Context, entity T) error

	// Find returns committed rows matching q.
	Find(ctx context.Context, q Query) ([]T, error)
}

// Committer persists staged changes.
type Committer interface {
	// SaveChanges commits all changes staged under ctx in one atomic step.
	// A cancelled commit leaves the store unchanged.
	SaveChanges(ctx context.Context) error
}

// DataStore owns collections and the unit of work they stage into.
type DataStore interface {
	Committer

	// Begin attaches a fresh unit of work to ctx. Changes staged with the
	// returned context are committed only by SaveChanges on that context.
	// Without Begin, changes go to the store's shared default unit.
	Begin(ctx context.Context) context.Context
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes hooks for the event in registration order, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) {
	r.On(AfterCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) {
	r.On(AfterUpdate, hook)
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}

// OnAfterDelete registers a hook to run after delete.
func (r *HookRegistry[T]) OnAfterDelete(hook Hook[T]) {
	r.On(AfterDelete, hook)
}

// OnBeforeSave registers a hook for both create and update.
func (r *HookRegistry[T]) OnBeforeSave(hook Hook[T]) {
	r.On(BeforeCreate, hook)
	r.On(BeforeUpdate, hook)
}
