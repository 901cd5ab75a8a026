package domain

import (
	"context"
	"fmt"
	"iter"
	"time"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain/filter"
	"rentora/pkg/logger"
)

// WriteOption tunes a mutating service call.
type WriteOption func(*writeOptions)

type writeOptions struct {
	save bool
}

// WithoutSave stages the change without committing it.
// The caller commits later with DataStore.SaveChanges on the same context.
func WithoutSave() WriteOption {
	return func(o *writeOptions) { o.save = false }
}

func resolveWriteOptions(opts []WriteOption) writeOptions {
	o := writeOptions{save: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// EntityService implements the create/read/update/soft-delete lifecycle for one entity type.
// Concrete services embed it and register uniqueness and integrity checks as hooks.
type EntityService[T entity.Entity] struct {
	coll        Collection[T]
	store       Committer
	hooks       *HookRegistry[T]
	entityName  string
	applyUpdate func(dst, src T)
	immutable   bool
	now         func() time.Time
}

// EntityServiceConfig configures the entity service.
type EntityServiceConfig[T entity.Entity] struct {
	Collection Collection[T]
	Store      Committer

	// EntityName is used in error messages and logs.
	EntityName string

	// ApplyUpdate copies the mutable fields of src onto the loaded dst.
	// Required unless Immutable is set.
	ApplyUpdate func(dst, src T)

	// Immutable makes Update fail with UnsupportedOperation.
	Immutable bool

	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// ServiceDeps are the collaborators every concrete entity service shares.
type ServiceDeps struct {
	Store Committer
	Clock func() time.Time
}

// NewEntityService creates a new entity service.
func NewEntityService[T entity.Entity](cfg EntityServiceConfig[T]) *EntityService[T] {
	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &EntityService[T]{
		coll:        cfg.Collection,
		store:       cfg.Store,
		hooks:       NewHookRegistry[T](),
		entityName:  cfg.EntityName,
		applyUpdate: cfg.ApplyUpdate,
		immutable:   cfg.Immutable,
		now:         clock,
	}
}

// Hooks returns the hook registry for external registration.
func (s *EntityService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the display name of the managed entity type.
func (s *EntityService[T]) EntityName() string {
	return s.entityName
}

// Now returns the service clock reading.
func (s *EntityService[T]) Now() time.Time {
	return s.now()
}

func (s *EntityService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func normalize(e any) {
	if n, ok := e.(entity.Normalizer); ok {
		n.Normalize()
	}
}

func (s *EntityService[T]) storageErr(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, s.entityName, err)
}

func (s *EntityService[T]) commit(ctx context.Context, o writeOptions) error {
	if !o.save {
		return nil
	}
	if err := s.store.SaveChanges(ctx); err != nil {
		return s.storageErr("save", err)
	}
	return nil
}

func (s *EntityService[T]) runAfter(ctx context.Context, event HookEvent, e T) {
	if err := s.hooks.Run(ctx, event, e); err != nil {
		// the change is already applied
		logger.Warn(ctx, "after hook failed", "entity", s.entityName, "event", event, "error", err)
	}
}

// Create validates and stages a new entity, committing it unless WithoutSave is given.
func (s *EntityService[T]) Create(ctx context.Context, e T, opts ...WriteOption) (T, error) {
	var zero T
	o := resolveWriteOptions(opts)

	// 1. Validate entity invariants
	normalize(e)
	if err := e.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	// 2. Uniqueness and other before-create checks
	if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
		return zero, err
	}

	// 3. Stage and commit
	e.Base().Init(s.now())
	if err := s.coll.Add(ctx, e); err != nil {
		return zero, s.storageErr("stage", err)
	}
	if err := s.commit(ctx, o); err != nil {
		return zero, err
	}

	s.runAfter(ctx, AfterCreate, e)
	logger.Debug(ctx, "entity created", "entity", s.entityName, "id", e.GetID(), "saved", o.save)
	return e, nil
}

// GetByID returns the live entity with the given id.
func (s *EntityService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var zero T
	items, err := s.coll.Find(ctx, Query{IDs: []id.ID{entityID}})
	if err != nil {
		return zero, s.storageErr("get", err)
	}
	if len(items) == 0 {
		return zero, apperror.NewNotFound(s.entityName, entityID.String())
	}
	return items[0], nil
}

// GetMany returns the live entities among ids. Missing ids are omitted.
func (s *EntityService[T]) GetMany(ctx context.Context, ids []id.ID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	items, err := s.coll.Find(ctx, Query{IDs: ids})
	if err != nil {
		return nil, s.storageErr("get", err)
	}
	return items, nil
}

// Get lazily yields live entities matching pred (nil matches all).
// Every enumeration re-reads the current live state.
func (s *EntityService[T]) Get(ctx context.Context, pred func(T) bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		items, err := s.coll.Find(ctx, Query{})
		if err != nil {
			var zero T
			yield(zero, s.storageErr("list", err))
			return
		}
		for _, item := range items {
			if pred != nil && !pred(item) {
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Find returns live entities matching all conditions.
func (s *EntityService[T]) Find(ctx context.Context, conds ...filter.Item) ([]T, error) {
	items, err := s.coll.Find(ctx, Query{Conditions: conds})
	if err != nil {
		return nil, s.storageErr("find", err)
	}
	return items, nil
}

// Exists reports whether a live entity matches all conditions.
func (s *EntityService[T]) Exists(ctx context.Context, conds ...filter.Item) (bool, error) {
	items, err := s.Find(ctx, conds...)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// EnsureUnique fails with AlreadyExists when another live entity matches conds.
// self is excluded so the check also serves updates.
func (s *EntityService[T]) EnsureUnique(ctx context.Context, self T, conds ...filter.Item) error {
	if selfID := self.GetID(); !id.IsNil(selfID) {
		conds = append(conds, filter.Neq("id", selfID))
	}
	exists, err := s.Exists(ctx, conds...)
	if err != nil {
		return err
	}
	if exists {
		fields := make([]string, 0, len(conds))
		for _, c := range conds {
			if c.Field != "id" {
				fields = append(fields, c.Field)
			}
		}
		return apperror.NewAlreadyExists(s.entityName, fields...)
	}
	return nil
}

// Update re-validates the incoming values and copies the mutable fields onto
// the loaded live entity. Returns the updated loaded entity.
func (s *EntityService[T]) Update(ctx context.Context, e T, opts ...WriteOption) (T, error) {
	var zero T
	o := resolveWriteOptions(opts)

	if s.immutable || s.applyUpdate == nil {
		return zero, apperror.NewUnsupportedOperation(s.entityName, "update")
	}

	existing, err := s.GetByID(ctx, e.GetID())
	if err != nil {
		return zero, err
	}

	normalize(e)
	if err := e.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}
	if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
		return zero, err
	}

	// existing is a private copy; the stored row changes only on commit
	s.applyUpdate(existing, e)
	existing.Base().Touch(s.now())

	if err := s.coll.Update(ctx, existing); err != nil {
		return zero, s.storageErr("stage", err)
	}
	if err := s.commit(ctx, o); err != nil {
		return zero, err
	}

	s.runAfter(ctx, AfterUpdate, existing)
	logger.Debug(ctx, "entity updated", "entity", s.entityName, "id", existing.GetID(), "saved", o.save)
	return existing, nil
}

// Delete soft-deletes the live entity with the given id and returns it.
func (s *EntityService[T]) Delete(ctx context.Context, entityID id.ID, opts ...WriteOption) (T, error) {
	var zero T
	o := resolveWriteOptions(opts)

	existing, err := s.GetByID(ctx, entityID)
	if err != nil {
		return zero, err
	}

	if err := s.hooks.Run(ctx, BeforeDelete, existing); err != nil {
		return zero, err
	}

	existing.Base().MarkDeleted(s.now())
	if err := s.coll.Update(ctx, existing); err != nil {
		return zero, s.storageErr("stage", err)
	}
	if err := s.commit(ctx, o); err != nil {
		return zero, err
	}

	s.runAfter(ctx, AfterDelete, existing)
	logger.Debug(ctx, "entity deleted", "entity", s.entityName, "id", entityID, "saved", o.save)
	return existing, nil
}

// DeleteEntity soft-deletes e, reloading it by id first.
func (s *EntityService[T]) DeleteEntity(ctx context.Context, e T, opts ...WriteOption) (T, error) {
	return s.Delete(ctx, e.GetID(), opts...)
}
