package postgres

import (
	"context"
	"sync"

	"rentora/internal/domain"
	"rentora/pkg/logger"
)

// Compile-time check that Store implements domain.DataStore interface.
var _ domain.DataStore = (*Store)(nil)

// Store is the PostgreSQL DataStore. Collections stage statements into the
// unit of work carried by the context; SaveChanges sends them as one batch
// inside one transaction.
type Store struct {
	txManager   *TxManager
	batch       *BatchExecutor
	defaultUnit *unit
}

// NewStore creates a store over pool.
func NewStore(pool *Pool) *Store {
	txm := NewTxManager(pool)
	return &Store{
		txManager:   txm,
		batch:       NewBatchExecutor(txm),
		defaultUnit: &unit{},
	}
}

// TxManager exposes the transaction manager for read paths and auxiliary writers.
func (s *Store) TxManager() *TxManager {
	return s.txManager
}

type unit struct {
	mu      sync.Mutex
	pending []BatchQuery
}

func (u *unit) stage(q BatchQuery) {
	u.mu.Lock()
	u.pending = append(u.pending, q)
	u.mu.Unlock()
}

type unitKey struct {
	store *Store
}

// Begin attaches a fresh unit of work to ctx.
func (s *Store) Begin(ctx context.Context) context.Context {
	return context.WithValue(ctx, unitKey{store: s}, &unit{})
}

func (s *Store) unitFrom(ctx context.Context) *unit {
	if u, ok := ctx.Value(unitKey{store: s}).(*unit); ok {
		return u
	}
	return s.defaultUnit
}

// SaveChanges commits every statement staged under ctx in one transaction.
// A cancelled context rolls back and leaves the statements pending; any other
// failure discards them.
func (s *Store) SaveChanges(ctx context.Context) error {
	u := s.unitFrom(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.pending) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	queries := u.pending
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.batch.ExecuteBatch(ctx, queries)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		u.pending = nil
		return mapError(err)
	}

	logger.Debug(ctx, "postgres store committed", "statements", len(queries))
	u.pending = nil
	return nil
}
