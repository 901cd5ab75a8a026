// Package memory provides an in-process DataStore used by tests and local runs.
// Rows are kept as private copies; staged changes are validated against the
// declared unique keys and applied atomically by SaveChanges.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/infrastructure/storage/dbmap"
	"rentora/pkg/logger"
)

// Compile-time check that Store implements domain.DataStore interface.
var _ domain.DataStore = (*Store)(nil)

// Store is a mutex-protected set of tables.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table

	defaultUnit *unit
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tables:      make(map[string]*table),
		defaultUnit: &unit{},
	}
}

// UniqueKey declares columns whose combined value is unique among live rows.
type UniqueKey struct {
	Columns []string
}

type table struct {
	name       string
	rows       map[id.ID]entity.Entity
	order      []id.ID
	uniqueKeys []UniqueKey
}

type change struct {
	table  string
	row    entity.Entity
	insert bool
}

// unit collects staged changes until SaveChanges.
type unit struct {
	mu      sync.Mutex
	changes []change
}

func (u *unit) stage(c change) {
	u.mu.Lock()
	u.changes = append(u.changes, c)
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

func (s *Store) register(name string, keys []UniqueKey) *table {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[name]; ok {
		t.uniqueKeys = append(t.uniqueKeys, keys...)
		return t
	}
	t := &table{
		name:       name,
		rows:       make(map[id.ID]entity.Entity),
		uniqueKeys: keys,
	}
	s.tables[name] = t
	return t
}

// SaveChanges validates and applies every change staged under ctx.
// A cancelled context leaves the changes pending; any other failure discards them.
func (s *Store) SaveChanges(ctx context.Context) error {
	u := s.unitFrom(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.changes) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	staged, err := s.stage(u.changes)
	if err != nil {
		u.changes = nil
		return err
	}

	for name, rows := range staged {
		t := s.tables[name]
		for rowID, row := range rows {
			if _, exists := t.rows[rowID]; !exists {
				t.order = append(t.order, rowID)
			}
			t.rows[rowID] = row
		}
	}

	logger.Debug(ctx, "memory store committed", "changes", len(u.changes))
	u.changes = nil
	return nil
}

// stage builds the post-commit view of every touched table and checks it.
// Caller holds s.mu.
func (s *Store) stage(changes []change) (map[string]map[id.ID]entity.Entity, error) {
	staged := make(map[string]map[id.ID]entity.Entity)
	touched := make(map[string][]id.ID)

	for _, c := range changes {
		t, ok := s.tables[c.table]
		if !ok {
			return nil, fmt.Errorf("unknown table %s", c.table)
		}
		rows, ok := staged[c.table]
		if !ok {
			rows = make(map[id.ID]entity.Entity)
			staged[c.table] = rows
		}

		rowID := c.row.GetID()
		_, committed := t.rows[rowID]
		_, pending := rows[rowID]
		exists := committed || pending

		if c.insert && exists {
			return nil, apperror.NewAlreadyExists(c.table, "id")
		}
		if !c.insert && !exists {
			return nil, apperror.NewNotFound(c.table, rowID.String())
		}
		rows[rowID] = c.row
		touched[c.table] = append(touched[c.table], rowID)
	}

	for name, ids := range touched {
		if err := s.checkUnique(s.tables[name], staged[name], ids); err != nil {
			return nil, err
		}
	}
	return staged, nil
}

func (s *Store) checkUnique(t *table, staged map[id.ID]entity.Entity, touched []id.ID) error {
	if len(t.uniqueKeys) == 0 {
		return nil
	}

	rowAt := func(rowID id.ID) entity.Entity {
		if row, ok := staged[rowID]; ok {
			return row
		}
		return t.rows[rowID]
	}

	// all ids of the post-commit view
	all := make([]id.ID, 0, len(t.rows)+len(staged))
	all = append(all, t.order...)
	for rowID := range staged {
		if _, ok := t.rows[rowID]; !ok {
			all = append(all, rowID)
		}
	}

	for _, key := range t.uniqueKeys {
		counts := make(map[string]int, len(all))
		for _, rowID := range all {
			row := rowAt(rowID)
			if !row.Base().IsLive() {
				continue
			}
			counts[keyOf(row, key)]++
		}
		for _, rowID := range touched {
			row := rowAt(rowID)
			if !row.Base().IsLive() {
				continue
			}
			if counts[keyOf(row, key)] > 1 {
				return apperror.NewAlreadyExists(t.name, key.Columns...)
			}
		}
	}
	return nil
}

// keyOf renders the key columns of row into a comparable string.
func keyOf(row entity.Entity, key UniqueKey) string {
	values := dbmap.StructToMap(row)
	parts := make([]string, len(key.Columns))
	for i, col := range key.Columns {
		v := values[col]
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				v = nil
			} else {
				v = rv.Elem().Interface()
			}
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "\x1f")
}
