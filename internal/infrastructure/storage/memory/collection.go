package memory

import (
	"context"

	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
	"rentora/internal/infrastructure/storage/dbmap"
)

// Collection is the typed view of one table.
type Collection[T entity.Entity] struct {
	store   *Store
	table   *table
	columns map[string]bool
}

// NewCollection registers (or reuses) a table and returns its typed view.
func NewCollection[T entity.Entity](s *Store, name string, keys ...UniqueKey) *Collection[T] {
	cols := dbmap.ExtractDBColumns[T]()
	valid := make(map[string]bool, len(cols))
	for _, col := range cols {
		valid[col] = true
	}
	return &Collection[T]{
		store:   s,
		table:   s.register(name, keys),
		columns: valid,
	}
}

// Add stages a copy of e for insertion.
func (c *Collection[T]) Add(ctx context.Context, e T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.unitFrom(ctx).stage(change{table: c.table.name, row: dbmap.Clone(e), insert: true})
	return nil
}

// Update stages a copy of e as the new row state.
func (c *Collection[T]) Update(ctx context.Context, e T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.unitFrom(ctx).stage(change{table: c.table.name, row: dbmap.Clone(e)})
	return nil
}

// Find returns copies of committed rows matching q, in insertion order.
func (c *Collection[T]) Find(ctx context.Context, q domain.Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(q.Conditions, c.columns); err != nil {
		return nil, err
	}

	var ids map[id.ID]struct{}
	if len(q.IDs) > 0 {
		ids = make(map[id.ID]struct{}, len(q.IDs))
		for _, v := range q.IDs {
			ids[v] = struct{}{}
		}
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	result := make([]T, 0)
	for _, rowID := range c.table.order {
		if ids != nil {
			if _, ok := ids[rowID]; !ok {
				continue
			}
		}
		row, ok := c.table.rows[rowID].(T)
		if !ok {
			continue
		}
		if !q.IncludeDeleted && !row.Base().IsLive() {
			continue
		}
		if len(q.Conditions) > 0 {
			matched, err := filter.Match(dbmap.StructToMap(row), q.Conditions)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}
		result = append(result, dbmap.Clone(row))
	}
	return result, nil
}
