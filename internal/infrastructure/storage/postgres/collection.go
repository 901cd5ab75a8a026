package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
	"rentora/internal/infrastructure/storage/dbmap"
)

// Collection maps one entity type onto one table using its "db" tags.
// Writes are staged in the store's unit of work; reads go straight to the database.
type Collection[T entity.Entity] struct {
	store      *Store
	tableName  string
	selectCols []string
	validCols  map[string]bool
}

// NewCollection creates the typed view of table.
func NewCollection[T entity.Entity](s *Store, table string) *Collection[T] {
	cols := dbmap.ExtractDBColumns[T]()
	valid := make(map[string]bool, len(cols))
	for _, col := range cols {
		valid[col] = true
	}
	return &Collection[T]{
		store:      s,
		tableName:  table,
		selectCols: cols,
		validCols:  valid,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (c *Collection[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (c *Collection[T]) columnValues(e T) map[string]any {
	data := dbmap.StructToMap(e)
	values := make(map[string]any, len(c.selectCols))
	for _, col := range c.selectCols {
		if val, ok := data[col]; ok {
			values[col] = val
		}
	}
	return values
}

func (c *Collection[T]) insertQuery(e T) (BatchQuery, error) {
	sql, args, err := c.Builder().
		Insert(c.tableName).
		SetMap(c.columnValues(e)).
		ToSql()
	if err != nil {
		return BatchQuery{}, fmt.Errorf("build insert: %w", err)
	}
	return BatchQuery{SQL: sql, Args: args}, nil
}

func (c *Collection[T]) updateQuery(e T) (BatchQuery, error) {
	values := c.columnValues(e)
	entityID := e.GetID()
	// identity and creation stamp never change
	delete(values, "id")
	delete(values, "created_date")

	sql, args, err := c.Builder().
		Update(c.tableName).
		SetMap(values).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return BatchQuery{}, fmt.Errorf("build update: %w", err)
	}
	return BatchQuery{
		SQL:       sql,
		Args:      args,
		ExpectRow: true,
		onMissing: func() error { return apperror.NewNotFound(c.tableName, entityID.String()) },
	}, nil
}

// Add stages an INSERT of e.
func (c *Collection[T]) Add(ctx context.Context, e T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q, err := c.insertQuery(e)
	if err != nil {
		return err
	}
	c.store.unitFrom(ctx).stage(q)
	return nil
}

// Update stages an UPDATE of every mutable column of e.
func (c *Collection[T]) Update(ctx context.Context, e T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q, err := c.updateQuery(e)
	if err != nil {
		return err
	}
	c.store.unitFrom(ctx).stage(q)
	return nil
}

// selectQuery builds the SELECT for q; the live filter applies unless IncludeDeleted is set.
func (c *Collection[T]) selectQuery(q domain.Query) (squirrel.SelectBuilder, error) {
	sb := c.Builder().
		Select(c.selectCols...).
		From(c.tableName)

	if !q.IncludeDeleted {
		sb = sb.Where(squirrel.Eq{"is_deleted": false})
	}
	if len(q.IDs) > 0 {
		sb = sb.Where(squirrel.Eq{"id": q.IDs})
	}

	if err := filter.Validate(q.Conditions, c.validCols); err != nil {
		return sb, err
	}
	sb, err := c.applyConditions(sb, q.Conditions)
	if err != nil {
		return sb, err
	}
	return sb.OrderBy("created_date ASC", "id ASC"), nil
}

// Find returns the rows matching q.
func (c *Collection[T]) Find(ctx context.Context, q domain.Query) ([]T, error) {
	sb, err := c.selectQuery(q)
	if err != nil {
		return nil, err
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]T, 0)
	querier := c.store.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find %s: %w", c.tableName, err)
	}
	return items, nil
}

// applyConditions pushes filter items down into the WHERE clause.
// Items must have passed filter.Validate; columns are whitelisted there.
func (c *Collection[T]) applyConditions(q squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{item.Field: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotInList:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		default:
			return q, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
	}
	return q, nil
}
