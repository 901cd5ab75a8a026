package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

type testCity struct {
	entity.BaseEntity
	Name string `db:"name"`
}

func (c *testCity) Validate(context.Context) error { return nil }

func newCity(name string) *testCity {
	c := &testCity{Name: name}
	c.Init(time.Now().UTC())
	return c
}

func setup() (*Store, *Collection[*testCity]) {
	s := NewStore()
	return s, NewCollection[*testCity](s, "cities", UniqueKey{Columns: []string{"name"}})
}

func TestCollection_StagedUntilSave(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	c := newCity("Springfield")
	require.NoError(t, cities.Add(ctx, c))

	rows, err := cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows, "staged rows are invisible before commit")

	require.NoError(t, s.SaveChanges(ctx))

	rows, err = cities.Find(ctx, domain.Query{IDs: []id.ID{c.ID}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Springfield", rows[0].Name)
}

func TestCollection_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	c := newCity("Springfield")
	require.NoError(t, cities.Add(ctx, c))
	require.NoError(t, s.SaveChanges(ctx))

	c.Name = "mutated by caller"
	rows, err := cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	rows[0].Name = "mutated by reader"

	rows, err = cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, "Springfield", rows[0].Name)
}

type testAddress struct {
	entity.BaseEntity
	Line    string  `db:"line"`
	ZipCode *string `db:"zip_code"`
}

func (a *testAddress) Validate(context.Context) error { return nil }

func TestCollection_PointerFieldsArePrivate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	addresses := NewCollection[*testAddress](s, "addresses")

	zip := "12345"
	a := &testAddress{Line: "742 Evergreen Terrace", ZipCode: &zip}
	a.Init(time.Now().UTC())
	require.NoError(t, addresses.Add(ctx, a))
	require.NoError(t, s.SaveChanges(ctx))

	zip = "XYZ"
	rows, err := addresses.Find(ctx, domain.Query{IDs: []id.ID{a.ID}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	*rows[0].ZipCode = "ABC"

	rows, err = addresses.Find(ctx, domain.Query{IDs: []id.ID{a.ID}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12345", *rows[0].ZipCode)
}

func TestCollection_RejectsBadFilterOnEmptyTable(t *testing.T) {
	_, cities := setup()

	_, err := cities.Find(context.Background(), domain.Query{Conditions: []filter.Item{filter.Eq("nope", "x")}})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCollection_LiveFilter(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	c := newCity("Springfield")
	require.NoError(t, cities.Add(ctx, c))
	require.NoError(t, s.SaveChanges(ctx))

	c.MarkDeleted(time.Now().UTC())
	require.NoError(t, cities.Update(ctx, c))
	require.NoError(t, s.SaveChanges(ctx))

	rows, err := cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = cities.Find(ctx, domain.Query{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCollection_Conditions(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	require.NoError(t, cities.Add(ctx, newCity("Springfield")))
	require.NoError(t, cities.Add(ctx, newCity("Shelbyville")))
	require.NoError(t, s.SaveChanges(ctx))

	rows, err := cities.Find(ctx, domain.Query{Conditions: []filter.Item{filter.Eq("name", "Shelbyville")}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Shelbyville", rows[0].Name)

	_, err = cities.Find(ctx, domain.Query{Conditions: []filter.Item{filter.Eq("population", 1)}})
	assert.Error(t, err)
}

func TestStore_UniqueKeyAmongLiveRows(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	first := newCity("Springfield")
	require.NoError(t, cities.Add(ctx, first))
	require.NoError(t, s.SaveChanges(ctx))

	require.NoError(t, cities.Add(ctx, newCity("Springfield")))
	err := s.SaveChanges(ctx)
	assert.True(t, apperror.IsAlreadyExists(err))

	// the failed batch is discarded
	rows, err := cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.NoError(t, s.SaveChanges(ctx))

	// retiring the first frees the name
	first.MarkDeleted(time.Now().UTC())
	require.NoError(t, cities.Update(ctx, first))
	require.NoError(t, cities.Add(ctx, newCity("Springfield")))
	require.NoError(t, s.SaveChanges(ctx))
}

func TestStore_DuplicateWithinOneBatch(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	require.NoError(t, cities.Add(ctx, newCity("Springfield")))
	require.NoError(t, cities.Add(ctx, newCity("Springfield")))

	assert.True(t, apperror.IsAlreadyExists(s.SaveChanges(ctx)))
}

func TestStore_CancelledCommitKeepsChangesPending(t *testing.T) {
	s, cities := setup()
	ctx := s.Begin(context.Background())

	require.NoError(t, cities.Add(ctx, newCity("Springfield")))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.SaveChanges(cancelled), context.Canceled)

	rows, err := cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, s.SaveChanges(ctx))
	rows, err = cities.Find(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_UnitsAreIsolated(t *testing.T) {
	s, cities := setup()
	ctxA := s.Begin(context.Background())
	ctxB := s.Begin(context.Background())

	require.NoError(t, cities.Add(ctxA, newCity("Springfield")))
	require.NoError(t, s.SaveChanges(ctxB))

	rows, err := cities.Find(ctxB, domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows, "committing B must not publish A's changes")

	require.NoError(t, s.SaveChanges(ctxA))
	rows, err = cities.Find(ctxB, domain.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_UpdateOfUnknownRow(t *testing.T) {
	ctx := context.Background()
	s, cities := setup()

	require.NoError(t, cities.Update(ctx, newCity("ghost")))
	assert.True(t, apperror.IsNotFound(s.SaveChanges(ctx)))
}
