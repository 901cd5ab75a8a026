package app

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora/internal/core/apperror"
	"rentora/internal/domain/filter"
)

func loadTestFixture(t *testing.T) *Fixture {
	t.Helper()
	f, err := os.Open("testdata/fixture.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	fx, err := LoadFixture(f)
	require.NoError(t, err)
	return fx
}

func TestLoadFixture(t *testing.T) {
	fx := loadTestFixture(t)

	assert.Len(t, fx.Cities, 2)
	assert.Len(t, fx.Categories, 2)
	require.Len(t, fx.Listings, 1)
	assert.Equal(t, []string{"Oven", "Barbecue"}, fx.Listings[0].Amenities)
	require.NotNil(t, fx.Listings[0].Details)
}

func TestLoadFixture_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFixture(strings.NewReader("cities:\n  - name: Springfield\n    population: 30720\n"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryServices(Options{})
	fx := loadTestFixture(t)

	report, err := Seed(ctx, svc, fx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created[TableCities])
	assert.Equal(t, 1, report.Created[TableAddresses])
	assert.Equal(t, 2, report.Created[TableAmenityCategories])
	assert.Equal(t, 3, report.Created[TableAmenities])
	assert.Equal(t, 1, report.Created[TableListings])
	assert.Equal(t, 1, report.Created[TableDescriptions])
	assert.Equal(t, 2, report.Created[TableListingAmenities])
	assert.Equal(t, 1, report.Created[TableEmailTemplates])

	listings, err := svc.Listings.Find(ctx, filter.Eq("title", "Evergreen family house"))
	require.NoError(t, err)
	require.Len(t, listings, 1)

	links, err := svc.ListingAmenities.FindByListing(ctx, listings[0].ID)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestSeed_Rerun(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryServices(Options{})
	fx := loadTestFixture(t)

	_, err := Seed(ctx, svc, fx)
	require.NoError(t, err)

	report, err := Seed(ctx, svc, fx)
	require.NoError(t, err)

	assert.Empty(t, report.Created)
	assert.Equal(t, 2, report.Reused[TableCities])
	assert.Equal(t, 3, report.Reused[TableAmenities])
	assert.Equal(t, 2, report.Reused[TableListingAmenities])
}

func TestSeed_UnknownReference(t *testing.T) {
	fx := &Fixture{
		Listings: []ListingFixture{{
			Title:       "Lonely cabin",
			Description: "Far away from everything.",
			Price:       "80",
			Amenities:   []string{"Sauna"},
		}},
	}

	_, err := Seed(context.Background(), NewMemoryServices(Options{}), fx)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
