package management_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora/internal/app"
	"rentora/internal/core/apperror"
	"rentora/internal/core/id"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/amenities/management"
	"rentora/internal/domain/listings/listingamenity"
)

func setup(t *testing.T) (context.Context, *app.Services, *category.Category) {
	t.Helper()
	ctx := context.Background()
	svc := app.NewMemoryServices(app.Options{})

	c, err := svc.AmenityCategories.Create(ctx, &category.Category{CategoryName: "Safety"})
	require.NoError(t, err)
	return ctx, svc, c
}

func TestDeleteAmenityCategory_GuardedByAmenities(t *testing.T) {
	ctx, svc, c := setup(t)

	a, err := svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "Smoke alarm", CategoryID: c.ID})
	require.NoError(t, err)

	_, err = svc.Management.DeleteAmenityCategory(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotDeletable(err))

	_, err = svc.AmenityCategories.GetByID(ctx, c.ID)
	require.NoError(t, err, "category must survive a refused delete")

	_, err = svc.Management.DeleteAmenity(ctx, a.ID)
	require.NoError(t, err)

	deleted, err := svc.Management.DeleteAmenityCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
}

func TestDeleteAmenity_GuardedByListings(t *testing.T) {
	ctx, svc, c := setup(t)

	a, err := svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "Carbon monoxide alarm", CategoryID: c.ID})
	require.NoError(t, err)

	link, err := svc.Management.AddListingAmenity(ctx, &listingamenity.ListingAmenity{ListingID: id.New(), AmenityID: a.ID})
	require.NoError(t, err)

	_, err = svc.Management.DeleteAmenity(ctx, a.ID)
	assert.True(t, apperror.IsNotDeletable(err))

	_, err = svc.ListingAmenities.Delete(ctx, link.ID)
	require.NoError(t, err)

	_, err = svc.Management.DeleteAmenity(ctx, a.ID)
	assert.NoError(t, err)
}

func TestAddAmenity(t *testing.T) {
	tests := []struct {
		name     string
		dto      func(categoryID id.ID) management.AmenityDTO
		wantCode string
	}{
		{
			name: "valid",
			dto: func(categoryID id.ID) management.AmenityDTO {
				return management.AmenityDTO{AmenityName: "Fire extinguisher", CategoryID: categoryID}
			},
		},
		{
			name: "unknown category",
			dto: func(id.ID) management.AmenityDTO {
				return management.AmenityDTO{AmenityName: "Fire extinguisher", CategoryID: id.New()}
			},
			wantCode: apperror.CodeNotFound,
		},
		{
			name: "blank name",
			dto: func(categoryID id.ID) management.AmenityDTO {
				return management.AmenityDTO{AmenityName: "   ", CategoryID: categoryID}
			},
			wantCode: apperror.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, svc, c := setup(t)

			got, err := svc.Management.AddAmenity(ctx, tt.dto(c.ID))
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperror.HasCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.False(t, id.IsNil(got.ID))
			assert.Equal(t, c.ID, got.CategoryID)
		})
	}
}

func TestListAndGetAmenity(t *testing.T) {
	ctx, svc, kitchen := setup(t)

	outdoor, err := svc.AmenityCategories.Create(ctx, &category.Category{CategoryName: "Outdoor"})
	require.NoError(t, err)

	oven, err := svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "Oven", CategoryID: kitchen.ID})
	require.NoError(t, err)
	_, err = svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "Barbecue", CategoryID: outdoor.ID})
	require.NoError(t, err)

	all, err := svc.Management.ListAmenities(ctx, id.Nil())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inKitchen, err := svc.Management.ListAmenities(ctx, kitchen.ID)
	require.NoError(t, err)
	assert.Equal(t, []management.AmenityDTO{oven}, inKitchen)

	got, err := svc.Management.GetAmenity(ctx, oven.ID)
	require.NoError(t, err)
	assert.Equal(t, oven, got)

	_, err = svc.Management.GetAmenity(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddAmenity_UniquePerCategory(t *testing.T) {
	ctx, svc, c := setup(t)

	_, err := svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "First aid kit", CategoryID: c.ID})
	require.NoError(t, err)

	_, err = svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "First aid kit", CategoryID: c.ID})
	assert.True(t, apperror.IsAlreadyExists(err))

	other, err := svc.AmenityCategories.Create(ctx, &category.Category{CategoryName: "Bathroom"})
	require.NoError(t, err)

	_, err = svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "First aid kit", CategoryID: other.ID})
	assert.NoError(t, err)
}

func TestUpdateAmenity_MovesCategory(t *testing.T) {
	ctx, svc, c := setup(t)

	a, err := svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: "Hair dryer", CategoryID: c.ID})
	require.NoError(t, err)

	_, err = svc.Management.UpdateAmenity(ctx, management.AmenityDTO{ID: a.ID, AmenityName: "Hair dryer", CategoryID: id.New()})
	assert.True(t, apperror.IsNotFound(err))

	bathroom, err := svc.AmenityCategories.Create(ctx, &category.Category{CategoryName: "Bathroom"})
	require.NoError(t, err)

	moved, err := svc.Management.UpdateAmenity(ctx, management.AmenityDTO{ID: a.ID, AmenityName: "Hair dryer", CategoryID: bathroom.ID})
	require.NoError(t, err)
	assert.Equal(t, bathroom.ID, moved.CategoryID)

	inSafety, err := svc.Management.GetAmenitiesByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, inSafety)

	inBathroom, err := svc.Management.GetAmenitiesByCategory(ctx, bathroom.ID)
	require.NoError(t, err)
	require.Len(t, inBathroom, 1)
	assert.Equal(t, a.ID, inBathroom[0].ID)
}

func TestAddListingAmenity_AmenityMustExist(t *testing.T) {
	ctx, svc, _ := setup(t)

	_, err := svc.Management.AddListingAmenity(ctx, &listingamenity.ListingAmenity{ListingID: id.New(), AmenityID: id.New()})
	assert.True(t, apperror.IsNotFound(err))
}
