// Package management orchestrates amenities, their categories and the
// listings that offer them. It enforces the referential rules no single
// entity service can check on its own.
package management

import (
	"context"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/amenities/amenity"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/pkg/logger"
)

// AmenityDTO is the transport shape of an amenity.
type AmenityDTO struct {
	ID          id.ID  `json:"id"`
	AmenityName string `json:"amenityName"`
	CategoryID  id.ID  `json:"categoryId"`
}

func (d AmenityDTO) toEntity() *amenity.Amenity {
	return &amenity.Amenity{
		BaseEntity:  entity.BaseEntity{ID: d.ID},
		AmenityName: d.AmenityName,
		CategoryID:  d.CategoryID,
	}
}

func amenityToDTO(a *amenity.Amenity) AmenityDTO {
	return AmenityDTO{ID: a.ID, AmenityName: a.AmenityName, CategoryID: a.CategoryID}
}

// Service coordinates the amenity, category and listing-amenity services.
// It has no storage access of its own.
type Service struct {
	amenities        *amenity.Service
	categories       *category.Service
	listingAmenities *listingamenity.Service
}

// NewService creates a new amenities management service.
func NewService(
	amenities *amenity.Service,
	categories *category.Service,
	listingAmenities *listingamenity.Service,
) *Service {
	return &Service{
		amenities:        amenities,
		categories:       categories,
		listingAmenities: listingAmenities,
	}
}

// AddAmenity creates an amenity in an existing category.
func (s *Service) AddAmenity(ctx context.Context, dto AmenityDTO, opts ...domain.WriteOption) (AmenityDTO, error) {
	if _, err := s.categories.GetByID(ctx, dto.CategoryID); err != nil {
		return AmenityDTO{}, err
	}
	dto.ID = id.Nil()
	created, err := s.amenities.Create(ctx, dto.toEntity(), opts...)
	if err != nil {
		return AmenityDTO{}, err
	}
	return amenityToDTO(created), nil
}

// UpdateAmenity renames or moves an amenity. The target category must exist.
func (s *Service) UpdateAmenity(ctx context.Context, dto AmenityDTO, opts ...domain.WriteOption) (AmenityDTO, error) {
	if _, err := s.categories.GetByID(ctx, dto.CategoryID); err != nil {
		return AmenityDTO{}, err
	}
	updated, err := s.amenities.Update(ctx, dto.toEntity(), opts...)
	if err != nil {
		return AmenityDTO{}, err
	}
	return amenityToDTO(updated), nil
}

// DeleteAmenity soft-deletes an amenity no live listing offers.
func (s *Service) DeleteAmenity(ctx context.Context, amenityID id.ID, opts ...domain.WriteOption) (AmenityDTO, error) {
	a, err := s.amenities.GetByID(ctx, amenityID)
	if err != nil {
		return AmenityDTO{}, err
	}
	if err := s.ensureAmenityUnreferenced(ctx, a); err != nil {
		return AmenityDTO{}, err
	}
	deleted, err := s.amenities.DeleteEntity(ctx, a, opts...)
	if err != nil {
		return AmenityDTO{}, err
	}
	return amenityToDTO(deleted), nil
}

// GetAmenity returns a live amenity in its transport shape.
func (s *Service) GetAmenity(ctx context.Context, amenityID id.ID) (AmenityDTO, error) {
	a, err := s.amenities.GetByID(ctx, amenityID)
	if err != nil {
		return AmenityDTO{}, err
	}
	return amenityToDTO(a), nil
}

// ListAmenities returns the live amenities as DTOs. A nil categoryID lists all.
func (s *Service) ListAmenities(ctx context.Context, categoryID id.ID) ([]AmenityDTO, error) {
	var (
		items []*amenity.Amenity
		err   error
	)
	if id.IsNil(categoryID) {
		items, err = s.amenities.Find(ctx)
	} else {
		items, err = s.GetAmenitiesByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]AmenityDTO, 0, len(items))
	for _, a := range items {
		dtos = append(dtos, amenityToDTO(a))
	}
	return dtos, nil
}

// GetAmenitiesByCategory returns the live amenities of a category.
func (s *Service) GetAmenitiesByCategory(ctx context.Context, categoryID id.ID) ([]*amenity.Amenity, error) {
	return s.amenities.FindByCategory(ctx, categoryID)
}

// DeleteAmenityCategory soft-deletes a category with no live amenities.
func (s *Service) DeleteAmenityCategory(ctx context.Context, categoryID id.ID, opts ...domain.WriteOption) (*category.Category, error) {
	c, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategoryUnreferenced(ctx, c); err != nil {
		return nil, err
	}
	return s.categories.DeleteEntity(ctx, c, opts...)
}

// AddListingAmenity links a listing to an existing amenity.
func (s *Service) AddListingAmenity(ctx context.Context, link *listingamenity.ListingAmenity, opts ...domain.WriteOption) (*listingamenity.ListingAmenity, error) {
	if _, err := s.amenities.GetByID(ctx, link.AmenityID); err != nil {
		return nil, err
	}
	return s.listingAmenities.Create(ctx, link, opts...)
}

func (s *Service) ensureAmenityUnreferenced(ctx context.Context, a *amenity.Amenity) error {
	used, err := s.listingAmenities.AnyForAmenity(ctx, a.ID)
	if err != nil {
		return err
	}
	if used {
		logger.Info(ctx, "amenity still offered by listings", "amenity_id", a.ID)
		return apperror.NewNotDeletable("amenity", a.ID.String(), "listing amenity")
	}
	return nil
}

func (s *Service) ensureCategoryUnreferenced(ctx context.Context, c *category.Category) error {
	used, err := s.amenities.AnyInCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	if used {
		logger.Info(ctx, "category still has amenities", "category_id", c.ID)
		return apperror.NewNotDeletable("amenity category", c.ID.String(), "amenity")
	}
	return nil
}
