package listingamenity

import (
	"context"

	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

// Service provides business logic for listing-amenity links.
// Update is unsupported.
type Service struct {
	*domain.EntityService[*ListingAmenity]
}

// NewService creates a new ListingAmenity service.
func NewService(coll domain.Collection[*ListingAmenity], deps domain.ServiceDeps) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*ListingAmenity]{
		Collection: coll,
		Store:      deps.Store,
		EntityName: "listing amenity",
		Immutable:  true,
		Clock:      deps.Clock,
	})

	svc := &Service{EntityService: base}
	base.Hooks().OnBeforeCreate(svc.ensureUniquePair)

	return svc
}

func (s *Service) ensureUniquePair(ctx context.Context, l *ListingAmenity) error {
	return s.EnsureUnique(ctx, l,
		filter.Eq("listing_id", l.ListingID),
		filter.Eq("amenity_id", l.AmenityID),
	)
}

// FindByListing returns the live links of a listing.
func (s *Service) FindByListing(ctx context.Context, listingID id.ID) ([]*ListingAmenity, error) {
	return s.Find(ctx, filter.Eq("listing_id", listingID))
}

// AnyForAmenity reports whether a live link references the amenity.
func (s *Service) AnyForAmenity(ctx context.Context, amenityID id.ID) (bool, error) {
	return s.Exists(ctx, filter.Eq("amenity_id", amenityID))
}
