// Package listingamenity links listings to the amenities they offer.
package listingamenity

import (
	"context"

	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

// ListingAmenity is an immutable (listing, amenity) link; it can only be retired.
type ListingAmenity struct {
	entity.BaseEntity

	ListingID id.ID `db:"listing_id" json:"listingId"`
	AmenityID id.ID `db:"amenity_id" json:"amenityId"`
}

// Validate implements entity.Validatable interface.
func (l *ListingAmenity) Validate(ctx context.Context) error {
	return entity.FirstError(
		entity.RequireID("listingId", l.ListingID),
		entity.RequireID("amenityId", l.AmenityID),
	)
}
