package dto

import (
	"rentora/internal/core/id"
	"rentora/internal/core/types"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
)

// ListingRequest for creating or replacing a listing.
type ListingRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       types.Money    `json:"price"`
	Status      listing.Status `json:"status"`
	OccupancyID id.ID          `json:"occupancyId"`
}

func (r ListingRequest) ToEntity() *listing.Listing {
	status := r.Status
	if status == "" {
		status = listing.StatusDraft
	}
	return &listing.Listing{
		BaseEntity:  base(id.Nil()),
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Status:      status,
		OccupancyID: r.OccupancyID,
	}
}

// DescriptionRequest for creating or replacing a listing description.
type DescriptionRequest struct {
	ListingDescription    string `json:"listingDescription"`
	TheSpace              string `json:"theSpace"`
	GuestAccess           string `json:"guestAccess"`
	OtherDetails          string `json:"otherDetails"`
	InteractionWithGuests string `json:"interactionWithGuests"`
}

func (r DescriptionRequest) ToEntity() *description.Description {
	return &description.Description{
		BaseEntity:            base(id.Nil()),
		ListingDescription:    r.ListingDescription,
		TheSpace:              r.TheSpace,
		GuestAccess:           r.GuestAccess,
		OtherDetails:          r.OtherDetails,
		InteractionWithGuests: r.InteractionWithGuests,
	}
}

// ListingAmenityRequest links a listing to an amenity.
type ListingAmenityRequest struct {
	ListingID id.ID `json:"listingId"`
	AmenityID id.ID `json:"amenityId"`
}

func (r ListingAmenityRequest) ToEntity() *listingamenity.ListingAmenity {
	return &listingamenity.ListingAmenity{BaseEntity: base(id.Nil()), ListingID: r.ListingID, AmenityID: r.AmenityID}
}
