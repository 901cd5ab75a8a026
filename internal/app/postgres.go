package app

import (
	"rentora/internal/domain/amenities/amenity"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/internal/domain/reservations/reservation"
	"rentora/internal/infrastructure/storage/postgres"
)

// PostgresCollections maps every entity onto its table. Unique keys are
// enforced by the partial indexes of the migrations.
func PostgresCollections(s *postgres.Store) Collections {
	return Collections{
		Addresses:         postgres.NewCollection[*address.Address](s, TableAddresses),
		Cities:            postgres.NewCollection[*city.City](s, TableCities),
		AmenityCategories: postgres.NewCollection[*category.Category](s, TableAmenityCategories),
		Amenities:         postgres.NewCollection[*amenity.Amenity](s, TableAmenities),
		Listings:          postgres.NewCollection[*listing.Listing](s, TableListings),
		Descriptions:      postgres.NewCollection[*description.Description](s, TableDescriptions),
		ListingAmenities:  postgres.NewCollection[*listingamenity.ListingAmenity](s, TableListingAmenities),
		Reservations:      postgres.NewCollection[*reservation.Reservation](s, TableReservations),
		EmailTemplates:    postgres.NewCollection[*emailtemplate.EmailTemplate](s, TableEmailTemplates),
	}
}
