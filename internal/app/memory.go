package app

import (
	"rentora/internal/core/entity"
	"rentora/internal/domain/amenities/amenity"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/internal/domain/reservations/reservation"
	"rentora/internal/infrastructure/storage/memory"
)

// MemoryCollections registers every table on s.
func MemoryCollections(s *memory.Store) Collections {
	return Collections{
		Addresses:         memoryCollection[*address.Address](s, TableAddresses),
		Cities:            memoryCollection[*city.City](s, TableCities),
		AmenityCategories: memoryCollection[*category.Category](s, TableAmenityCategories),
		Amenities:         memoryCollection[*amenity.Amenity](s, TableAmenities),
		Listings:          memoryCollection[*listing.Listing](s, TableListings),
		Descriptions:      memoryCollection[*description.Description](s, TableDescriptions),
		ListingAmenities:  memoryCollection[*listingamenity.ListingAmenity](s, TableListingAmenities),
		Reservations:      memoryCollection[*reservation.Reservation](s, TableReservations),
		EmailTemplates:    memoryCollection[*emailtemplate.EmailTemplate](s, TableEmailTemplates),
	}
}

// NewMemoryServices builds services over a fresh in-memory store.
func NewMemoryServices(opts Options) *Services {
	s := memory.NewStore()
	return NewServices(s, MemoryCollections(s), opts)
}

func memoryCollection[T entity.Entity](s *memory.Store, table string) *memory.Collection[T] {
	keys := make([]memory.UniqueKey, 0, len(UniqueKeys[table]))
	for _, cols := range UniqueKeys[table] {
		keys = append(keys, memory.UniqueKey{Columns: cols})
	}
	return memory.NewCollection[T](s, table, keys...)
}
