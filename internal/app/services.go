// Package app assembles the entity services on top of a DataStore.
package app

import (
	"time"

	"rentora/internal/domain"
	"rentora/internal/domain/audit"
	"rentora/internal/domain/amenities/amenity"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/amenities/management"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/internal/domain/reservations/reservation"
)

// Table names, shared by every storage driver.
const (
	TableAddresses         = "addresses"
	TableCities            = "cities"
	TableAmenityCategories = "amenity_categories"
	TableAmenities         = "amenities"
	TableListings          = "listings"
	TableDescriptions      = "descriptions"
	TableListingAmenities  = "listing_amenities"
	TableReservations      = "reservations"
	TableEmailTemplates    = "email_templates"
)

// UniqueKeys lists the columns unique among live rows, per table.
var UniqueKeys = map[string][][]string{
	TableCities:            {{"name"}},
	TableAmenityCategories: {{"category_name"}},
	TableAmenities:         {{"category_id", "amenity_name"}},
	TableListingAmenities:  {{"listing_id", "amenity_id"}},
	TableEmailTemplates:    {{"subject", "body"}},
	TableReservations:      {{"listing_id", "booked_by", "occupancy_id", "start_date", "end_date", "total_price"}},
}

// Collections holds one collection per entity type, all backed by the same store.
type Collections struct {
	Addresses         domain.Collection[*address.Address]
	Cities            domain.Collection[*city.City]
	AmenityCategories domain.Collection[*category.Category]
	Amenities         domain.Collection[*amenity.Amenity]
	Listings          domain.Collection[*listing.Listing]
	Descriptions      domain.Collection[*description.Description]
	ListingAmenities  domain.Collection[*listingamenity.ListingAmenity]
	Reservations      domain.Collection[*reservation.Reservation]
	EmailTemplates    domain.Collection[*emailtemplate.EmailTemplate]
}

// Services is the full set of application services.
type Services struct {
	Store domain.DataStore

	Addresses         *address.Service
	Cities            *city.Service
	AmenityCategories *category.Service
	Amenities         *amenity.Service
	Listings          *listing.Service
	Descriptions      *description.Service
	ListingAmenities  *listingamenity.Service
	Reservations      *reservation.Service
	EmailTemplates    *emailtemplate.Service

	Management *management.Service
}

// Options tunes service construction.
type Options struct {
	// Clock overrides the service clock; nil means time.Now in UTC.
	Clock func() time.Time
	// Mailer delivers rendered email templates; nil disables delivery.
	Mailer emailtemplate.Mailer
	// Audit records every committed change; nil disables the audit trail.
	Audit audit.Recorder
}

// NewServices builds every service over store and colls.
func NewServices(store domain.DataStore, colls Collections, opts Options) *Services {
	deps := domain.ServiceDeps{Store: store, Clock: opts.Clock}

	svc := &Services{
		Store:             store,
		Addresses:         address.NewService(colls.Addresses, deps),
		Cities:            city.NewService(colls.Cities, deps),
		AmenityCategories: category.NewService(colls.AmenityCategories, deps),
		Amenities:         amenity.NewService(colls.Amenities, deps),
		Listings:          listing.NewService(colls.Listings, deps),
		Descriptions:      description.NewService(colls.Descriptions, deps),
		ListingAmenities:  listingamenity.NewService(colls.ListingAmenities, deps),
		Reservations:      reservation.NewService(colls.Reservations, deps),
		EmailTemplates:    emailtemplate.NewService(colls.EmailTemplates, deps, opts.Mailer),
	}
	svc.Management = management.NewService(svc.Amenities, svc.AmenityCategories, svc.ListingAmenities)

	if opts.Audit != nil {
		svc.attachAudit(opts.Audit)
	}

	return svc
}

func (s *Services) attachAudit(rec audit.Recorder) {
	audit.Attach(s.Addresses.Hooks(), TableAddresses, rec)
	audit.Attach(s.Cities.Hooks(), TableCities, rec)
	audit.Attach(s.AmenityCategories.Hooks(), TableAmenityCategories, rec)
	audit.Attach(s.Amenities.Hooks(), TableAmenities, rec)
	audit.Attach(s.Listings.Hooks(), TableListings, rec)
	audit.Attach(s.Descriptions.Hooks(), TableDescriptions, rec)
	audit.Attach(s.ListingAmenities.Hooks(), TableListingAmenities, rec)
	audit.Attach(s.Reservations.Hooks(), TableReservations, rec)
	audit.Attach(s.EmailTemplates.Hooks(), TableEmailTemplates, rec)
}
