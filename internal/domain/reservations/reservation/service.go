package reservation

import (
	"context"

	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

// Service provides business logic for reservations.
type Service struct {
	*domain.EntityService[*Reservation]
}

// NewService creates a new Reservation service.
func NewService(coll domain.Collection[*Reservation], deps domain.ServiceDeps) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Reservation]{
		Collection:  coll,
		Store:       deps.Store,
		EntityName:  "reservation",
		ApplyUpdate: applyUpdate,
		Clock:       deps.Clock,
	})

	svc := &Service{EntityService: base}
	base.Hooks().OnBeforeSave(svc.validateSchedule)
	base.Hooks().OnBeforeSave(svc.ensureNotDuplicate)

	return svc
}

func (s *Service) validateSchedule(ctx context.Context, r *Reservation) error {
	return r.ValidateSchedule(s.Now())
}

// ensureNotDuplicate rejects a reservation identical to a live one in all business fields.
func (s *Service) ensureNotDuplicate(ctx context.Context, r *Reservation) error {
	return s.EnsureUnique(ctx, r,
		filter.Eq("listing_id", r.ListingID),
		filter.Eq("booked_by", r.BookedBy),
		filter.Eq("occupancy_id", r.OccupancyID),
		filter.Eq("start_date", r.StartDate),
		filter.Eq("end_date", r.EndDate),
		filter.Eq("total_price", r.TotalPrice),
	)
}

// FindByListing returns the live reservations of a listing.
func (s *Service) FindByListing(ctx context.Context, listingID id.ID) ([]*Reservation, error) {
	return s.Find(ctx, filter.Eq("listing_id", listingID))
}
