// Package reservation provides guest bookings of listings.
package reservation

import (
	"context"
	"time"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/core/types"
)

// Reservation books a listing for a period.
type Reservation struct {
	entity.BaseEntity

	ListingID   id.ID       `db:"listing_id" json:"listingId"`
	BookedBy    id.ID       `db:"booked_by" json:"bookedBy"`
	OccupancyID id.ID       `db:"occupancy_id" json:"occupancyId"`
	StartDate   time.Time   `db:"start_date" json:"startDate"`
	EndDate     time.Time   `db:"end_date" json:"endDate"`
	TotalPrice  types.Money `db:"total_price" json:"totalPrice"`
}

// Validate checks the clock-independent rules. Dates relative to now are
// checked by the service.
func (r *Reservation) Validate(ctx context.Context) error {
	if err := entity.FirstError(
		entity.RequireID("listingId", r.ListingID),
		entity.RequireID("bookedBy", r.BookedBy),
		entity.RequireID("occupancyId", r.OccupancyID),
	); err != nil {
		return err
	}
	if r.StartDate.IsZero() {
		return apperror.NewFieldValidation("startDate", "startDate is required")
	}
	if !r.EndDate.After(r.StartDate) {
		return apperror.NewFieldValidation("endDate", "endDate must be after startDate")
	}
	if !types.IsPositive(r.TotalPrice) {
		return apperror.NewFieldValidation("totalPrice", "totalPrice must be greater than zero").
			WithDetail("value", r.TotalPrice.String())
	}
	return nil
}

// ValidateSchedule checks that the stay lies in the future relative to now.
func (r *Reservation) ValidateSchedule(now time.Time) error {
	if !r.StartDate.After(now) {
		return apperror.NewFieldValidation("startDate", "startDate must be in the future")
	}
	if !r.EndDate.After(now) {
		return apperror.NewFieldValidation("endDate", "endDate must be in the future")
	}
	return nil
}

func applyUpdate(dst, src *Reservation) {
	dst.ListingID = src.ListingID
	dst.BookedBy = src.BookedBy
	dst.OccupancyID = src.OccupancyID
	dst.StartDate = src.StartDate
	dst.EndDate = src.EndDate
	dst.TotalPrice = src.TotalPrice
}
