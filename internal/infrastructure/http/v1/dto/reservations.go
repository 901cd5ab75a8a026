package dto

import (
	"time"

	"rentora/internal/core/id"
	"rentora/internal/core/types"
	"rentora/internal/domain/reservations/reservation"
)

// ReservationRequest for creating or replacing a reservation.
type ReservationRequest struct {
	ListingID   id.ID       `json:"listingId"`
	BookedBy    id.ID       `json:"bookedBy"`
	OccupancyID id.ID       `json:"occupancyId"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	TotalPrice  types.Money `json:"totalPrice"`
}

func (r ReservationRequest) ToEntity() *reservation.Reservation {
	return &reservation.Reservation{
		BaseEntity:  base(id.Nil()),
		ListingID:   r.ListingID,
		BookedBy:    r.BookedBy,
		OccupancyID: r.OccupancyID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalPrice:  r.TotalPrice,
	}
}
