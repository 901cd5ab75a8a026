// Package listing provides rentable property listings.
package listing

import (
	"context"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/core/types"
)

// Length bounds: min exclusive, max inclusive.
const (
	TitleMinLength       = 2
	TitleMaxLength       = 50
	DescriptionMinLength = 2
	DescriptionMaxLength = 4000
)

// Status is the publication state of a listing.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusUnlisted  Status = "unlisted"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnlisted:
		return true
	}
	return false
}

// Listing is a property offered for rent.
type Listing struct {
	entity.BaseEntity

	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Price       types.Money `db:"price" json:"price"`
	Status      Status      `db:"status" json:"status"`
	OccupancyID id.ID       `db:"occupancy_id" json:"occupancyId"`
}

// Validate implements entity.Validatable interface.
func (l *Listing) Validate(ctx context.Context) error {
	if err := entity.FirstError(
		entity.RequireText("title", l.Title),
		entity.LengthIn("title", l.Title, TitleMinLength, TitleMaxLength),
		entity.RequireText("description", l.Description),
		entity.LengthIn("description", l.Description, DescriptionMinLength, DescriptionMaxLength),
	); err != nil {
		return err
	}
	if !types.IsPositive(l.Price) {
		return apperror.NewFieldValidation("price", "price must be greater than zero").
			WithDetail("value", l.Price.String())
	}
	if !l.Status.IsValid() {
		return apperror.NewFieldValidation("status", "unknown listing status").
			WithDetail("value", l.Status)
	}
	return nil
}

func applyUpdate(dst, src *Listing) {
	dst.Title = src.Title
	dst.Description = src.Description
	dst.Price = src.Price
	dst.Status = src.Status
	dst.OccupancyID = src.OccupancyID
}
