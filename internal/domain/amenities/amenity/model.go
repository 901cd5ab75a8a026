// Package amenity provides amenities offered by listings ("Wi-Fi", "Smoke alarm", ...).
package amenity

import (
	"context"

	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

// NameMaxLength bounds AmenityName.
const NameMaxLength = 100

// Amenity belongs to a category; its name is unique within the category.
type Amenity struct {
	entity.BaseEntity

	AmenityName string `db:"amenity_name" json:"amenityName"`
	CategoryID  id.ID  `db:"category_id" json:"categoryId"`
}

// Validate implements entity.Validatable interface.
func (a *Amenity) Validate(ctx context.Context) error {
	return entity.FirstError(
		entity.RequireText("amenityName", a.AmenityName),
		entity.LengthAtMost("amenityName", a.AmenityName, NameMaxLength),
		entity.RequireID("categoryId", a.CategoryID),
	)
}
