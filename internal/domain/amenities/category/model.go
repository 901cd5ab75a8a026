// Package category provides amenity categories ("Kitchen", "Safety", ...).
package category

import (
	"context"
	"strings"

	"rentora/internal/core/entity"
)

// Name length bounds: min exclusive, max inclusive.
const (
	NameMinLength = 2
	NameMaxLength = 100
)

// Category groups amenities. CategoryName is unique among live categories.
type Category struct {
	entity.BaseEntity

	CategoryName string `db:"category_name" json:"categoryName"`
}

// Normalize trims surrounding whitespace from the name.
func (c *Category) Normalize() {
	c.CategoryName = strings.TrimSpace(c.CategoryName)
}

// Validate implements entity.Validatable interface.
// Length is counted in runes after trimming.
func (c *Category) Validate(ctx context.Context) error {
	name := strings.TrimSpace(c.CategoryName)
	return entity.FirstError(
		entity.RequireText("categoryName", name),
		entity.LengthIn("categoryName", name, NameMinLength, NameMaxLength),
	)
}
