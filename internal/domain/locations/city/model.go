// Package city provides the City reference entity.
package city

import (
	"context"

	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

// Name length bounds: min exclusive, max inclusive.
const (
	NameMinLength = 4
	NameMaxLength = 185
)

// City belongs to a country; its name is unique among live cities.
type City struct {
	entity.BaseEntity

	Name      string `db:"name" json:"name"`
	CountryID id.ID  `db:"country_id" json:"countryId"`
}

// Validate implements entity.Validatable interface.
func (c *City) Validate(ctx context.Context) error {
	return entity.FirstError(
		entity.RequireText("name", c.Name),
		entity.LengthIn("name", c.Name, NameMinLength, NameMaxLength),
		entity.RequireID("countryId", c.CountryID),
	)
}
