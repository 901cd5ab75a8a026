// Package description provides the long-form description sections of a listing.
package description

import (
	"context"

	"rentora/internal/core/entity"
)

// ListingDescriptionMaxLength bounds the summary section.
const ListingDescriptionMaxLength = 500

// Description holds the free-text sections shown on a listing page.
type Description struct {
	entity.BaseEntity

	ListingDescription    string `db:"listing_description" json:"listingDescription"`
	TheSpace              string `db:"the_space" json:"theSpace"`
	GuestAccess           string `db:"guest_access" json:"guestAccess"`
	OtherDetails          string `db:"other_details" json:"otherDetails"`
	InteractionWithGuests string `db:"interaction_with_guests" json:"interactionWithGuests"`
}

// Validate implements entity.Validatable interface.
func (d *Description) Validate(ctx context.Context) error {
	return entity.FirstError(
		entity.RequireText("listingDescription", d.ListingDescription),
		entity.LengthAtMost("listingDescription", d.ListingDescription, ListingDescriptionMaxLength),
		entity.RequireText("theSpace", d.TheSpace),
		entity.RequireText("guestAccess", d.GuestAccess),
		entity.RequireText("otherDetails", d.OtherDetails),
		entity.RequireText("interactionWithGuests", d.InteractionWithGuests),
	)
}
