// Package address provides postal addresses of listings.
package address

import (
	"context"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

// Address is a postal address inside a city.
type Address struct {
	entity.BaseEntity

	CityID    id.ID `db:"city_id" json:"cityId"`
	CountryID id.ID `db:"country_id" json:"countryId"`

	AddressLine1 string `db:"address_line1" json:"addressLine1"`
	AddressLine2 string `db:"address_line2" json:"addressLine2,omitempty"`
	AddressLine3 string `db:"address_line3" json:"addressLine3,omitempty"`
	AddressLine4 string `db:"address_line4" json:"addressLine4,omitempty"`

	Province string `db:"province" json:"province,omitempty"`

	// ZipCode is optional; when present it holds digits only.
	ZipCode *string `db:"zip_code" json:"zipCode,omitempty"`
}

// Validate implements entity.Validatable interface.
func (a *Address) Validate(ctx context.Context) error {
	if err := entity.RequireText("addressLine1", a.AddressLine1); err != nil {
		return err
	}
	if a.ZipCode != nil && *a.ZipCode != "" && !isDigits(*a.ZipCode) {
		return apperror.NewFieldValidation("zipCode", "zip code must contain digits only").
			WithDetail("value", *a.ZipCode)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func applyUpdate(dst, src *Address) {
	dst.CityID = src.CityID
	dst.CountryID = src.CountryID
	dst.AddressLine1 = src.AddressLine1
	dst.AddressLine2 = src.AddressLine2
	dst.AddressLine3 = src.AddressLine3
	dst.AddressLine4 = src.AddressLine4
	dst.Province = src.Province
	dst.ZipCode = src.ZipCode
}
