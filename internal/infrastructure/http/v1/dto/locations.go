package dto

import (
	"rentora/internal/core/id"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
)

// AddressRequest for creating or replacing an address.
type AddressRequest struct {
	CityID       id.ID   `json:"cityId"`
	CountryID    id.ID   `json:"countryId"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	AddressLine3 string  `json:"addressLine3"`
	AddressLine4 string  `json:"addressLine4"`
	Province     string  `json:"province"`
	ZipCode      *string `json:"zipCode"`
}

func (r AddressRequest) ToEntity() *address.Address {
	return &address.Address{
		BaseEntity:   base(id.Nil()),
		CityID:       r.CityID,
		CountryID:    r.CountryID,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		AddressLine3: r.AddressLine3,
		AddressLine4: r.AddressLine4,
		Province:     r.Province,
		ZipCode:      r.ZipCode,
	}
}

// CityRequest for creating or replacing a city.
type CityRequest struct {
	Name      string `json:"name"`
	CountryID id.ID  `json:"countryId"`
}

func (r CityRequest) ToEntity() *city.City {
	return &city.City{BaseEntity: base(id.Nil()), Name: r.Name, CountryID: r.CountryID}
}
