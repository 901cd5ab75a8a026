package dto

import (
	"rentora/internal/core/id"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/amenities/management"
)

// CategoryRequest for creating or replacing an amenity category.
type CategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

func (r CategoryRequest) ToEntity() *category.Category {
	return &category.Category{BaseEntity: base(id.Nil()), CategoryName: r.CategoryName}
}

// AmenityRequest for creating or replacing an amenity.
// Amenities are written through the management service, which checks the category.
type AmenityRequest struct {
	AmenityName string `json:"amenityName"`
	CategoryID  id.ID  `json:"categoryId"`
}

// ToDTO maps the request onto the management shape.
func (r AmenityRequest) ToDTO(amenityID id.ID) management.AmenityDTO {
	return management.AmenityDTO{ID: amenityID, AmenityName: r.AmenityName, CategoryID: r.CategoryID}
}
