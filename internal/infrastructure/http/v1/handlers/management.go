package handlers

import (
	"github.com/gin-gonic/gin"

	"rentora/internal/core/id"
	"rentora/internal/domain/amenities/management"
	"rentora/internal/infrastructure/http/v1/dto"
)

// ManagementHandler exposes the amenity operations that span several services.
type ManagementHandler struct {
	*BaseHandler
	service *management.Service
}

// NewManagementHandler creates a new management handler.
func NewManagementHandler(base *BaseHandler, service *management.Service) *ManagementHandler {
	return &ManagementHandler{BaseHandler: base, service: service}
}

// ListAmenities handles GET /amenities, optionally narrowed by ?categoryId=.
func (h *ManagementHandler) ListAmenities(c *gin.Context) {
	categoryID, present, ok := h.QueryID(c, "categoryId")
	if !ok {
		return
	}
	if !present {
		categoryID = id.Nil()
	}

	items, err := h.service.ListAmenities(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}

// GetAmenity handles GET /amenities/:id.
func (h *ManagementHandler) GetAmenity(c *gin.Context) {
	amenityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	a, err := h.service.GetAmenity(c.Request.Context(), amenityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// AddAmenity handles POST /amenities.
func (h *ManagementHandler) AddAmenity(c *gin.Context) {
	var req dto.AmenityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.AddAmenity(c.Request.Context(), req.ToDTO(id.Nil()))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// UpdateAmenity handles PUT /amenities/:id.
func (h *ManagementHandler) UpdateAmenity(c *gin.Context) {
	amenityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.AmenityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateAmenity(c.Request.Context(), req.ToDTO(amenityID))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// DeleteAmenity handles DELETE /amenities/:id.
// Fails with NOT_DELETABLE while a live listing offers the amenity.
func (h *ManagementHandler) DeleteAmenity(c *gin.Context) {
	amenityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if _, err := h.service.DeleteAmenity(c.Request.Context(), amenityID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteCategory handles DELETE /amenity-categories/:id.
// Fails with NOT_DELETABLE while the category has live amenities.
func (h *ManagementHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if _, err := h.service.DeleteAmenityCategory(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// AddListingAmenity handles POST /listing-amenities.
func (h *ManagementHandler) AddListingAmenity(c *gin.Context) {
	var req dto.ListingAmenityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.AddListingAmenity(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}
