package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
	"rentora/internal/infrastructure/http/v1/dto"
)

// EntityHandler provides generic CRUD handlers over an entity service.
type EntityHandler[T entity.Entity, Req dto.EntityRequest[T]] struct {
	*BaseHandler
	service *domain.EntityService[T]
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler[T entity.Entity, Req dto.EntityRequest[T]](
	base *BaseHandler,
	service *domain.EntityService[T],
) *EntityHandler[T, Req] {
	return &EntityHandler[T, Req]{BaseHandler: base, service: service}
}

// List handles GET /{entity}.
//
// Query parameters:
//   - ids: comma separated ids, resolved with GetMany (missing ids omitted)
//   - filter: JSON array of filter items, e.g. [{"field":"name","operator":"eq","value":"Springfield"}]
//
// Without parameters every live entity is returned.
func (h *EntityHandler[T, Req]) List(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("ids"); raw != "" {
		ids, err := id.ParseList(raw)
		if err != nil {
			h.Error(c, apperror.NewFieldValidation("ids", "invalid id list"))
			return
		}
		items, err := h.service.GetMany(ctx, ids)
		if err != nil {
			h.Error(c, err)
			return
		}
		List(c, items)
		return
	}

	if raw := c.Query("filter"); raw != "" {
		var conds []filter.Item
		if err := json.Unmarshal([]byte(raw), &conds); err != nil {
			h.Error(c, apperror.NewFieldValidation("filter", "invalid filter format (json expected)"))
			return
		}
		items, err := h.service.Find(ctx, conds...)
		if err != nil {
			h.Error(c, err)
			return
		}
		List(c, items)
		return
	}

	items := make([]T, 0)
	for item, err := range h.service.Get(ctx, nil) {
		if err != nil {
			h.Error(c, err)
			return
		}
		items = append(items, item)
	}
	List(c, items)
}

// Get handles GET /{entity}/:id.
func (h *EntityHandler[T, Req]) Get(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Create handles POST /{entity}.
func (h *EntityHandler[T, Req]) Create(c *gin.Context) {
	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PUT /{entity}/:id. The body replaces every mutable field.
func (h *EntityHandler[T, Req]) Update(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	e.Base().ID = entityID

	updated, err := h.service.Update(c.Request.Context(), e)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /{entity}/:id (soft delete).
func (h *EntityHandler[T, Req]) Delete(c *gin.Context) {
	entityID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
