// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/core/apperror"
	"rentora/internal/core/id"
	"rentora/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParamID parses the :id path parameter.
func (h *BaseHandler) ParamID(c *gin.Context) (id.ID, bool) {
	return h.parseID(c, c.Param("id"), "id")
}

// QueryID parses an optional id query parameter. ok is false only on a parse failure.
func (h *BaseHandler) QueryID(c *gin.Context, key string) (entityID id.ID, present, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return id.Nil(), false, true
	}
	entityID, ok = h.parseID(c, raw, key)
	return entityID, true, ok
}

func (h *BaseHandler) parseID(c *gin.Context, raw, field string) (id.ID, bool) {
	entityID, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewFieldValidation(field, "invalid id format"))
		return id.Nil(), false
	}
	return entityID, true
}

// Error registers err on the gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List sends a list response.
func List[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, dto.NewListResponse(items))
}
