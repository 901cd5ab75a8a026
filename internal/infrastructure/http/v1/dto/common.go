// Package dto provides data transfer objects for HTTP API.
package dto

import (
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

// EntityRequest is a request body that maps onto a new entity value.
// The same body serves create and full-replace update.
type EntityRequest[T any] interface {
	ToEntity() T
}

// ListResponse wraps a list of items.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a list response, never rendering a null items array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the body rendered for every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func base(entityID id.ID) entity.BaseEntity {
	return entity.BaseEntity{ID: entityID}
}
