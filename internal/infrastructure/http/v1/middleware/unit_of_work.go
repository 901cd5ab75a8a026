package middleware

import (
	"github.com/gin-gonic/gin"

	"rentora/internal/domain"
)

// UnitOfWork gives every request its own unit of work on store, so changes
// staged by one request are never committed by another.
func UnitOfWork(store domain.DataStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(store.Begin(c.Request.Context()))
		c.Next()
	}
}
