package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentora/internal/core/id"
)

func TestBaseEntity_Lifecycle(t *testing.T) {
	created := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	var b BaseEntity

	b.Init(created)
	assert.False(t, id.IsNil(b.ID))
	assert.Equal(t, created, b.CreatedDate)
	assert.True(t, b.IsLive())

	assigned := b.ID
	b.Init(created.Add(time.Hour))
	assert.Equal(t, assigned, b.ID, "existing id must be kept")

	modified := created.Add(2 * time.Hour)
	b.Touch(modified)
	if assert.NotNil(t, b.ModifiedDate) {
		assert.Equal(t, modified, *b.ModifiedDate)
	}

	deleted := created.Add(3 * time.Hour)
	b.MarkDeleted(deleted)
	assert.False(t, b.IsLive())
	if assert.NotNil(t, b.DeletedDate) {
		assert.Equal(t, deleted, *b.DeletedDate)
	}
}

func TestBaseEntity_BaseReturnsSelf(t *testing.T) {
	b := &BaseEntity{}
	assert.Same(t, b, b.Base())
}
