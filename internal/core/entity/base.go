package entity

import (
	"context"
	"time"

	"rentora/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without storage access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Normalizer is implemented by entities that canonicalize input fields
// (trimming, casing) before validation and uniqueness checks.
type Normalizer interface {
	Normalize()
}

// Entity is the constraint every persisted business entity satisfies.
// Implemented by pointers to structs embedding BaseEntity.
type Entity interface {
	Validatable
	GetID() id.ID
	Base() *BaseEntity
}

// BaseEntity contains the lifecycle fields shared by all entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7), assigned once at creation.
	ID id.ID `db:"id" json:"id"`

	// IsDeleted marks a soft-deleted (retired) entity.
	IsDeleted bool `db:"is_deleted" json:"isDeleted"`

	CreatedDate  time.Time  `db:"created_date" json:"createdDate"`
	ModifiedDate *time.Time `db:"modified_date" json:"modifiedDate,omitempty"`
	DeletedDate  *time.Time `db:"deleted_date" json:"deletedDate,omitempty"`
}

// GetID returns the entity identifier.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// Base gives generic code access to the lifecycle fields.
func (b *BaseEntity) Base() *BaseEntity {
	return b
}

// IsLive reports whether the entity has not been soft-deleted.
func (b *BaseEntity) IsLive() bool {
	return !b.IsDeleted
}

// Init assigns an ID (if missing) and the creation timestamp.
func (b *BaseEntity) Init(now time.Time) {
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	b.IsDeleted = false
	b.CreatedDate = now
	b.ModifiedDate = nil
	b.DeletedDate = nil
}

// Touch stamps the modification time.
func (b *BaseEntity) Touch(now time.Time) {
	b.ModifiedDate = &now
}

// MarkDeleted retires the entity.
func (b *BaseEntity) MarkDeleted(now time.Time) {
	b.IsDeleted = true
	b.DeletedDate = &now
}
