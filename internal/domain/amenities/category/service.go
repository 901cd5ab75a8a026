package category

import (
	"context"

	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

// Service provides business logic for amenity categories.
// Deletion guarded by dependent amenities lives in the management service.
type Service struct {
	*domain.EntityService[*Category]
}

// NewService creates a new Category service.
func NewService(coll domain.Collection[*Category], deps domain.ServiceDeps) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Category]{
		Collection: coll,
		Store:      deps.Store,
		EntityName: "amenity category",
		ApplyUpdate: func(dst, src *Category) {
			dst.CategoryName = src.CategoryName
		},
		Clock: deps.Clock,
	})

	svc := &Service{EntityService: base}
	base.Hooks().OnBeforeSave(svc.ensureUniqueName)

	return svc
}

func (s *Service) ensureUniqueName(ctx context.Context, c *Category) error {
	return s.EnsureUnique(ctx, c, filter.Eq("category_name", c.CategoryName))
}
