package amenity

import (
	"context"

	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

// Service provides business logic for amenities.
type Service struct {
	*domain.EntityService[*Amenity]
}

// NewService creates a new Amenity service.
func NewService(coll domain.Collection[*Amenity], deps domain.ServiceDeps) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Amenity]{
		Collection: coll,
		Store:      deps.Store,
		EntityName: "amenity",
		ApplyUpdate: func(dst, src *Amenity) {
			dst.AmenityName = src.AmenityName
			dst.CategoryID = src.CategoryID
		},
		Clock: deps.Clock,
	})

	svc := &Service{EntityService: base}
	base.Hooks().OnBeforeSave(svc.ensureUniqueInCategory)

	return svc
}

func (s *Service) ensureUniqueInCategory(ctx context.Context, a *Amenity) error {
	return s.EnsureUnique(ctx, a,
		filter.Eq("category_id", a.CategoryID),
		filter.Eq("amenity_name", a.AmenityName),
	)
}

// FindByCategory returns the live amenities of a category.
func (s *Service) FindByCategory(ctx context.Context, categoryID id.ID) ([]*Amenity, error) {
	return s.Find(ctx, filter.Eq("category_id", categoryID))
}

// AnyInCategory reports whether a live amenity references the category.
func (s *Service) AnyInCategory(ctx context.Context, categoryID id.ID) (bool, error) {
	return s.Exists(ctx, filter.Eq("category_id", categoryID))
}
