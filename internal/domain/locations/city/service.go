package city

import (
	"context"

	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
)

// Service provides business logic for cities.
type Service struct {
	*domain.EntityService[*City]
}

// NewService creates a new City service.
func NewService(coll domain.Collection[*City], deps domain.ServiceDeps) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*City]{
		Collection: coll,
		Store:      deps.Store,
		EntityName: "city",
		ApplyUpdate: func(dst, src *City) {
			dst.Name = src.Name
			dst.CountryID = src.CountryID
		},
		Clock: deps.Clock,
	})

	svc := &Service{EntityService: base}
	base.Hooks().OnBeforeSave(svc.ensureUniqueName)

	return svc
}

func (s *Service) ensureUniqueName(ctx context.Context, c *City) error {
	return s.EnsureUnique(ctx, c, filter.Eq("name", c.Name))
}

// FindByCountry returns the live cities of a country.
func (s *Service) FindByCountry(ctx context.Context, countryID id.ID) ([]*City, error) {
	return s.Find(ctx, filter.Eq("country_id", countryID))
}
