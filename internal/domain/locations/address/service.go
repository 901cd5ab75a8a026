package address

import (
	"rentora/internal/domain"
)

// Service provides business logic for addresses.
type Service struct {
	*domain.EntityService[*Address]
}

// NewService creates a new Address service.
func NewService(coll domain.Collection[*Address], deps domain.ServiceDeps) *Service {
	return &Service{
		EntityService: domain.NewEntityService(domain.EntityServiceConfig[*Address]{
			Collection:  coll,
			Store:       deps.Store,
			EntityName:  "address",
			ApplyUpdate: applyUpdate,
			Clock:       deps.Clock,
		}),
	}
}
