package listing

import (
	"rentora/internal/domain"
)

// Service provides business logic for listings.
type Service struct {
	*domain.EntityService[*Listing]
}

// NewService creates a new Listing service.
func NewService(coll domain.Collection[*Listing], deps domain.ServiceDeps) *Service {
	return &Service{
		EntityService: domain.NewEntityService(domain.EntityServiceConfig[*Listing]{
			Collection:  coll,
			Store:       deps.Store,
			EntityName:  "listing",
			ApplyUpdate: applyUpdate,
			Clock:       deps.Clock,
		}),
	}
}
