package description

import (
	"rentora/internal/domain"
)

// Service provides business logic for listing descriptions.
type Service struct {
	*domain.EntityService[*Description]
}

// NewService creates a new Description service.
func NewService(coll domain.Collection[*Description], deps domain.ServiceDeps) *Service {
	return &Service{
		EntityService: domain.NewEntityService(domain.EntityServiceConfig[*Description]{
			Collection: coll,
			Store:      deps.Store,
			EntityName: "description",
			ApplyUpdate: func(dst, src *Description) {
				dst.ListingDescription = src.ListingDescription
				dst.TheSpace = src.TheSpace
				dst.GuestAccess = src.GuestAccess
				dst.OtherDetails = src.OtherDetails
				dst.InteractionWithGuests = src.InteractionWithGuests
			},
			Clock: deps.Clock,
		}),
	}
}
