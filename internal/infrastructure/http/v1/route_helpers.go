package v1

import (
	"github.com/gin-gonic/gin"
)

// EntityRouteHandler defines the handlers of a CRUD resource.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterEntityRoutes registers standard CRUD routes for an entity.
//
// Usage:
//
//	h := handlers.NewEntityHandler[*city.City, dto.CityRequest](base, svc.Cities.EntityService)
//	RegisterEntityRoutes(api.Group("/cities"), h)
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}
