// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"rentora/internal/app"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/auth"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/internal/domain/reservations/reservation"
	"rentora/internal/infrastructure/http/v1/dto"
	"rentora/internal/infrastructure/http/v1/handlers"
	"rentora/internal/infrastructure/http/v1/middleware"
	"rentora/internal/infrastructure/storage/postgres"
	"rentora/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Services *app.Services

	// StorageDriver is reported by the health endpoints.
	StorageDriver string

	// Pool is nil for the in-memory driver.
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator guards every mutating route. Nil leaves the API open.
	JWTValidator middleware.JWTValidator

	// AuthService serves /auth/token. Nil disables the endpoint.
	AuthService *auth.Service

	// Metrics enables /metrics and request instrumentation.
	Metrics *middleware.Metrics
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Global middleware (order matters!)
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(cfg.StorageDriver, cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		base := handlers.NewBaseHandler()

		if cfg.AuthService != nil {
			authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
			v1.POST("/auth/token", authHandler.Token)
		}

		api := v1.Group("")
		if cfg.JWTValidator != nil {
			api.Use(middleware.RequireAuthForWrites(cfg.JWTValidator))
		}
		api.Use(middleware.UnitOfWork(cfg.Services.Store))

		registerLocationRoutes(api, base, cfg.Services)
		registerAmenityRoutes(api, base, cfg.Services)
		registerListingRoutes(api, base, cfg.Services)
		registerReservationRoutes(api, base, cfg.Services)
		registerNotificationRoutes(api, base, cfg.Services, cfg.JWTValidator != nil)
	}

	return router
}

func registerLocationRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	RegisterEntityRoutes(api.Group("/addresses"),
		handlers.NewEntityHandler[*address.Address, dto.AddressRequest](base, svc.Addresses.EntityService))
	RegisterEntityRoutes(api.Group("/cities"),
		handlers.NewEntityHandler[*city.City, dto.CityRequest](base, svc.Cities.EntityService))
}

func registerAmenityRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	mgmt := handlers.NewManagementHandler(base, svc.Management)

	// Deletes go through management, which refuses while dependents are live.
	categories := handlers.NewEntityHandler[*category.Category, dto.CategoryRequest](base, svc.AmenityCategories.EntityService)
	group := api.Group("/amenity-categories")
	{
		group.GET("", categories.List)
		group.POST("", categories.Create)
		group.GET("/:id", categories.Get)
		group.PUT("/:id", categories.Update)
		group.DELETE("/:id", mgmt.DeleteCategory)
	}

	amenities := api.Group("/amenities")
	{
		amenities.GET("", mgmt.ListAmenities)
		amenities.POST("", mgmt.AddAmenity)
		amenities.GET("/:id", mgmt.GetAmenity)
		amenities.PUT("/:id", mgmt.UpdateAmenity)
		amenities.DELETE("/:id", mgmt.DeleteAmenity)
	}
}

func registerListingRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	RegisterEntityRoutes(api.Group("/listings"),
		handlers.NewEntityHandler[*listing.Listing, dto.ListingRequest](base, svc.Listings.EntityService))
	RegisterEntityRoutes(api.Group("/descriptions"),
		handlers.NewEntityHandler[*description.Description, dto.DescriptionRequest](base, svc.Descriptions.EntityService))

	mgmt := handlers.NewManagementHandler(base, svc.Management)
	links := handlers.NewEntityHandler[*listingamenity.ListingAmenity, dto.ListingAmenityRequest](base, svc.ListingAmenities.EntityService)
	group := api.Group("/listing-amenities")
	{
		group.GET("", links.List)
		group.POST("", mgmt.AddListingAmenity)
		group.GET("/:id", links.Get)
		group.PUT("/:id", links.Update) // always UNSUPPORTED_OPERATION
		group.DELETE("/:id", links.Delete)
	}
}

func registerReservationRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services) {
	RegisterEntityRoutes(api.Group("/reservations"),
		handlers.NewEntityHandler[*reservation.Reservation, dto.ReservationRequest](base, svc.Reservations.EntityService))
}

func registerNotificationRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, svc *app.Services, authEnabled bool) {
	group := api.Group("/email-templates")
	RegisterEntityRoutes(group,
		handlers.NewEntityHandler[*emailtemplate.EmailTemplate, dto.EmailTemplateRequest](base, svc.EmailTemplates.EntityService))

	email := handlers.NewEmailHandler(base, svc.EmailTemplates)
	group.POST("/:id/render", email.Render)
	if authEnabled {
		// real delivery is operator-only
		group.POST("/:id/send", middleware.RequireRole("admin"), email.Send)
	} else {
		group.POST("/:id/send", email.Send)
	}
}
