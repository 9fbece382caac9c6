package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/handler"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CustomerHandler *handler.CustomerHandler
	VehicleHandler  *handler.VehicleHandler
	TripHandler     *handler.TripHandler
	EstimateHandler *handler.EstimateHandler
	TokenHandler    *handler.TokenHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Customer routes.
		customers := v1.Group("/customers")
		{
			customers.POST("", deps.CustomerHandler.Create)
			customers.GET("", deps.CustomerHandler.GetAll)
			customers.GET("/:id", deps.CustomerHandler.Get)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.POST("/sync", deps.VehicleHandler.Sync)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
			vehicles.PATCH("/:id/state", deps.VehicleHandler.UpdateState)
			vehicles.POST("/:id/wake", deps.VehicleHandler.Wake)
			vehicles.GET("/:id/location", deps.VehicleHandler.GetLocation)
			vehicles.GET("/:id/position", deps.VehicleHandler.GetPosition)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/active", deps.TripHandler.GetActive)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("/:id/start", deps.TripHandler.StartTrip)
			trips.POST("/:id/telemetry", deps.TripHandler.AddTelemetry)
			trips.GET("/:id/telemetry", deps.TripHandler.GetTelemetry)
			trips.POST("/:id/end", deps.TripHandler.EndTrip)
			trips.POST("/:id/cancel", deps.TripHandler.CancelTrip)
			trips.GET("/:id/receipt", deps.TripHandler.GetReceipt)
		}

		// Fare estimate routes.
		estimates := v1.Group("/estimates")
		{
			estimates.GET("/price", deps.EstimateHandler.GetPrice)
		}

		// Token issuance routes.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/token", deps.TokenHandler.Issue)
		}
	}

	return router
}
