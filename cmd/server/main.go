package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/app"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/auth"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/config"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/handler"
	internalRedis "github.com/Victordtesla24/ride-with-vic-app-sub001/internal/redis"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository/postgres"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/uber"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewTripLockStore(redisClient)
	positionStore := internalRedis.NewVehiclePositionStore(redisClient)
	estimateCache := internalRedis.NewEstimateCache(redisClient)

	// Initialize repositories.
	customerRepo := postgres.NewCustomerRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	tripRepo := postgres.NewTripRepository(db)

	// Initialize external clients.
	teslaClient := tesla.NewClient(cfg.Tesla.BaseURL, tesla.StaticToken(cfg.Tesla.AccessToken))
	uberClient := uber.NewClient(cfg.Uber.BaseURL, cfg.Uber.ServerToken, estimateCache)
	issuer := auth.NewIssuer(cfg.Auth.TokenURL)

	// Initialize services.
	receiptService := service.NewReceiptService()
	tripService := service.NewTripService(
		tripRepo, customerRepo, vehicleRepo,
		teslaClient, lockStore, positionStore,
		receiptService, service.FareStrategy(cfg.Fare.Strategy),
	)
	customerService := service.NewCustomerService(customerRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, teslaClient, positionStore)

	// Initialize handlers.
	customerHandler := handler.NewCustomerHandler(customerService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	tripHandler := handler.NewTripHandler(tripService, receiptService)
	estimateHandler := handler.NewEstimateHandler(uberClient)
	tokenHandler := handler.NewTokenHandler(issuer, handler.TokenCredentials{
		ClientID:      cfg.Auth.ClientID,
		ClientSecret:  cfg.Auth.ClientSecret,
		KeyID:         cfg.Auth.KeyID,
		ApplicationID: cfg.Auth.ApplicationID,
		PrivateKeyPEM: loadPrivateKey(cfg.Auth.PrivateKeyPath),
	})

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		CustomerHandler: customerHandler,
		VehicleHandler:  vehicleHandler,
		TripHandler:     tripHandler,
		EstimateHandler: estimateHandler,
		TokenHandler:    tokenHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// loadPrivateKey reads the assertion signing key, if configured. Signed
// assertion grants fail with a credential error when no key is present.
func loadPrivateKey(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("failed to read private key from %s: %v", path, err)
		return ""
	}
	return string(data)
}
