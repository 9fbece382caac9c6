package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	internalRedis "github.com/Victordtesla24/ride-with-vic-app-sub001/internal/redis"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
)

// VehicleLocator reads a vehicle's current position from the telemetry provider.
type VehicleLocator interface {
	GetLocation(ctx context.Context, vehicleID string) (*tesla.Location, error)
}

// TripService drives the trip lifecycle: pending → active → completed,
// with cancellation from either non-terminal state.
type TripService struct {
	tripRepo       repository.TripRepository
	customerRepo   repository.CustomerRepository
	vehicleRepo    repository.VehicleRepository
	locator        VehicleLocator
	lockStore      internalRedis.TripLockStoreInterface
	positionStore  internalRedis.VehiclePositionStoreInterface
	receiptService *ReceiptService
	fareStrategy   FareStrategy
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	locator VehicleLocator,
	lockStore internalRedis.TripLockStoreInterface,
	positionStore internalRedis.VehiclePositionStoreInterface,
	receiptService *ReceiptService,
	fareStrategy FareStrategy,
) *TripService {
	return &TripService{
		tripRepo:       tripRepo,
		customerRepo:   customerRepo,
		vehicleRepo:    vehicleRepo,
		locator:        locator,
		lockStore:      lockStore,
		positionStore:  positionStore,
		receiptService: receiptService,
		fareStrategy:   fareStrategy,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	CustomerID      string
	VehicleID       string
	EstimatedFare   float64
	Notes           string
	PaymentMethod   string
	DiscountPercent int
	EndLocation     domain.Location // requested drop-off, coordinates unknown
}

// CreateTrip creates a trip in pending status with zeroed monetary fields.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, ErrInvalidDiscountPercent
	}
	if req.EstimatedFare < 0 {
		return nil, ErrInvalidFareAmount
	}

	// Referenced entities must exist at call time.
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		Status:          domain.TripStatusPending,
		EstimatedFare:   req.EstimatedFare,
		DiscountPercent: req.DiscountPercent,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		EndLocation:     req.EndLocation,
		CreatedAt:       time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// StartTripRequest contains the parameters for starting a trip.
type StartTripRequest struct {
	TripID        string
	StartLocation domain.Location
}

// StartTrip transitions a pending trip to active. The single-active-trip
// invariant is enforced by an atomic claim in the lock store, so two
// concurrent starts cannot both succeed. The vehicle's reported position
// becomes the start coordinates and the first telemetry point.
func (s *TripService) StartTrip(ctx context.Context, req StartTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusPending {
		return nil, ErrTripNotPending
	}

	claimed, err := s.lockStore.ClaimActive(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrActiveTripExists
	}

	location, err := s.locator.GetLocation(ctx, trip.VehicleID)
	if err != nil {
		s.releaseClaim(ctx, trip.ID)
		return nil, err
	}

	now := time.Now()
	lat, lng := location.Latitude, location.Longitude

	trip.Status = domain.TripStatusActive
	trip.StartTime = now
	trip.StartLocation.Latitude = &lat
	trip.StartLocation.Longitude = &lng
	if req.StartLocation.Address != "" {
		trip.StartLocation.Address = req.StartLocation.Address
	}
	if req.StartLocation.Label != "" {
		trip.StartLocation.Label = req.StartLocation.Label
	}
	trip.Telemetry = append(trip.Telemetry, domain.TelemetryPoint{
		Latitude:  lat,
		Longitude: lng,
		Timestamp: now,
		Speed:     location.Speed,
		Heading:   location.Heading,
	})

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		s.releaseClaim(ctx, trip.ID)
		return nil, err
	}

	// Secondary bookkeeping; never blocks the start.
	if err := s.positionStore.Update(ctx, trip.VehicleID, lat, lng); err != nil {
		log.Printf("failed to record vehicle position for %s: %v", trip.VehicleID, err)
	}
	if err := s.vehicleRepo.UpdateState(ctx, trip.VehicleID, domain.VehicleStateOnline); err != nil {
		log.Printf("failed to update vehicle state for %s: %v", trip.VehicleID, err)
	}

	return trip, nil
}

// AddTelemetryRequest contains the parameters for recording a telemetry point.
type AddTelemetryRequest struct {
	TripID string
	Point  domain.TelemetryPoint
}

// AddTelemetry appends a telemetry point to an active trip, preserving
// arrival order. Points without a timestamp are stamped on arrival.
func (s *TripService) AddTelemetry(ctx context.Context, req AddTelemetryRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	point := req.Point
	if point.Timestamp.IsZero() {
		point.Timestamp = time.Now()
	}

	trip.Telemetry = append(trip.Telemetry, point)

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err := s.positionStore.Update(ctx, trip.VehicleID, point.Latitude, point.Longitude); err != nil {
		log.Printf("failed to record vehicle position for %s: %v", trip.VehicleID, err)
	}

	return trip, nil
}

// EndTripRequest contains the parameters for ending a trip. Optional fields
// override the computed values.
type EndTripRequest struct {
	TripID          string
	EndLocation     *domain.Location
	ActualFare      *float64
	DiscountPercent *int
	Notes           string
}

// EndTrip completes an active trip: resolves the end location, computes
// distance over the full location timeline, derives or accepts the fare,
// applies the discount and generates a receipt. Ending a trip that is not
// active fails; it never silently recomputes.
func (s *TripService) EndTrip(ctx context.Context, req EndTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	endLocation, err := s.resolveEndLocation(ctx, trip, req.EndLocation)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	distance := RouteDistance(routeTimeline(trip, *endLocation, now))
	durationMin := now.Sub(trip.StartTime).Minutes()

	actualFare := ComputeFare(s.fareStrategy, distance, durationMin)
	if req.ActualFare != nil {
		actualFare = *req.ActualFare
	}

	discountPercent := trip.DiscountPercent
	if req.DiscountPercent != nil {
		discountPercent = *req.DiscountPercent
	}

	discountAmount, finalFare, err := ApplyDiscount(actualFare, discountPercent)
	if err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusCompleted
	trip.EndTime = now
	trip.EndLocation = *endLocation
	trip.ActualFare = actualFare
	trip.DiscountPercent = discountPercent
	trip.DiscountAmount = discountAmount
	trip.FinalFare = finalFare
	if req.Notes != "" {
		trip.Notes = req.Notes
	}
	trip.Receipt = s.receiptService.Generate(trip)

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.releaseClaim(ctx, trip.ID)

	// Resetting the vehicle's display state is best-effort: the trip is
	// already completed and must stay completed.
	if err := s.vehicleRepo.UpdateState(ctx, trip.VehicleID, domain.VehicleStateOnline); err != nil {
		log.Printf("failed to update vehicle state for %s: %v", trip.VehicleID, err)
	}
	if endLocation.HasCoordinates() {
		if err := s.positionStore.Update(ctx, trip.VehicleID, *endLocation.Latitude, *endLocation.Longitude); err != nil {
			log.Printf("failed to record vehicle position for %s: %v", trip.VehicleID, err)
		}
	}

	return trip, nil
}

// CancelTrip cancels a pending or active trip.
func (s *TripService) CancelTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusPending && trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotCancellable
	}

	wasActive := trip.Status == domain.TripStatusActive
	trip.Status = domain.TripStatusCancelled

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if wasActive {
		s.releaseClaim(ctx, trip.ID)
	}

	return trip, nil
}

// GetActiveTrip returns the single active trip, or nil if none.
func (s *TripService) GetActiveTrip(ctx context.Context) (*domain.Trip, error) {
	return s.tripRepo.GetActive(ctx)
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves all trips.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// GetTripsByCustomer retrieves all trips for a customer.
func (s *TripService) GetTripsByCustomer(ctx context.Context, customerID string) ([]*domain.Trip, error) {
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	return s.tripRepo.GetByCustomerID(ctx, customerID)
}

// resolveEndLocation uses the caller's end location when it has coordinates,
// otherwise reads the vehicle's current position.
func (s *TripService) resolveEndLocation(ctx context.Context, trip *domain.Trip, override *domain.Location) (*domain.Location, error) {
	if override != nil && override.HasCoordinates() {
		merged := trip.EndLocation
		merged.Latitude = override.Latitude
		merged.Longitude = override.Longitude
		if override.Address != "" {
			merged.Address = override.Address
		}
		if override.Label != "" {
			merged.Label = override.Label
		}
		return &merged, nil
	}

	location, err := s.locator.GetLocation(ctx, trip.VehicleID)
	if err != nil {
		return nil, err
	}

	lat, lng := location.Latitude, location.Longitude
	merged := trip.EndLocation
	merged.Latitude = &lat
	merged.Longitude = &lng
	return &merged, nil
}

// routeTimeline builds the ordered point sequence used for distance:
// start marker, recorded telemetry, end marker.
func routeTimeline(trip *domain.Trip, end domain.Location, endTime time.Time) []domain.TelemetryPoint {
	points := make([]domain.TelemetryPoint, 0, len(trip.Telemetry)+2)

	if trip.StartLocation.HasCoordinates() {
		points = append(points, domain.TelemetryPoint{
			Latitude:  *trip.StartLocation.Latitude,
			Longitude: *trip.StartLocation.Longitude,
			Timestamp: trip.StartTime,
		})
	}

	points = append(points, trip.Telemetry...)

	if end.HasCoordinates() {
		points = append(points, domain.TelemetryPoint{
			Latitude:  *end.Latitude,
			Longitude: *end.Longitude,
			Timestamp: endTime,
		})
	}

	return points
}

func (s *TripService) releaseClaim(ctx context.Context, tripID string) {
	if err := s.lockStore.ReleaseActive(ctx, tripID); err != nil {
		log.Printf("failed to release active-trip claim for %s: %v", tripID, err)
	}
}
