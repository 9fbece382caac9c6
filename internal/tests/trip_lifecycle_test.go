package tests

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

// ──────────────────────────────────────────────
// TRIP LIFECYCLE
// ──────────────────────────────────────────────

// tripFixture bundles the mocks behind a TripService.
type tripFixture struct {
	service       *service.TripService
	tripRepo      *MockTripRepository
	customerRepo  *MockCustomerRepository
	vehicleRepo   *MockVehicleRepository
	locator       *MockVehicleLocator
	lockStore     *MockTripLockStore
	positionStore *MockVehiclePositionStore
}

func newTripFixture(strategy service.FareStrategy) *tripFixture {
	f := &tripFixture{
		tripRepo:      NewMockTripRepository(),
		customerRepo:  NewMockCustomerRepository(),
		vehicleRepo:   NewMockVehicleRepository(),
		locator:       NewMockVehicleLocator(40.7128, -74.0060),
		lockStore:     NewMockTripLockStore(),
		positionStore: NewMockVehiclePositionStore(),
	}

	f.customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Name: "Vic"})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", DisplayName: "Model 3", State: domain.VehicleStateOnline})

	f.service = service.NewTripService(
		f.tripRepo, f.customerRepo, f.vehicleRepo,
		f.locator, f.lockStore, f.positionStore,
		service.NewReceiptService(), strategy,
	)
	return f
}

func (f *tripFixture) createTrip(t *testing.T) *domain.Trip {
	t.Helper()
	trip, err := f.service.CreateTrip(context.Background(), service.CreateTripRequest{
		CustomerID:    "cust-1",
		VehicleID:     "veh-1",
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("unexpected error creating trip: %v", err)
	}
	return trip
}

func (f *tripFixture) startTrip(t *testing.T, tripID string) *domain.Trip {
	t.Helper()
	trip, err := f.service.StartTrip(context.Background(), service.StartTripRequest{TripID: tripID})
	if err != nil {
		t.Fatalf("unexpected error starting trip: %v", err)
	}
	return trip
}

func TestTrip_CreateStartsPendingWithZeroedFares(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	trip := f.createTrip(t)

	if trip.Status != domain.TripStatusPending {
		t.Errorf("expected status %s, got %s", domain.TripStatusPending, trip.Status)
	}
	if trip.ActualFare != 0 || trip.DiscountAmount != 0 || trip.FinalFare != 0 {
		t.Errorf("expected zeroed monetary fields, got actual=%v discount=%v final=%v",
			trip.ActualFare, trip.DiscountAmount, trip.FinalFare)
	}
	if len(trip.Telemetry) != 0 {
		t.Errorf("expected no telemetry on a pending trip, got %d points", len(trip.Telemetry))
	}
}

func TestTrip_CreateRejectsUnknownCustomer(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)

	_, err := f.service.CreateTrip(context.Background(), service.CreateTripRequest{
		CustomerID: "nobody",
		VehicleID:  "veh-1",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if f.tripRepo.CountTrips() != 0 {
		t.Errorf("expected no trip persisted, got %d", f.tripRepo.CountTrips())
	}
}

func TestTrip_CreateRejectsDiscountOutOfRange(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)

	for _, percent := range []int{-1, 101} {
		_, err := f.service.CreateTrip(context.Background(), service.CreateTripRequest{
			CustomerID:      "cust-1",
			VehicleID:       "veh-1",
			DiscountPercent: percent,
		})
		if !errors.Is(err, service.ErrInvalidDiscountPercent) {
			t.Errorf("percent %d: expected ErrInvalidDiscountPercent, got %v", percent, err)
		}
	}
}

func TestTrip_StartRecordsVehiclePositionAsOrigin(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	trip := f.startTrip(t, created.ID)

	if trip.Status != domain.TripStatusActive {
		t.Errorf("expected status %s, got %s", domain.TripStatusActive, trip.Status)
	}
	if trip.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}
	if !trip.StartLocation.HasCoordinates() {
		t.Fatal("expected start coordinates from the vehicle")
	}
	if *trip.StartLocation.Latitude != 40.7128 || *trip.StartLocation.Longitude != -74.0060 {
		t.Errorf("unexpected start coordinates (%v, %v)",
			*trip.StartLocation.Latitude, *trip.StartLocation.Longitude)
	}
	if len(trip.Telemetry) != 1 {
		t.Fatalf("expected start position as the first telemetry point, got %d points", len(trip.Telemetry))
	}
	if f.lockStore.Holder() != trip.ID {
		t.Errorf("expected active claim held by %s, got %q", trip.ID, f.lockStore.Holder())
	}
}

func TestTrip_StartRejectsNonPendingTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	_, err := f.service.StartTrip(context.Background(), service.StartTripRequest{TripID: created.ID})
	if !errors.Is(err, service.ErrTripNotPending) {
		t.Errorf("expected ErrTripNotPending, got %v", err)
	}
}

func TestTrip_SecondConcurrentStartLosesClaim(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	first := f.createTrip(t)
	second := f.createTrip(t)

	f.startTrip(t, first.ID)

	_, err := f.service.StartTrip(context.Background(), service.StartTripRequest{TripID: second.ID})
	if !errors.Is(err, service.ErrActiveTripExists) {
		t.Errorf("expected ErrActiveTripExists, got %v", err)
	}

	// Loser must not have mutated its trip.
	stored := f.tripRepo.GetTrip(second.ID)
	if stored.Status != domain.TripStatusPending {
		t.Errorf("expected losing trip to stay pending, got %s", stored.Status)
	}
}

func TestTrip_StartReleasesClaimWhenVehicleUnreachable(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)

	f.locator.GetLocationError = errors.New("vehicle asleep")

	_, err := f.service.StartTrip(context.Background(), service.StartTripRequest{TripID: created.ID})
	if err == nil {
		t.Fatal("expected an error when the vehicle is unreachable")
	}
	if f.lockStore.Holder() != "" {
		t.Errorf("expected claim released, still held by %q", f.lockStore.Holder())
	}

	// A later start must succeed once the vehicle responds.
	f.locator.GetLocationError = nil
	f.startTrip(t, created.ID)
}

func TestTrip_TelemetryPreservesArrivalOrder(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	points := []domain.TelemetryPoint{
		{Latitude: 40.7200, Longitude: -74.0000, Timestamp: time.Now().Add(1 * time.Minute)},
		{Latitude: 40.7300, Longitude: -73.9900, Timestamp: time.Now().Add(2 * time.Minute)},
		{Latitude: 40.7400, Longitude: -73.9800, Timestamp: time.Now().Add(3 * time.Minute)},
	}
	for _, p := range points {
		if _, err := f.service.AddTelemetry(context.Background(), service.AddTelemetryRequest{
			TripID: created.ID,
			Point:  p,
		}); err != nil {
			t.Fatalf("unexpected error adding telemetry: %v", err)
		}
	}

	stored := f.tripRepo.GetTrip(created.ID)
	// Start position plus the three recorded points.
	if len(stored.Telemetry) != len(points)+1 {
		t.Fatalf("expected %d telemetry points, got %d", len(points)+1, len(stored.Telemetry))
	}
	for i, p := range points {
		got := stored.Telemetry[i+1]
		if got.Latitude != p.Latitude || got.Longitude != p.Longitude {
			t.Errorf("point %d out of order: got (%v, %v)", i, got.Latitude, got.Longitude)
		}
	}
}

func TestTrip_TelemetryRejectedWhenNotActive(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)

	_, err := f.service.AddTelemetry(context.Background(), service.AddTelemetryRequest{
		TripID: created.ID,
		Point:  domain.TelemetryPoint{Latitude: 40.72, Longitude: -74.0},
	})
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Errorf("expected ErrTripNotActive, got %v", err)
	}
}

func TestTrip_TelemetryStampedWhenTimestampMissing(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	trip, err := f.service.AddTelemetry(context.Background(), service.AddTelemetryRequest{
		TripID: created.ID,
		Point:  domain.TelemetryPoint{Latitude: 40.72, Longitude: -74.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Telemetry[len(trip.Telemetry)-1].Timestamp.IsZero() {
		t.Error("expected the point to be stamped on arrival")
	}
}

func TestTrip_EndAppliesDiscountWithoutDoubleRounding(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	fare := 45.75
	percent := 10
	trip, err := f.service.EndTrip(context.Background(), service.EndTripRequest{
		TripID:          created.ID,
		ActualFare:      &fare,
		DiscountPercent: &percent,
	})
	if err != nil {
		t.Fatalf("unexpected error ending trip: %v", err)
	}

	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("expected status %s, got %s", domain.TripStatusCompleted, trip.Status)
	}
	if math.Abs(trip.DiscountAmount-4.575) > 1e-9 {
		t.Errorf("expected discount 4.575, got %v", trip.DiscountAmount)
	}
	if math.Abs(trip.FinalFare-41.175) > 1e-9 {
		t.Errorf("expected final fare 41.175, got %v", trip.FinalFare)
	}
	if trip.Receipt == nil || !trip.Receipt.Generated {
		t.Error("expected a generated receipt")
	}
	if f.lockStore.Holder() != "" {
		t.Errorf("expected claim released after completion, still held by %q", f.lockStore.Holder())
	}
}

func TestTrip_EndComputesFareFromRoute(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	// Vehicle ends up at a point roughly 111 km due north of the start.
	endLat, endLng := 41.7128, -74.0060
	trip, err := f.service.EndTrip(context.Background(), service.EndTripRequest{
		TripID:      created.ID,
		EndLocation: &domain.Location{Latitude: &endLat, Longitude: &endLng},
	})
	if err != nil {
		t.Fatalf("unexpected error ending trip: %v", err)
	}

	distance := service.RouteDistance([]domain.TelemetryPoint{
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: endLat, Longitude: endLng},
	})
	want := service.ComputeFare(service.FareStrategyFlatRate, distance, trip.EndTime.Sub(trip.StartTime).Minutes())
	if math.Abs(trip.ActualFare-want) > 1e-9 {
		t.Errorf("expected computed fare %v, got %v", want, trip.ActualFare)
	}
	if !trip.EndLocation.HasCoordinates() || *trip.EndLocation.Latitude != endLat {
		t.Error("expected caller-supplied end coordinates to be kept")
	}
}

func TestTrip_EndFallsBackToVehiclePosition(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	f.locator.SetLocation(40.7500, -73.9900)

	trip, err := f.service.EndTrip(context.Background(), service.EndTripRequest{TripID: created.ID})
	if err != nil {
		t.Fatalf("unexpected error ending trip: %v", err)
	}
	if !trip.EndLocation.HasCoordinates() {
		t.Fatal("expected end coordinates from the vehicle")
	}
	if *trip.EndLocation.Latitude != 40.7500 || *trip.EndLocation.Longitude != -73.9900 {
		t.Errorf("unexpected end coordinates (%v, %v)",
			*trip.EndLocation.Latitude, *trip.EndLocation.Longitude)
	}
}

func TestTrip_EndRejectedWhenNotActive(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)

	_, err := f.service.EndTrip(context.Background(), service.EndTripRequest{TripID: created.ID})
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Errorf("expected ErrTripNotActive, got %v", err)
	}

	_, err = f.service.EndTrip(context.Background(), service.EndTripRequest{TripID: "missing"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTrip_CancelPendingAndActive(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)

	pending := f.createTrip(t)
	cancelled, err := f.service.CancelTrip(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("unexpected error cancelling pending trip: %v", err)
	}
	if cancelled.Status != domain.TripStatusCancelled {
		t.Errorf("expected status %s, got %s", domain.TripStatusCancelled, cancelled.Status)
	}

	active := f.createTrip(t)
	f.startTrip(t, active.ID)
	if _, err := f.service.CancelTrip(context.Background(), active.ID); err != nil {
		t.Fatalf("unexpected error cancelling active trip: %v", err)
	}
	if f.lockStore.Holder() != "" {
		t.Errorf("expected claim released after cancellation, still held by %q", f.lockStore.Holder())
	}

	// Terminal states cannot be cancelled again.
	if _, err := f.service.CancelTrip(context.Background(), active.ID); !errors.Is(err, service.ErrTripNotCancellable) {
		t.Errorf("expected ErrTripNotCancellable, got %v", err)
	}
}

func TestTrip_GetActiveReflectsLifecycle(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)

	active, err := f.service.GetActiveTrip(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active trip, got %s", active.ID)
	}

	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	active, err = f.service.GetActiveTrip(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active == nil || active.ID != created.ID {
		t.Fatal("expected the started trip to be active")
	}

	if _, err := f.service.EndTrip(context.Background(), service.EndTripRequest{TripID: created.ID}); err != nil {
		t.Fatalf("unexpected error ending trip: %v", err)
	}

	active, err = f.service.GetActiveTrip(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active trip after completion, got %s", active.ID)
	}
}

func TestTrip_EndRejectsDiscountOutOfRange(t *testing.T) {
	t.Parallel()

	f := newTripFixture(service.FareStrategyFlatRate)
	created := f.createTrip(t)
	f.startTrip(t, created.ID)

	percent := 101
	_, err := f.service.EndTrip(context.Background(), service.EndTripRequest{
		TripID:          created.ID,
		DiscountPercent: &percent,
	})
	if !errors.Is(err, service.ErrInvalidDiscountPercent) {
		t.Errorf("expected ErrInvalidDiscountPercent, got %v", err)
	}

	// The failed end must not complete the trip.
	stored := f.tripRepo.GetTrip(created.ID)
	if stored.Status != domain.TripStatusActive {
		t.Errorf("expected trip to stay active, got %s", stored.Status)
	}
}
