package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
)

// ──────────────────────────────────────────────
// VEHICLE MANAGEMENT
// ──────────────────────────────────────────────

func newVehicleService() (*service.VehicleService, *MockVehicleRepository, *MockVehicleProvider, *MockVehiclePositionStore) {
	vehicleRepo := NewMockVehicleRepository()
	provider := NewMockVehicleProvider()
	positionStore := NewMockVehiclePositionStore()
	return service.NewVehicleService(vehicleRepo, provider, positionStore), vehicleRepo, provider, positionStore
}

func TestVehicle_SyncUpsertsProviderListing(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, provider, _ := newVehicleService()
	provider.Vehicles = []tesla.Vehicle{
		{ID: 12345, VIN: "5YJ3E1EA7KF000001", DisplayName: "Vic's Model 3", State: "online"},
		{ID: 67890, VIN: "5YJ3E1EA7KF000002", DisplayName: "Spare", State: "asleep"},
	}

	vehicles, err := svc.SyncVehicles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}

	stored := vehicleRepo.GetVehicle("12345")
	if stored == nil {
		t.Fatal("expected vehicle 12345 to be stored")
	}
	if stored.State != domain.VehicleStateOnline {
		t.Errorf("expected state online, got %s", stored.State)
	}

	// Provider states outside the known set are stored as offline.
	spare := vehicleRepo.GetVehicle("67890")
	if spare.State != domain.VehicleStateOffline {
		t.Errorf("expected unknown state mapped to offline, got %s", spare.State)
	}
}

func TestVehicle_WakeTransitionsThroughWaking(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, provider, _ := newVehicleService()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", State: domain.VehicleStateOffline})

	vehicle, err := svc.WakeVehicle(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.State != domain.VehicleStateOnline {
		t.Errorf("expected online after wake, got %s", vehicle.State)
	}
	if provider.WakeCallCount != 1 {
		t.Errorf("expected one wake call, got %d", provider.WakeCallCount)
	}
}

func TestVehicle_WakeFailureLeavesVehicleOffline(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, provider, _ := newVehicleService()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", State: domain.VehicleStateOffline})
	provider.WakeError = errors.New("vehicle did not respond")

	_, err := svc.WakeVehicle(context.Background(), "veh-1")
	if err == nil {
		t.Fatal("expected an error when the wake times out")
	}

	stored := vehicleRepo.GetVehicle("veh-1")
	if stored.State != domain.VehicleStateOffline {
		t.Errorf("expected offline after failed wake, got %s", stored.State)
	}
}

func TestVehicle_GetLocationRecordsPosition(t *testing.T) {
	t.Parallel()

	svc, _, provider, positionStore := newVehicleService()
	provider.Location = tesla.Location{Latitude: 40.7128, Longitude: -74.0060}

	location, err := svc.GetLocation(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location.Latitude != 40.7128 {
		t.Errorf("unexpected latitude %v", location.Latitude)
	}

	position, err := svc.LastPosition(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if position == nil || position.Lat != 40.7128 || position.Lng != -74.0060 {
		t.Errorf("expected position recorded, got %+v", position)
	}
	if positionStore.UpdateCallCount != 1 {
		t.Errorf("expected one position update, got %d", positionStore.UpdateCallCount)
	}
}

func TestVehicle_UpdateStateRejectsUnknownState(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _, _ := newVehicleService()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", State: domain.VehicleStateOnline})

	_, err := svc.UpdateState(context.Background(), "veh-1", domain.VehicleState("flying"))
	if !errors.Is(err, service.ErrInvalidVehicleState) {
		t.Errorf("expected ErrInvalidVehicleState, got %v", err)
	}
}
