package service

import (
	"context"
	"log"
	"time"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	internalRedis "github.com/Victordtesla24/ride-with-vic-app-sub001/internal/redis"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
)

// wakeTimeout bounds how long a wake request polls for the vehicle to come online.
const wakeTimeout = 20 * time.Second

// VehicleProvider is the subset of the telemetry provider's API used for
// vehicle management.
type VehicleProvider interface {
	ListVehicles(ctx context.Context) ([]tesla.Vehicle, error)
	GetLocation(ctx context.Context, vehicleID string) (*tesla.Location, error)
	WakeAndWait(ctx context.Context, vehicleID string, timeout time.Duration) error
}

// VehicleService handles vehicle management against the provider and the
// local store.
type VehicleService struct {
	vehicleRepo   repository.VehicleRepository
	provider      VehicleProvider
	positionStore internalRedis.VehiclePositionStoreInterface
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	provider VehicleProvider,
	positionStore internalRedis.VehiclePositionStoreInterface,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:   vehicleRepo,
		provider:      provider,
		positionStore: positionStore,
	}
}

// SyncVehicles pulls the provider's vehicle listing into the local store.
func (s *VehicleService) SyncVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	listed, err := s.provider.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}

	vehicles := make([]*domain.Vehicle, 0, len(listed))
	for _, v := range listed {
		state := domain.VehicleState(v.State)
		if !domain.ValidVehicleState(state) {
			state = domain.VehicleStateOffline
		}

		vehicle := &domain.Vehicle{
			ID:          v.StringID(),
			Name:        v.DisplayName,
			VIN:         v.VIN,
			DisplayName: v.DisplayName,
			State:       state,
		}

		if err := s.vehicleRepo.Upsert(ctx, vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, id)
}

// GetAllVehicles retrieves all vehicles.
func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

// UpdateState sets a vehicle's state after validating it.
func (s *VehicleService) UpdateState(ctx context.Context, id string, state domain.VehicleState) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	if !domain.ValidVehicleState(state) {
		return nil, ErrInvalidVehicleState
	}

	if err := s.vehicleRepo.UpdateState(ctx, id, state); err != nil {
		return nil, err
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

// WakeVehicle wakes a sleeping vehicle and waits for it to come online.
// The stored state tracks the transition: waking while polling, online on
// success, offline if the vehicle never responds.
func (s *VehicleService) WakeVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}

	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateState(ctx, id, domain.VehicleStateWaking); err != nil {
		log.Printf("failed to update vehicle state for %s: %v", id, err)
	}

	if err := s.provider.WakeAndWait(ctx, id, wakeTimeout); err != nil {
		if stateErr := s.vehicleRepo.UpdateState(ctx, id, domain.VehicleStateOffline); stateErr != nil {
			log.Printf("failed to update vehicle state for %s: %v", id, stateErr)
		}
		return nil, err
	}

	return s.UpdateState(ctx, id, domain.VehicleStateOnline)
}

// GetLocation reads the vehicle's live position from the provider and
// records it as the last known position.
func (s *VehicleService) GetLocation(ctx context.Context, id string) (*tesla.Location, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}

	location, err := s.provider.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.positionStore.Update(ctx, id, location.Latitude, location.Longitude); err != nil {
		log.Printf("failed to record vehicle position for %s: %v", id, err)
	}

	return location, nil
}

// LastPosition returns the vehicle's last recorded position, or nil if none.
func (s *VehicleService) LastPosition(ctx context.Context, id string) (*internalRedis.VehiclePosition, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.positionStore.Get(ctx, id)
}
