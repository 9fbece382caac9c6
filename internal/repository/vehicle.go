package repository

import (
	"context"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Upsert inserts the vehicle or updates it if it already exists.
	Upsert(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// UpdateState updates the state of a vehicle.
	UpdateState(ctx context.Context, id string, state domain.VehicleState) error
}
