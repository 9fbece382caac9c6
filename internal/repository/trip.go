package repository

import (
	"context"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips, most recent first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByCustomerID retrieves all trips for a customer.
	GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// GetActive retrieves the trip currently in active status.
	// Returns nil if no active trip exists.
	GetActive(ctx context.Context) (*domain.Trip, error)
}
