package redis

import "context"

// TripLockStoreInterface defines the active-trip claim operations.
type TripLockStoreInterface interface {
	ClaimActive(ctx context.Context, tripID string) (bool, error)
	ActiveTripID(ctx context.Context) (string, error)
	ReleaseActive(ctx context.Context, tripID string) error
}

// VehiclePositionStoreInterface defines the last-known-position operations.
type VehiclePositionStoreInterface interface {
	Update(ctx context.Context, vehicleID string, lat, lng float64) error
	Get(ctx context.Context, vehicleID string) (*VehiclePosition, error)
	Remove(ctx context.Context, vehicleID string) error
}

// EstimateCacheInterface defines the fare-estimate cache operations.
type EstimateCacheInterface interface {
	Get(ctx context.Context, key string) ([]CachedEstimate, error)
	Set(ctx context.Context, key string, estimates []CachedEstimate) error
}

// Ensure concrete types implement interfaces.
var (
	_ TripLockStoreInterface        = (*TripLockStore)(nil)
	_ VehiclePositionStoreInterface = (*VehiclePositionStore)(nil)
	_ EstimateCacheInterface        = (*EstimateCache)(nil)
)
