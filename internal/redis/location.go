package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const vehiclePositionKey = "vehicles:positions"

// VehiclePosition is a vehicle's last reported position.
type VehiclePosition struct {
	VehicleID string
	Lat       float64
	Lng       float64
}

// VehiclePositionStore keeps the last known position of each vehicle in a
// Redis geo set, updated as telemetry arrives.
type VehiclePositionStore struct {
	client *redis.Client
}

// NewVehiclePositionStore creates a new VehiclePositionStore.
func NewVehiclePositionStore(client *redis.Client) *VehiclePositionStore {
	return &VehiclePositionStore{client: client}
}

// Update stores a vehicle's position using GEOADD.
func (s *VehiclePositionStore) Update(ctx context.Context, vehicleID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, vehiclePositionKey, &redis.GeoLocation{
		Name:      vehicleID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// Get returns the last known position of a vehicle, or nil if none recorded.
func (s *VehiclePositionStore) Get(ctx context.Context, vehicleID string) (*VehiclePosition, error) {
	positions, err := s.client.GeoPos(ctx, vehiclePositionKey, vehicleID).Result()
	if err != nil {
		return nil, err
	}

	if len(positions) == 0 || positions[0] == nil {
		return nil, nil
	}

	return &VehiclePosition{
		VehicleID: vehicleID,
		Lat:       positions[0].Latitude,
		Lng:       positions[0].Longitude,
	}, nil
}

// Remove removes a vehicle's position from the geo set.
func (s *VehiclePositionStore) Remove(ctx context.Context, vehicleID string) error {
	return s.client.ZRem(ctx, vehiclePositionKey, vehicleID).Err()
}
