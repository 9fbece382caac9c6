package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const activeTripKey = "trips:active"

// TripLockStore guards the single-active-trip invariant in Redis.
// Claiming is a SetNX so two concurrent starts cannot both succeed.
type TripLockStore struct {
	client *redis.Client
}

// NewTripLockStore creates a new TripLockStore.
func NewTripLockStore(client *redis.Client) *TripLockStore {
	return &TripLockStore{client: client}
}

// ClaimActive attempts to mark tripID as the active trip.
// Returns false if another trip already holds the claim.
func (s *TripLockStore) ClaimActive(ctx context.Context, tripID string) (bool, error) {
	// No TTL: the claim lives until the trip ends or is cancelled.
	return s.client.SetNX(ctx, activeTripKey, tripID, 0).Result()
}

// ActiveTripID returns the ID of the currently claimed trip, or "" if none.
func (s *TripLockStore) ActiveTripID(ctx context.Context) (string, error) {
	id, err := s.client.Get(ctx, activeTripKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// ReleaseActive releases the claim if tripID holds it.
func (s *TripLockStore) ReleaseActive(ctx context.Context, tripID string) error {
	// Compare-and-delete so a stale caller cannot release another trip's claim.
	const script = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		end
		return 0
	`
	return s.client.Eval(ctx, script, []string{activeTripKey}, tripID).Err()
}
