package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	internalRedis "github.com/Victordtesla24/ride-with-vic-app-sub001/internal/redis"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
	order []string

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	m.order = append(m.order, trip.ID)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = cloneTrip(trip)
	m.order = append(m.order, trip.ID)
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTrip(trip), nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		result = append(result, cloneTrip(m.trips[m.order[i]]))
	}
	return result, nil
}

func (m *MockTripRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		trip := m.trips[m.order[i]]
		if trip.CustomerID == customerID {
			result = append(result, cloneTrip(trip))
		}
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	m.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func (m *MockTripRepository) GetActive(ctx context.Context) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, trip := range m.trips {
		if trip.Status == domain.TripStatusActive {
			return cloneTrip(trip), nil
		}
	}
	return nil, nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil
	}
	return cloneTrip(trip)
}

// CountTrips returns the number of trips stored.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// cloneTrip copies a trip including its telemetry slice so callers cannot
// mutate stored state through shared backing arrays.
func cloneTrip(trip *domain.Trip) *domain.Trip {
	copied := *trip
	if trip.Telemetry != nil {
		copied.Telemetry = make([]domain.TelemetryPoint, len(trip.Telemetry))
		copy(copied.Telemetry, trip.Telemetry)
	}
	if trip.Receipt != nil {
		receipt := *trip.Receipt
		copied.Receipt = &receipt
	}
	return &copied
}

// ──────────────────────────────────────────────
// MOCK CUSTOMER REPOSITORY
// ──────────────────────────────────────────────

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	CreateCallCount int32
	CreateError     error
}

// NewMockCustomerRepository creates a new mock customer repository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// AddCustomer adds a customer to the mock repository.
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (m *MockCustomerRepository) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		copied := *customer
		result = append(result, &copied)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	UpsertCallCount      int32
	UpdateStateCallCount int32

	UpsertError      error
	UpdateStateError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Upsert(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, vehicle := range m.vehicles {
		copied := *vehicle
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MockVehicleRepository) UpdateState(ctx context.Context, id string, state domain.VehicleState) error {
	atomic.AddInt32(&m.UpdateStateCallCount, 1)
	if m.UpdateStateError != nil {
		return m.UpdateStateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.State = state
	return nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil
	}
	copied := *vehicle
	return &copied
}

// ──────────────────────────────────────────────
// MOCK VEHICLE LOCATOR
// ──────────────────────────────────────────────

// MockVehicleLocator is a mock implementation of VehicleLocator.
type MockVehicleLocator struct {
	mu       sync.RWMutex
	Location tesla.Location

	GetLocationCallCount int32
	GetLocationError     error
}

// NewMockVehicleLocator creates a locator reporting the given position.
func NewMockVehicleLocator(lat, lng float64) *MockVehicleLocator {
	return &MockVehicleLocator{
		Location: tesla.Location{
			Latitude:  lat,
			Longitude: lng,
			Timestamp: time.Now(),
		},
	}
}

func (m *MockVehicleLocator) GetLocation(ctx context.Context, vehicleID string) (*tesla.Location, error) {
	atomic.AddInt32(&m.GetLocationCallCount, 1)
	if m.GetLocationError != nil {
		return nil, m.GetLocationError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	location := m.Location
	return &location, nil
}

// SetLocation moves the reported position.
func (m *MockVehicleLocator) SetLocation(lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Location.Latitude = lat
	m.Location.Longitude = lng
	m.Location.Timestamp = time.Now()
}

// ──────────────────────────────────────────────
// MOCK TRIP LOCK STORE
// ──────────────────────────────────────────────

// MockTripLockStore is an in-memory implementation of the active-trip claim
// with the same claim-once semantics as the Redis store.
type MockTripLockStore struct {
	mu     sync.Mutex
	holder string

	ClaimCallCount   int32
	ReleaseCallCount int32

	ClaimError error
}

// NewMockTripLockStore creates a new mock lock store.
func NewMockTripLockStore() *MockTripLockStore {
	return &MockTripLockStore{}
}

func (m *MockTripLockStore) ClaimActive(ctx context.Context, tripID string) (bool, error) {
	atomic.AddInt32(&m.ClaimCallCount, 1)
	if m.ClaimError != nil {
		return false, m.ClaimError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder != "" {
		return false, nil
	}
	m.holder = tripID
	return true, nil
}

func (m *MockTripLockStore) ActiveTripID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder, nil
}

func (m *MockTripLockStore) ReleaseActive(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder == tripID {
		m.holder = ""
	}
	return nil
}

// Holder returns the current claim holder for test assertions.
func (m *MockTripLockStore) Holder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder
}

// ──────────────────────────────────────────────
// MOCK VEHICLE POSITION STORE
// ──────────────────────────────────────────────

// MockVehiclePositionStore is an in-memory implementation of the
// last-known-position store.
type MockVehiclePositionStore struct {
	mu        sync.RWMutex
	positions map[string]internalRedis.VehiclePosition

	UpdateCallCount int32
	UpdateError     error
}

// NewMockVehiclePositionStore creates a new mock position store.
func NewMockVehiclePositionStore() *MockVehiclePositionStore {
	return &MockVehiclePositionStore{
		positions: make(map[string]internalRedis.VehiclePosition),
	}
}

func (m *MockVehiclePositionStore) Update(ctx context.Context, vehicleID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[vehicleID] = internalRedis.VehiclePosition{
		VehicleID: vehicleID,
		Lat:       lat,
		Lng:       lng,
	}
	return nil
}

func (m *MockVehiclePositionStore) Get(ctx context.Context, vehicleID string) (*internalRedis.VehiclePosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	position, ok := m.positions[vehicleID]
	if !ok {
		return nil, nil
	}
	return &position, nil
}

func (m *MockVehiclePositionStore) Remove(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, vehicleID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE PROVIDER
// ──────────────────────────────────────────────

// MockVehicleProvider is a mock implementation of VehicleProvider.
type MockVehicleProvider struct {
	mu       sync.RWMutex
	Vehicles []tesla.Vehicle
	Location tesla.Location

	ListCallCount int32
	WakeCallCount int32

	ListError error
	WakeError error
}

// NewMockVehicleProvider creates a new mock vehicle provider.
func NewMockVehicleProvider() *MockVehicleProvider {
	return &MockVehicleProvider{}
}

func (m *MockVehicleProvider) ListVehicles(ctx context.Context) ([]tesla.Vehicle, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]tesla.Vehicle, len(m.Vehicles))
	copy(result, m.Vehicles)
	return result, nil
}

func (m *MockVehicleProvider) GetLocation(ctx context.Context, vehicleID string) (*tesla.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	location := m.Location
	return &location, nil
}

func (m *MockVehicleProvider) WakeAndWait(ctx context.Context, vehicleID string, timeout time.Duration) error {
	atomic.AddInt32(&m.WakeCallCount, 1)
	return m.WakeError
}
