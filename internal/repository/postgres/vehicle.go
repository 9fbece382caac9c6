package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// Upsert inserts the vehicle or updates it if it already exists.
func (r *VehicleRepository) Upsert(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, model, vin, display_name, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			model = EXCLUDED.model,
			vin = EXCLUDED.vin,
			display_name = EXCLUDED.display_name,
			state = EXCLUDED.state
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Model,
		vehicle.VIN,
		vehicle.DisplayName,
		vehicle.State,
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, name, model, vin, display_name, state
		FROM vehicles WHERE id = $1
	`

	var vehicle domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Model,
		&vehicle.VIN,
		&vehicle.DisplayName,
		&vehicle.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, name, model, vin, display_name, state
		FROM vehicles ORDER BY display_name
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.Name,
			&vehicle.Model,
			&vehicle.VIN,
			&vehicle.DisplayName,
			&vehicle.State,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, rows.Err()
}

// UpdateState updates the state of a vehicle.
func (r *VehicleRepository) UpdateState(ctx context.Context, id string, state domain.VehicleState) error {
	query := `UPDATE vehicles SET state = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, state, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
