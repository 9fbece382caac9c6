package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `
	id, customer_id, vehicle_id, status, start_time, end_time,
	start_lat, start_lng, start_address, start_label,
	end_lat, end_lng, end_address, end_label,
	estimated_fare, actual_fare, discount_percent, discount_amount, final_fare,
	telemetry, notes, payment_method,
	receipt_id, receipt_generated, receipt_url, created_at
`

// telemetryRecord is the JSON shape of one telemetry point in the telemetry column.
type telemetryRecord struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Speed     float64   `json:"speed,omitempty"`
	Heading   float64   `json:"heading,omitempty"`
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	args, err := tripArgs(trip)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// GetAll retrieves all trips, most recent first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrips(rows)
}

// GetByCustomerID retrieves all trips for a customer.
func (r *TripRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrips(rows)
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips SET
			customer_id = $2, vehicle_id = $3, status = $4, start_time = $5, end_time = $6,
			start_lat = $7, start_lng = $8, start_address = $9, start_label = $10,
			end_lat = $11, end_lng = $12, end_address = $13, end_label = $14,
			estimated_fare = $15, actual_fare = $16, discount_percent = $17,
			discount_amount = $18, final_fare = $19,
			telemetry = $20, notes = $21, payment_method = $22,
			receipt_id = $23, receipt_generated = $24, receipt_url = $25, created_at = $26
		WHERE id = $1
	`

	args, err := tripArgs(trip)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
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

// GetActive retrieves the trip currently in active status.
// Returns nil if no active trip exists.
func (r *TripRepository) GetActive(ctx context.Context) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = $1 LIMIT 1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, domain.TripStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return trip, nil
}

// tripArgs flattens a trip into the positional arguments used by Create and Update.
func tripArgs(trip *domain.Trip) ([]any, error) {
	telemetry := make([]telemetryRecord, 0, len(trip.Telemetry))
	for _, p := range trip.Telemetry {
		telemetry = append(telemetry, telemetryRecord(p))
	}

	telemetryJSON, err := json.Marshal(telemetry)
	if err != nil {
		return nil, err
	}

	var receiptID sql.NullString
	var receiptGenerated bool
	var receiptURL string
	if trip.Receipt != nil {
		receiptID = sql.NullString{String: trip.Receipt.ID, Valid: true}
		receiptGenerated = trip.Receipt.Generated
		receiptURL = trip.Receipt.URL
	}

	return []any{
		trip.ID,
		trip.CustomerID,
		trip.VehicleID,
		trip.Status,
		nullTime(trip.StartTime),
		nullTime(trip.EndTime),
		nullFloat(trip.StartLocation.Latitude),
		nullFloat(trip.StartLocation.Longitude),
		trip.StartLocation.Address,
		trip.StartLocation.Label,
		nullFloat(trip.EndLocation.Latitude),
		nullFloat(trip.EndLocation.Longitude),
		trip.EndLocation.Address,
		trip.EndLocation.Label,
		trip.EstimatedFare,
		trip.ActualFare,
		trip.DiscountPercent,
		trip.DiscountAmount,
		trip.FinalFare,
		telemetryJSON,
		trip.Notes,
		trip.PaymentMethod,
		receiptID,
		receiptGenerated,
		receiptURL,
		trip.CreatedAt,
	}, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var startTime, endTime sql.NullTime
	var startLat, startLng, endLat, endLng sql.NullFloat64
	var telemetryJSON []byte
	var receiptID sql.NullString
	var receiptGenerated bool
	var receiptURL string

	err := row.Scan(
		&trip.ID,
		&trip.CustomerID,
		&trip.VehicleID,
		&trip.Status,
		&startTime,
		&endTime,
		&startLat,
		&startLng,
		&trip.StartLocation.Address,
		&trip.StartLocation.Label,
		&endLat,
		&endLng,
		&trip.EndLocation.Address,
		&trip.EndLocation.Label,
		&trip.EstimatedFare,
		&trip.ActualFare,
		&trip.DiscountPercent,
		&trip.DiscountAmount,
		&trip.FinalFare,
		&telemetryJSON,
		&trip.Notes,
		&trip.PaymentMethod,
		&receiptID,
		&receiptGenerated,
		&receiptURL,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		trip.StartTime = startTime.Time
	}
	if endTime.Valid {
		trip.EndTime = endTime.Time
	}
	trip.StartLocation.Latitude = floatPtr(startLat)
	trip.StartLocation.Longitude = floatPtr(startLng)
	trip.EndLocation.Latitude = floatPtr(endLat)
	trip.EndLocation.Longitude = floatPtr(endLng)

	if len(telemetryJSON) > 0 {
		var records []telemetryRecord
		if err := json.Unmarshal(telemetryJSON, &records); err != nil {
			return nil, err
		}
		trip.Telemetry = make([]domain.TelemetryPoint, 0, len(records))
		for _, rec := range records {
			trip.Telemetry = append(trip.Telemetry, domain.TelemetryPoint(rec))
		}
	}

	if receiptID.Valid {
		trip.Receipt = &domain.Receipt{
			ID:        receiptID.String,
			Generated: receiptGenerated,
			URL:       receiptURL,
		}
	}

	return &trip, nil
}

func collectTrips(rows *sql.Rows) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
