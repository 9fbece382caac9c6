package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
)

// CustomerRepository is a PostgreSQL implementation of repository.CustomerRepository.
type CustomerRepository struct {
	q Querier
}

// NewCustomerRepository creates a new PostgreSQL customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{q: db}
}

// Create adds a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, preferences, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	preferences, err := json.Marshal(customer.Preferences)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		preferences,
		customer.CreatedAt,
	)

	return err
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, preferences, created_at
		FROM customers WHERE id = $1
	`

	var customer domain.Customer
	var preferences []byte

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&preferences,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &customer.Preferences); err != nil {
			return nil, err
		}
	}

	return &customer, nil
}

// GetAll retrieves all customers.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, preferences, created_at
		FROM customers ORDER BY created_at
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var customer domain.Customer
		var preferences []byte

		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&preferences,
			&customer.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(preferences) > 0 {
			if err := json.Unmarshal(preferences, &customer.Preferences); err != nil {
				return nil, err
			}
		}

		customers = append(customers, &customer)
	}

	return customers, rows.Err()
}

// Ensure CustomerRepository implements repository.CustomerRepository.
var _ repository.CustomerRepository = (*CustomerRepository)(nil)
