package domain

import "time"

// Customer represents a rider in the system.
type Customer struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Preferences map[string]string
	CreatedAt   time.Time
}
