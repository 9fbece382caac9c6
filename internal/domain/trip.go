package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusPending   TripStatus = "pending"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Location is a point on the map with an optional human-readable address.
// Coordinates are pointers because they may be unknown until the vehicle
// reports them (the end location of a running trip, for example).
type Location struct {
	Latitude  *float64
	Longitude *float64
	Address   string
	Label     string
}

// HasCoordinates reports whether both coordinates are set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// TelemetryPoint is a single timestamped location sample recorded while a
// trip is active.
type TelemetryPoint struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
	Speed     float64
	Heading   float64
}

// Receipt represents the receipt generated when a trip completes.
type Receipt struct {
	ID        string
	Generated bool
	URL       string
}

// Trip represents a single ride session from pickup to drop-off.
type Trip struct {
	ID              string
	CustomerID      string
	VehicleID       string
	Status          TripStatus
	StartTime       time.Time // zero until the trip starts
	EndTime         time.Time // zero until the trip ends
	StartLocation   Location
	EndLocation     Location
	EstimatedFare   float64
	ActualFare      float64
	DiscountPercent int
	DiscountAmount  float64
	FinalFare       float64
	Telemetry       []TelemetryPoint // append-only, insertion ordered
	Notes           string
	PaymentMethod   string
	Receipt         *Receipt // nil until the trip ends
	CreatedAt       time.Time
}
