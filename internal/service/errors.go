package service

import "errors"

var (
	// ErrInvalidCustomerID is returned when customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidCustomerName is returned when customer name is empty.
	ErrInvalidCustomerName = errors.New("invalid customer name")

	// ErrInvalidLocation is returned when location coordinates are missing or out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidDiscountPercent is returned when the discount percent is outside [0, 100].
	ErrInvalidDiscountPercent = errors.New("discount percent must be between 0 and 100")

	// ErrInvalidFareAmount is returned when a fare amount is negative.
	ErrInvalidFareAmount = errors.New("fare amount must not be negative")

	// ErrInvalidVehicleState is returned when a vehicle state is not recognised.
	ErrInvalidVehicleState = errors.New("invalid vehicle state")

	// ErrMissingTelemetry is returned when a telemetry point has no coordinates.
	ErrMissingTelemetry = errors.New("telemetry point requires coordinates")

	// ErrActiveTripExists is returned when starting a trip while another trip is active.
	ErrActiveTripExists = errors.New("another trip is already active")

	// ErrTripNotPending is returned when starting a trip that is not pending.
	ErrTripNotPending = errors.New("trip is not pending")

	// ErrTripNotActive is returned when the operation requires an active trip.
	ErrTripNotActive = errors.New("trip is not active")

	// ErrTripNotCancellable is returned when cancelling a completed or cancelled trip.
	ErrTripNotCancellable = errors.New("trip cannot be cancelled in current state")

	// ErrReceiptNotReady is returned when requesting a receipt before the trip completes.
	ErrReceiptNotReady = errors.New("receipt not generated yet")
)
