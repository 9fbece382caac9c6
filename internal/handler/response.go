package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/auth"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/repository"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/tesla"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/uber"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/client errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidCustomerName),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidDiscountPercent),
		errors.Is(err, service.ErrInvalidFareAmount),
		errors.Is(err, service.ErrInvalidVehicleState),
		errors.Is(err, service.ErrMissingTelemetry),
		errors.Is(err, auth.ErrMissingCredentials):
		return http.StatusBadRequest

	// Conflict / lifecycle-state errors
	case errors.Is(err, service.ErrActiveTripExists),
		errors.Is(err, service.ErrTripNotPending),
		errors.Is(err, service.ErrTripNotActive),
		errors.Is(err, service.ErrTripNotCancellable),
		errors.Is(err, service.ErrReceiptNotReady):
		return http.StatusConflict

	// Upstream provider failures
	case errors.Is(err, tesla.ErrVehicleUnavailable),
		errors.Is(err, uber.ErrEstimateUnavailable):
		return http.StatusBadGateway

	// Token issuance failures
	case errors.Is(err, auth.ErrInvalidPrivateKey):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTokenRequest):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
