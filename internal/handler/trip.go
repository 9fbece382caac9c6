package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService    *service.TripService
	receiptService *service.ReceiptService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, receiptService *service.ReceiptService) *TripHandler {
	return &TripHandler{tripService: tripService, receiptService: receiptService}
}

// LocationPayload is the JSON shape of a location in requests and responses.
type LocationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address,omitempty"`
	Label     string   `json:"label,omitempty"`
}

// TelemetryPayload is the JSON shape of a telemetry point.
type TelemetryPayload struct {
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Speed     float64    `json:"speed,omitempty"`
	Heading   float64    `json:"heading,omitempty"`
}

// ReceiptPayload is the JSON shape of a receipt.
type ReceiptPayload struct {
	ID        string `json:"id"`
	Generated bool   `json:"generated"`
	URL       string `json:"url,omitempty"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID          string          `json:"trip_id"`
	CustomerID      string          `json:"customer_id"`
	VehicleID       string          `json:"vehicle_id"`
	Status          string          `json:"status"`
	StartTime       string          `json:"start_time,omitempty"`
	EndTime         string          `json:"end_time,omitempty"`
	StartLocation   LocationPayload `json:"start_location"`
	EndLocation     LocationPayload `json:"end_location"`
	EstimatedFare   float64         `json:"estimated_fare"`
	ActualFare      float64         `json:"actual_fare"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountAmount  float64         `json:"discount_amount"`
	FinalFare       float64         `json:"final_fare"`
	TelemetryCount  int             `json:"telemetry_count"`
	Notes           string          `json:"notes,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Receipt         *ReceiptPayload `json:"receipt,omitempty"`
}

func tripResponse(trip *domain.Trip) TripResponse {
	// Round the fare and discount to cents, then derive the displayed final
	// from the rounded pair so the three numbers always reconcile.
	actualFare := service.Round2(trip.ActualFare)
	discountAmount := service.Round2(trip.DiscountAmount)

	resp := TripResponse{
		TripID:          trip.ID,
		CustomerID:      trip.CustomerID,
		VehicleID:       trip.VehicleID,
		Status:          string(trip.Status),
		StartLocation:   locationPayload(trip.StartLocation),
		EndLocation:     locationPayload(trip.EndLocation),
		EstimatedFare:   service.Round2(trip.EstimatedFare),
		ActualFare:      actualFare,
		DiscountPercent: trip.DiscountPercent,
		DiscountAmount:  discountAmount,
		FinalFare:       service.Round2(actualFare - discountAmount),
		TelemetryCount:  len(trip.Telemetry),
		Notes:           trip.Notes,
		PaymentMethod:   trip.PaymentMethod,
	}

	if !trip.StartTime.IsZero() {
		resp.StartTime = trip.StartTime.Format(time.RFC3339)
	}
	if !trip.EndTime.IsZero() {
		resp.EndTime = trip.EndTime.Format(time.RFC3339)
	}
	if trip.Receipt != nil {
		resp.Receipt = &ReceiptPayload{
			ID:        trip.Receipt.ID,
			Generated: trip.Receipt.Generated,
			URL:       trip.Receipt.URL,
		}
	}

	return resp
}

func locationPayload(l domain.Location) LocationPayload {
	return LocationPayload{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Address:   l.Address,
		Label:     l.Label,
	}
}

// CreateTripRequest is the request body for creating a trip.
type CreateTripRequest struct {
	CustomerID      string           `json:"customer_id"`
	VehicleID       string           `json:"vehicle_id"`
	EstimatedFare   float64          `json:"estimated_fare"`
	Notes           string           `json:"notes"`
	PaymentMethod   string           `json:"payment_method"`
	DiscountPercent int              `json:"discount_percent"`
	EndLocation     *LocationPayload `json:"end_location"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	createReq := service.CreateTripRequest{
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		EstimatedFare:   req.EstimatedFare,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		DiscountPercent: req.DiscountPercent,
	}
	if req.EndLocation != nil {
		createReq.EndLocation = domain.Location{
			Latitude:  req.EndLocation.Latitude,
			Longitude: req.EndLocation.Longitude,
			Address:   req.EndLocation.Address,
			Label:     req.EndLocation.Label,
		}
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), createReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tripResponse(trip))
}

// StartTripRequest is the request body for starting a trip.
type StartTripRequest struct {
	StartLocation LocationPayload `json:"start_location"`
}

// StartTrip handles POST /v1/trips/:id/start
// The body is optional; it may carry a pickup address or label.
func (h *TripHandler) StartTrip(c *gin.Context) {
	var req StartTripRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	trip, err := h.tripService.StartTrip(c.Request.Context(), service.StartTripRequest{
		TripID: c.Param("id"),
		StartLocation: domain.Location{
			Address: req.StartLocation.Address,
			Label:   req.StartLocation.Label,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// AddTelemetry handles POST /v1/trips/:id/telemetry
func (h *TripHandler) AddTelemetry(c *gin.Context) {
	var req TelemetryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		respondError(c, service.ErrMissingTelemetry)
		return
	}

	point := domain.TelemetryPoint{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Speed:     req.Speed,
		Heading:   req.Heading,
	}
	if req.Timestamp != nil {
		point.Timestamp = *req.Timestamp
	}

	trip, err := h.tripService.AddTelemetry(c.Request.Context(), service.AddTelemetryRequest{
		TripID: c.Param("id"),
		Point:  point,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// GetTelemetry handles GET /v1/trips/:id/telemetry
// The stored sequence is insertion-ordered; the response is a copy sorted
// by timestamp for display.
func (h *TripHandler) GetTelemetry(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	points := make([]TelemetryPayload, 0, len(trip.Telemetry))
	for _, p := range trip.Telemetry {
		point := p
		ts := point.Timestamp
		points = append(points, TelemetryPayload{
			Latitude:  &point.Latitude,
			Longitude: &point.Longitude,
			Timestamp: &ts,
			Speed:     point.Speed,
			Heading:   point.Heading,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(*points[j].Timestamp)
	})

	respondJSON(c, http.StatusOK, gin.H{"telemetry": points})
}

// EndTripRequest is the request body for ending a trip.
type EndTripRequest struct {
	EndLocation     *LocationPayload `json:"end_location"`
	ActualFare      *float64         `json:"actual_fare"`
	DiscountPercent *int             `json:"discount_percent"`
	Notes           string           `json:"notes"`
}

// EndTrip handles POST /v1/trips/:id/end
// The body is optional; every field overrides a computed value.
func (h *TripHandler) EndTrip(c *gin.Context) {
	var req EndTripRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	endReq := service.EndTripRequest{
		TripID:          c.Param("id"),
		ActualFare:      req.ActualFare,
		DiscountPercent: req.DiscountPercent,
		Notes:           req.Notes,
	}
	if req.EndLocation != nil {
		endReq.EndLocation = &domain.Location{
			Latitude:  req.EndLocation.Latitude,
			Longitude: req.EndLocation.Longitude,
			Address:   req.EndLocation.Address,
			Label:     req.EndLocation.Label,
		}
	}

	trip, err := h.tripService.EndTrip(c.Request.Context(), endReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// CancelTrip handles POST /v1/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// GetActive handles GET /v1/trips/active
func (h *TripHandler) GetActive(c *gin.Context) {
	trip, err := h.tripService.GetActiveTrip(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if trip == nil {
		respondJSON(c, http.StatusOK, gin.H{"active": nil})
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip))
}

// GetAll handles GET /v1/trips
// An optional customer_id query filters to one customer's trips.
func (h *TripHandler) GetAll(c *gin.Context) {
	var trips []*domain.Trip
	var err error

	if customerID := c.Query("customer_id"); customerID != "" {
		trips, err = h.tripService.GetTripsByCustomer(c.Request.Context(), customerID)
	} else {
		trips, err = h.tripService.GetAllTrips(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, tripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetReceipt handles GET /v1/trips/:id/receipt
func (h *TripHandler) GetReceipt(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if trip.Receipt == nil {
		respondError(c, service.ErrReceiptNotReady)
		return
	}

	c.String(http.StatusOK, h.receiptService.Format(trip))
}
