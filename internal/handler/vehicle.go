package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleResponse is the HTTP response for vehicle operations.
type VehicleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Model       string `json:"model,omitempty"`
	VIN         string `json:"vin,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	State       string `json:"state"`
}

func vehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          vehicle.ID,
		Name:        vehicle.Name,
		Model:       vehicle.Model,
		VIN:         vehicle.VIN,
		DisplayName: vehicle.DisplayName,
		State:       string(vehicle.State),
	}
}

// VehicleLocationResponse is the HTTP response for a live location read.
type VehicleLocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Timestamp string  `json:"timestamp"`
}

// Sync handles POST /v1/vehicles/sync
func (h *VehicleHandler) Sync(c *gin.Context) {
	vehicles, err := h.vehicleService.SyncVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, vehicleResponse(vehicle))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, vehicleResponse(vehicle))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateStateRequest is the request body for updating a vehicle's state.
type UpdateStateRequest struct {
	State string `json:"state"`
}

// UpdateState handles PATCH /v1/vehicles/:id/state
func (h *VehicleHandler) UpdateState(c *gin.Context) {
	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.UpdateState(c.Request.Context(), c.Param("id"), domain.VehicleState(req.State))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// Wake handles POST /v1/vehicles/:id/wake
func (h *VehicleHandler) Wake(c *gin.Context) {
	vehicle, err := h.vehicleService.WakeVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// GetLocation handles GET /v1/vehicles/:id/location
func (h *VehicleHandler) GetLocation(c *gin.Context) {
	location, err := h.vehicleService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VehicleLocationResponse{
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Speed:     location.Speed,
		Heading:   location.Heading,
		Timestamp: location.Timestamp.Format(time.RFC3339),
	})
}

// VehiclePositionResponse is the HTTP response for the last recorded position.
type VehiclePositionResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GetPosition handles GET /v1/vehicles/:id/position
func (h *VehicleHandler) GetPosition(c *gin.Context) {
	position, err := h.vehicleService.LastPosition(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if position == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no position recorded"})
		return
	}

	respondJSON(c, http.StatusOK, VehiclePositionResponse{
		VehicleID: position.VehicleID,
		Latitude:  position.Lat,
		Longitude: position.Lng,
	})
}
