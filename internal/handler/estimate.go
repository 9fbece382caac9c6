package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/uber"
)

// EstimateHandler handles HTTP requests for fare estimates.
type EstimateHandler struct {
	estimateClient *uber.Client
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimateClient *uber.Client) *EstimateHandler {
	return &EstimateHandler{estimateClient: estimateClient}
}

// EstimateResponse is one service tier's quote in the HTTP response.
type EstimateResponse struct {
	Service     string  `json:"service"`
	Estimate    string  `json:"estimate"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Currency    string  `json:"currency"`
	DurationMin float64 `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
}

// GetPrice handles GET /v1/estimates/price
func (h *EstimateHandler) GetPrice(c *gin.Context) {
	startLat, err1 := strconv.ParseFloat(c.Query("start_latitude"), 64)
	startLng, err2 := strconv.ParseFloat(c.Query("start_longitude"), 64)
	endLat, err3 := strconv.ParseFloat(c.Query("end_latitude"), 64)
	endLng, err4 := strconv.ParseFloat(c.Query("end_longitude"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start and end coordinates are required"})
		return
	}

	estimates, err := h.estimateClient.GetEstimates(c.Request.Context(), startLat, startLng, endLat, endLng)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		response = append(response, EstimateResponse{
			Service:     e.Service,
			Estimate:    e.Estimate,
			Low:         e.Low,
			High:        e.High,
			Currency:    e.Currency,
			DurationMin: e.DurationMin,
			DistanceKm:  e.DistanceKm,
		})
	}

	respondJSON(c, http.StatusOK, response)
}
