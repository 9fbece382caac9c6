package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/domain"
	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/service"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerResponse is the HTTP response for customer operations.
type CustomerResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

func customerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Preferences: customer.Preferences,
		CreatedAt:   customer.CreatedAt.Format(time.RFC3339),
	}
}

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Preferences map[string]string `json:"preferences"`
}

// Create handles POST /v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), service.CreateCustomerRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, customerResponse(customer))
}

// Get handles GET /v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, customerResponse(customer))
}

// GetAll handles GET /v1/customers
func (h *CustomerHandler) GetAll(c *gin.Context) {
	customers, err := h.customerService.GetAllCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		response = append(response, customerResponse(customer))
	}

	respondJSON(c, http.StatusOK, response)
}
