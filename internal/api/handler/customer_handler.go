package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"credit-advisor/internal/api/handler/dto"
	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CustomerHandler struct {
	customers   customer.CustomerService
	assessments assessment.AssessmentService
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewCustomerHandler(customers customer.CustomerService, assessments assessment.AssessmentService, l *slog.Logger) *CustomerHandler {
	if customers == nil || assessments == nil {
		panic("customer handler services cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		customers:   customers,
		assessments: assessments,
		validate:    newValidator(),
		logger:      l.With("component", "CustomerHandler"),
	}
}

func getNationalIDFromURL(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "nationalID"))
	if id == "" {
		return "", fmt.Errorf("%w: nationalID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return id, nil
}

// CreateCustomer handles POST /customers
// @Summary Add a customer
// @Description Stores a new customer record. The national ID must be unique.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer record"
// @Success 201 {object} dto.CustomerResponse "Customer stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "National ID already stored"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := validateRequest(h.validate, req); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.customers.AddCustomer(r.Context(), req.ToInput())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to add customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// ListCustomers handles GET /customers
// @Summary List customers with recommendations
// @Description Returns every stored customer in insertion order, each with the model's recommendation or the reason it could not be scored.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.AssessmentResponse "Customers with recommendations"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	results, err := h.assessments.AssessAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.AssessmentResponse, len(results))
	for i, res := range results {
		resp[i] = dto.NewAssessmentResponse(res)
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// SearchCustomer handles GET /customers/search
// @Summary Find and assess a customer
// @Description Finds the first customer whose national ID equals nationalId OR whose name contains name, scores it and archives the result.
// @Tags Customers
// @Produce json
// @Param nationalId query string false "Exact national ID"
// @Param name query string false "Name fragment (case-insensitive)"
// @Success 200 {object} dto.AssessmentResponse "Customer with recommendation"
// @Failure 404 {object} dto.ErrorResponse "No matching customer"
// @Failure 422 {object} dto.ErrorResponse "Stored record has a category the model does not know"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/search [get]
// @Security BearerAuth
func (h *CustomerHandler) SearchCustomer(w http.ResponseWriter, r *http.Request) {
	criteria := customer.SearchCriteria{
		NationalID:  r.URL.Query().Get("nationalId"),
		NamePattern: r.URL.Query().Get("name"),
	}
	h.logger.DebugContext(r.Context(), "Received search customer request")

	result, err := h.assessments.Assess(r.Context(), criteria)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to assess customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer assessed successfully", slog.Int64("customerID", result.Customer.ID))
	respondJSON(w, http.StatusOK, dto.NewAssessmentResponse(*result))
}

// GetCustomer handles GET /customers/{nationalID}
// @Summary Retrieve a customer
// @Description Reads one customer record by exact national ID.
// @Tags Customers
// @Produce json
// @Param nationalID path string true "National ID"
// @Success 200 {object} dto.CustomerResponse "Customer record"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{nationalID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	nationalID, err := getNationalIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	cust, err := h.customers.GetByNationalID(r.Context(), nationalID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateCustomer handles PUT /customers/{nationalID}
// @Summary Replace a customer's details
// @Description Overwrites every editable field of the customer identified by national ID.
// @Tags Customers
// @Accept json
// @Produce json
// @Param nationalID path string true "National ID"
// @Param request body dto.UpdateCustomerRequest true "New details"
// @Success 200 {object} dto.CustomerResponse "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{nationalID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	nationalID, err := getNationalIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := validateRequest(h.validate, req); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	updated, err := h.customers.UpdateCustomer(r.Context(), nationalID, req.ToDetails())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", updated.ID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}
