package customer

import (
	"context"
	"credit-advisor/internal/event"
	"credit-advisor/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	AddCustomer(ctx context.Context, input NewCustomerInput) (*Customer, error)
	FindCustomer(ctx context.Context, criteria SearchCriteria) (*Customer, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, nationalID string, details Details) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo       CustomerRepository
	pub        event.EventPublisher
	categories Categories
	logger     *slog.Logger
}

// NewCustomerService validates categories against the given set; nil means the built-in labels.
func NewCustomerService(repo CustomerRepository, publisher event.EventPublisher, categories Categories, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if publisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		publisher = event.NoopPublisher{}
	}

	if categories == nil {
		categories = builtinCategories{}
	}

	return &customerService{
		repo:       repo,
		pub:        publisher,
		categories: categories,
		logger:     logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:     cust.ID,
		NationalID:     cust.NationalID,
		Name:           cust.Name,
		Income:         cust.Income,
		Liabilities:    cust.Liabilities,
		Age:            cust.Age,
		EmploymentType: string(cust.EmploymentType),
		CreditHistory:  string(cust.CreditHistory),
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

func (s *customerService) validateDetails(d Details) error {
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.NewValidationError("name", "cannot be empty")
	}
	if d.Income < 0 {
		return apperrors.NewValidationError("income", "cannot be negative")
	}
	if d.Liabilities < 0 {
		return apperrors.NewValidationError("liabilities", "cannot be negative")
	}
	if !s.categories.KnowsEmploymentType(string(d.EmploymentType)) {
		return apperrors.NewValidationError("employmentType", fmt.Sprintf("unsupported value %q", d.EmploymentType))
	}
	if !s.categories.KnowsCreditHistory(string(d.CreditHistory)) {
		return apperrors.NewValidationError("creditHistory", fmt.Sprintf("unsupported value %q", d.CreditHistory))
	}
	return nil
}

func (s *customerService) AddCustomer(ctx context.Context, input NewCustomerInput) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to add new customer")

	if strings.TrimSpace(input.NationalID) == "" {
		s.logger.WarnContext(ctx, "Validation failed: national ID is empty")
		return nil, apperrors.NewValidationError("nationalId", "cannot be empty")
	}
	if err := s.validateDetails(input.Details); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}
	s.logger.DebugContext(ctx, inputValidationPassed)

	cust := NewCustomer(input)
	logCtx := s.logger.With(slog.String("nationalID", cust.NationalID))

	logCtx.InfoContext(ctx, "Calling repository Create")
	if err := s.repo.Create(ctx, cust); err != nil {
		if errors.Is(err, ErrDuplicateNationalID) {
			logCtx.WarnContext(ctx, "Customer with this national ID already exists")
			return nil, err
		}
		logCtx.ErrorContext(ctx, "Repository failed to create customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to add customer: %w", err)
	}
	logCtx = logCtx.With(slog.Int64("customerID", cust.ID))

	created := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer added, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully added new customer")
	return cust, nil
}

func (s *customerService) FindCustomer(ctx context.Context, criteria SearchCriteria) (*Customer, error) {
	criteria = criteria.Normalize()
	s.logger.InfoContext(ctx, "Attempting to find customer",
		slog.Bool("byNationalID", criteria.NationalID != ""),
		slog.Bool("byName", criteria.NamePattern != ""))

	if criteria.IsEmpty() {
		s.logger.InfoContext(ctx, "No search criteria supplied, returning no result")
		return nil, ErrNotFound
	}

	cust, err := s.repo.FindOne(ctx, criteria)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully found customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) GetByNationalID(ctx context.Context, nationalID string) (*Customer, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return nil, apperrors.NewValidationError("nationalId", "cannot be empty")
	}
	return s.FindCustomer(ctx, SearchCriteria{NationalID: nationalID})
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, nationalID string, details Details) (*Customer, error) {
	nationalID = strings.TrimSpace(nationalID)
	logCtx := s.logger.With(slog.String("nationalID", nationalID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	if nationalID == "" {
		logCtx.WarnContext(ctx, "Validation failed: national ID is empty")
		return nil, apperrors.NewValidationError("nationalId", "cannot be empty")
	}
	if err := s.validateDetails(details); err != nil {
		logCtx.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}
	details.Name = strings.TrimSpace(details.Name)
	logCtx.DebugContext(ctx, inputValidationPassed)

	if err := s.repo.Update(ctx, nationalID, details); err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	updated, err := s.repo.FindOne(ctx, SearchCriteria{NationalID: nationalID})
	if err != nil {
		logCtx.ErrorContext(ctx, "Customer updated but could not be re-read", slog.Any("error", err))
		return nil, fmt.Errorf("failed to read updated customer: %w", err)
	}

	updatedEvent := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(updated),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updatedEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return updated, nil
}
