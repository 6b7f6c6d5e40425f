package customer

import (
	"context"
	"credit-advisor/internal/pkg/apperrors"
	"fmt"
)

var (
	ErrNotFound = fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)

	ErrDuplicateNationalID = fmt.Errorf("customer with this national ID already exists: %w", apperrors.ErrAlreadyExists)
)

type CustomerRepository interface {
	// Initialize creates the backing schema; safe to call on every start.
	Initialize(ctx context.Context) error

	Create(ctx context.Context, customer *Customer) error

	// FindOne matches national ID exactly OR name as a substring.
	FindOne(ctx context.Context, criteria SearchCriteria) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	Update(ctx context.Context, nationalID string, details Details) error
}
