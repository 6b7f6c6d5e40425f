package handler_test

import (
	"context"
	"io"
	"log/slog"

	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/domain/scoring"

	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) AddCustomer(ctx context.Context, input customer.NewCustomerInput) (*customer.Customer, error) {
	ret := m.Called(ctx, input)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (m *MockCustomerService) FindCustomer(ctx context.Context, criteria customer.SearchCriteria) (*customer.Customer, error) {
	ret := m.Called(ctx, criteria)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (m *MockCustomerService) GetByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error) {
	ret := m.Called(ctx, nationalID)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	ret := m.Called(ctx)
	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, nationalID string, details customer.Details) (*customer.Customer, error) {
	ret := m.Called(ctx, nationalID, details)
	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) Assess(ctx context.Context, criteria customer.SearchCriteria) (*assessment.Assessment, error) {
	ret := m.Called(ctx, criteria)
	var r0 *assessment.Assessment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*assessment.Assessment)
	}
	return r0, ret.Error(1)
}

func (m *MockAssessmentService) AssessAll(ctx context.Context) ([]assessment.Assessment, error) {
	ret := m.Called(ctx)
	var r0 []assessment.Assessment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]assessment.Assessment)
	}
	return r0, ret.Error(1)
}

func (m *MockAssessmentService) Score(ctx context.Context, applicant scoring.Applicant) (scoring.Recommendation, error) {
	ret := m.Called(ctx, applicant)
	return ret.Get(0).(scoring.Recommendation), ret.Error(1)
}
