package dto

import (
	"time"

	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/domain/customer"

	"github.com/shopspring/decimal"
)

type CustomerDetailsRequest struct {
	Name           string  `json:"name" validate:"required"`
	Income         float64 `json:"income" validate:"gte=0"`
	Liabilities    float64 `json:"liabilities" validate:"gte=0"`
	Age            int     `json:"age" validate:"gte=18,lte=120"`
	EmploymentType string  `json:"employmentType" validate:"required"`
	CreditHistory  string  `json:"creditHistory" validate:"required"`
}

func (r CustomerDetailsRequest) ToDetails() customer.Details {
	return customer.Details{
		Name:           r.Name,
		Income:         r.Income,
		Liabilities:    r.Liabilities,
		Age:            r.Age,
		EmploymentType: customer.EmploymentType(r.EmploymentType),
		CreditHistory:  customer.CreditHistory(r.CreditHistory),
	}
}

type CreateCustomerRequest struct {
	NationalID string `json:"nationalId" validate:"required"`
	CustomerDetailsRequest
}

func (r CreateCustomerRequest) ToInput() customer.NewCustomerInput {
	return customer.NewCustomerInput{
		NationalID: r.NationalID,
		Details:    r.ToDetails(),
	}
}

type UpdateCustomerRequest struct {
	CustomerDetailsRequest
}

type CustomerResponse struct {
	ID             int64     `json:"id"`
	NationalID     string    `json:"nationalId"`
	Name           string    `json:"name"`
	Income         string    `json:"income"`
	Liabilities    string    `json:"liabilities"`
	Age            int       `json:"age"`
	EmploymentType string    `json:"employmentType"`
	CreditHistory  string    `json:"creditHistory"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:             cust.ID,
		NationalID:     cust.NationalID,
		Name:           cust.Name,
		Income:         formatMoney(cust.Income),
		Liabilities:    formatMoney(cust.Liabilities),
		Age:            cust.Age,
		EmploymentType: string(cust.EmploymentType),
		CreditHistory:  string(cust.CreditHistory),
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

// AssessmentResponse is a customer with either a recommendation or the reason it has none.
type AssessmentResponse struct {
	Customer       CustomerResponse `json:"customer"`
	Recommendation string           `json:"recommendation,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func NewAssessmentResponse(a assessment.Assessment) AssessmentResponse {
	resp := AssessmentResponse{
		Customer:       NewCustomerResponse(a.Customer),
		Recommendation: a.Recommendation.String(),
	}
	if a.Err != nil {
		resp.Recommendation = ""
		resp.Error = a.Err.Error()
	}
	return resp
}
