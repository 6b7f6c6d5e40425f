package dto

import "credit-advisor/internal/domain/scoring"

type PredictRequest struct {
	Income         float64 `json:"income" validate:"gte=0"`
	Liabilities    float64 `json:"liabilities" validate:"gte=0"`
	Age            int     `json:"age" validate:"gte=0,lte=150"`
	EmploymentType string  `json:"employmentType" validate:"required"`
	CreditHistory  string  `json:"creditHistory" validate:"required"`
}

func (r PredictRequest) ToApplicant() scoring.Applicant {
	return scoring.Applicant{
		Income:         r.Income,
		Liabilities:    r.Liabilities,
		Age:            r.Age,
		EmploymentType: r.EmploymentType,
		CreditHistory:  r.CreditHistory,
	}
}

type PredictResponse struct {
	Recommendation string `json:"recommendation"`
	Extend         bool   `json:"extend"`
}

func NewPredictResponse(rec scoring.Recommendation) PredictResponse {
	return PredictResponse{
		Recommendation: rec.String(),
		Extend:         rec == scoring.RecommendExtend,
	}
}
