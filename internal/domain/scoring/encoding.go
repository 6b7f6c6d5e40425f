package scoring

import (
	"fmt"
	"maps"

	"credit-advisor/internal/config"
	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/pkg/apperrors"
)

var _ customer.Categories = Encoding{}

var ErrUnknownCategory = fmt.Errorf("category has no model encoding: %w", apperrors.ErrUnknownCategory)

// Encoding maps categorical labels to the integer codes the model was trained on.
// Codes are part of the model contract: changing them requires retraining.
type Encoding struct {
	employmentType map[string]int
	creditHistory  map[string]int
}

func DefaultEncoding() Encoding {
	return Encoding{
		employmentType: map[string]int{
			"permanent-contract": 0,
			"task-contract":      1,
			"business-contract":  2,
		},
		creditHistory: map[string]int{
			"good":    0,
			"average": 1,
			"poor":    2,
			"none":    3,
		},
	}
}

func NewEncoding(employmentType, creditHistory map[string]int) Encoding {
	return Encoding{
		employmentType: maps.Clone(employmentType),
		creditHistory:  maps.Clone(creditHistory),
	}
}

// NewEncodingFromConfig falls back to the default table for any map left empty.
func NewEncodingFromConfig(cfg config.EncodingConfig) Encoding {
	enc := DefaultEncoding()
	if len(cfg.EmploymentType) > 0 {
		enc.employmentType = maps.Clone(cfg.EmploymentType)
	}
	if len(cfg.CreditHistory) > 0 {
		enc.creditHistory = maps.Clone(cfg.CreditHistory)
	}
	return enc
}

func (e Encoding) EncodeEmploymentType(label string) (int, error) {
	code, ok := e.employmentType[label]
	if !ok {
		return 0, fmt.Errorf("%w: employment type %q", ErrUnknownCategory, label)
	}
	return code, nil
}

func (e Encoding) EncodeCreditHistory(label string) (int, error) {
	code, ok := e.creditHistory[label]
	if !ok {
		return 0, fmt.Errorf("%w: credit history %q", ErrUnknownCategory, label)
	}
	return code, nil
}

func (e Encoding) KnowsEmploymentType(label string) bool {
	_, ok := e.employmentType[label]
	return ok
}

func (e Encoding) KnowsCreditHistory(label string) bool {
	_, ok := e.creditHistory[label]
	return ok
}
