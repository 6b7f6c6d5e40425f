package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/infrastructure/monitoring"
	"credit-advisor/internal/pkg/apperrors"
)

var ErrModelContractViolation = fmt.Errorf("classifier returned an unexpected class: %w", apperrors.ErrModelContract)

type Recommendation string

const (
	RecommendExtend  Recommendation = "recommend extending credit"
	RecommendDecline Recommendation = "do not recommend extending credit"
)

func (r Recommendation) String() string {
	return string(r)
}

// Outcome is the short label used for metrics and the portfolio summary.
func (r Recommendation) Outcome() string {
	if r == RecommendExtend {
		return "extend"
	}
	return "decline"
}

// Applicant carries raw category labels so unknown ones can be reported instead of coerced.
type Applicant struct {
	Income         float64
	Liabilities    float64
	Age            int
	EmploymentType string
	CreditHistory  string
}

func ApplicantFromCustomer(c *customer.Customer) Applicant {
	return Applicant{
		Income:         c.Income,
		Liabilities:    c.Liabilities,
		Age:            c.Age,
		EmploymentType: string(c.EmploymentType),
		CreditHistory:  string(c.CreditHistory),
	}
}

type Pipeline struct {
	classifier Classifier
	encoding   Encoding
	logger     *slog.Logger
}

func NewPipeline(classifier Classifier, encoding Encoding, logger *slog.Logger) *Pipeline {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &Pipeline{
		classifier: classifier,
		encoding:   encoding,
		logger:     logger.With(slog.String("component", "scoringPipeline")),
	}
}

func (p *Pipeline) BuildFeatureVector(a Applicant) (FeatureVector, error) {
	employment, err := p.encoding.EncodeEmploymentType(a.EmploymentType)
	if err != nil {
		return FeatureVector{}, err
	}
	history, err := p.encoding.EncodeCreditHistory(a.CreditHistory)
	if err != nil {
		return FeatureVector{}, err
	}
	return FeatureVector{
		a.Income,
		a.Liabilities,
		float64(a.Age),
		float64(employment),
		float64(history),
	}, nil
}

func (p *Pipeline) Predict(ctx context.Context, a Applicant) (Recommendation, error) {
	x, err := p.BuildFeatureVector(a)
	if err != nil {
		monitoring.RecordPrediction("error")
		p.logger.WarnContext(ctx, "Applicant cannot be encoded", slog.Any("error", err))
		return "", err
	}

	class, err := p.classifier.Predict(x)
	if err != nil {
		monitoring.RecordPrediction("error")
		p.logger.ErrorContext(ctx, "Classifier failed", slog.Any("error", err))
		return "", fmt.Errorf("%w: %w", ErrModelContractViolation, err)
	}

	var rec Recommendation
	switch class {
	case 1:
		rec = RecommendExtend
	case 0:
		rec = RecommendDecline
	default:
		monitoring.RecordPrediction("error")
		p.logger.ErrorContext(ctx, "Classifier returned class outside {0,1}", slog.Int("class", class))
		return "", fmt.Errorf("%w: got %d", ErrModelContractViolation, class)
	}

	monitoring.RecordPrediction(rec.Outcome())
	p.logger.DebugContext(ctx, "Prediction made", slog.String("outcome", rec.Outcome()))
	return rec, nil
}
