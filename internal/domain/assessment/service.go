package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/domain/scoring"
)

// Assessment is a stored customer with the model's verdict. Err is set instead of
// Recommendation when that one record could not be scored.
type Assessment struct {
	Customer       *customer.Customer
	Recommendation scoring.Recommendation
	Err            error
}

type Predictor interface {
	Predict(ctx context.Context, a scoring.Applicant) (scoring.Recommendation, error)
}

type AuditRecorder interface {
	Submit(ctx context.Context, input, output string)
}

type AssessmentService interface {
	Assess(ctx context.Context, criteria customer.SearchCriteria) (*Assessment, error)
	AssessAll(ctx context.Context) ([]Assessment, error)
	Score(ctx context.Context, applicant scoring.Applicant) (scoring.Recommendation, error)
}

var _ AssessmentService = (*assessmentService)(nil)

type assessmentService struct {
	customers customer.CustomerService
	predictor Predictor
	auditor   AuditRecorder
	logger    *slog.Logger
}

type noopAuditor struct{}

func (noopAuditor) Submit(context.Context, string, string) {}

func NewAssessmentService(customers customer.CustomerService, predictor Predictor, auditor AuditRecorder, logger *slog.Logger) AssessmentService {
	if customers == nil {
		panic("customer service cannot be nil")
	}
	if predictor == nil {
		panic("predictor cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAssessmentService, using default stderr handler")
	}
	if auditor == nil {
		auditor = noopAuditor{}
	}
	return &assessmentService{
		customers: customers,
		predictor: predictor,
		auditor:   auditor,
		logger:    logger.With(slog.String("component", "assessmentService")),
	}
}

func (s *assessmentService) Assess(ctx context.Context, criteria customer.SearchCriteria) (*Assessment, error) {
	cust, err := s.customers.FindCustomer(ctx, criteria)
	if err != nil {
		return nil, err
	}

	logCtx := s.logger.With(slog.Int64("customerID", cust.ID))
	rec, err := s.predictor.Predict(ctx, scoring.ApplicantFromCustomer(cust))
	if err != nil {
		logCtx.WarnContext(ctx, "Customer found but could not be scored", slog.Any("error", err))
		return nil, fmt.Errorf("failed to assess customer %d: %w", cust.ID, err)
	}

	s.auditor.Submit(ctx, cust.Snapshot(), rec.String())

	logCtx.InfoContext(ctx, "Customer assessed", slog.String("outcome", rec.Outcome()))
	return &Assessment{Customer: cust, Recommendation: rec}, nil
}

func (s *assessmentService) AssessAll(ctx context.Context) ([]Assessment, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Assessment, 0, len(customers))
	failed := 0
	for _, cust := range customers {
		rec, err := s.predictor.Predict(ctx, scoring.ApplicantFromCustomer(cust))
		if err != nil {
			failed++
		}
		out = append(out, Assessment{Customer: cust, Recommendation: rec, Err: err})
	}

	if failed > 0 {
		s.logger.WarnContext(ctx, "Some customers could not be scored", slog.Int("failed", failed), slog.Int("total", len(out)))
	}
	return out, nil
}

func (s *assessmentService) Score(ctx context.Context, applicant scoring.Applicant) (scoring.Recommendation, error) {
	return s.predictor.Predict(ctx, applicant)
}
