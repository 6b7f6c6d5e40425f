package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"credit-advisor/internal/batch"
	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/domain/scoring"
	"credit-advisor/internal/infrastructure/monitoring"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) Assess(ctx context.Context, criteria customer.SearchCriteria) (*assessment.Assessment, error) {
	args := m.Called(ctx, criteria)
	a, _ := args.Get(0).(*assessment.Assessment)
	return a, args.Error(1)
}

func (m *MockAssessmentService) AssessAll(ctx context.Context) ([]assessment.Assessment, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]assessment.Assessment)
	return a, args.Error(1)
}

func (m *MockAssessmentService) Score(ctx context.Context, applicant scoring.Applicant) (scoring.Recommendation, error) {
	args := m.Called(ctx, applicant)
	return args.Get(0).(scoring.Recommendation), args.Error(1)
}

func row(id int64, rec scoring.Recommendation, err error) assessment.Assessment {
	return assessment.Assessment{Customer: &customer.Customer{ID: id}, Recommendation: rec, Err: err}
}

func TestPortfolioScoringJobSuccess(t *testing.T) {
	svc := new(MockAssessmentService)
	svc.On("AssessAll", mock.Anything).Return([]assessment.Assessment{
		row(1, scoring.RecommendExtend, nil),
		row(2, scoring.RecommendExtend, nil),
		row(3, scoring.RecommendDecline, nil),
	}, nil).Once()

	job := batch.NewPortfolioScoringJob(svc, logger)

	summary, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, batch.PortfolioSummary{Total: 3, Extend: 2, Decline: 1}, summary)
	assert.Equal(t, 2.0, testutil.ToFloat64(monitoring.Scoring.PortfolioRecommendations.WithLabelValues("extend")))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.Scoring.PortfolioRecommendations.WithLabelValues("decline")))
	svc.AssertExpectations(t)
}

func TestPortfolioScoringJobCountsUnscoredRows(t *testing.T) {
	svc := new(MockAssessmentService)
	svc.On("AssessAll", mock.Anything).Return([]assessment.Assessment{
		row(1, scoring.RecommendExtend, nil),
		row(2, "", scoring.ErrUnknownCategory),
	}, nil).Once()

	job := batch.NewPortfolioScoringJob(svc, logger)

	summary, err := job.Run(context.Background())
	assert.ErrorContains(t, err, "1 unscored customers")
	assert.Equal(t, batch.PortfolioSummary{Total: 2, Extend: 1, Unscored: 1}, summary)
	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.Scoring.PortfolioRecommendations.WithLabelValues("unscored")))
}

func TestPortfolioScoringJobStoreFailure(t *testing.T) {
	svc := new(MockAssessmentService)
	svc.On("AssessAll", mock.Anything).Return(nil, apperrors.ErrDatabase).Once()

	job := batch.NewPortfolioScoringJob(svc, logger)

	_, err := job.Run(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrDatabase))
}

func TestNewPortfolioScoringJobPanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { batch.NewPortfolioScoringJob(nil, logger) })
}
