package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/infrastructure/monitoring"
)

const outcomeUnscored = "unscored"

type PortfolioSummary struct {
	Total    int
	Extend   int
	Decline  int
	Unscored int
}

type PortfolioScoringJob struct {
	assessments assessment.AssessmentService
	logger      *slog.Logger
	now         func() time.Time
}

func NewPortfolioScoringJob(assessments assessment.AssessmentService, logger *slog.Logger) *PortfolioScoringJob {
	if assessments == nil || logger == nil {
		panic("PortfolioScoringJob dependencies cannot be nil")
	}
	return &PortfolioScoringJob{
		assessments: assessments,
		logger:      logger.With("job", "PortfolioScoring"),
		now:         time.Now,
	}
}

// Run scores every stored customer and publishes the split as a gauge. It returns an
// error when any record could not be scored, after the rest of the portfolio is done.
func (j *PortfolioScoringJob) Run(ctx context.Context) (PortfolioSummary, error) {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting portfolio scoring job.")

	results, err := j.assessments.AssessAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load customers, aborting job.", slog.Any("error", err))
		return PortfolioSummary{}, fmt.Errorf("cannot run job, failed to assess customers: %w", err)
	}

	summary := PortfolioSummary{Total: len(results)}
	for _, res := range results {
		if res.Err != nil {
			summary.Unscored++
			j.logger.WarnContext(ctx, "Customer could not be scored",
				slog.Int64("customerID", res.Customer.ID),
				slog.Any("error", res.Err))
			continue
		}
		switch res.Recommendation.Outcome() {
		case "extend":
			summary.Extend++
		default:
			summary.Decline++
		}
	}

	monitoring.RecordPortfolio(map[string]int{
		"extend":        summary.Extend,
		"decline":       summary.Decline,
		outcomeUnscored: summary.Unscored,
	}, j.now())

	summaryLog := j.logger.With(
		slog.Duration("duration", j.now().Sub(startTime)),
		slog.Int("total_customers", summary.Total),
		slog.Int("recommended", summary.Extend),
		slog.Int("not_recommended", summary.Decline),
		slog.Int("errors_encountered", summary.Unscored),
	)
	if summary.Unscored > 0 {
		summaryLog.WarnContext(ctx, "Portfolio scoring job finished with errors.")
		return summary, fmt.Errorf("job completed with %d unscored customers", summary.Unscored)
	}

	summaryLog.InfoContext(ctx, "Portfolio scoring job finished successfully.")
	return summary, nil
}
