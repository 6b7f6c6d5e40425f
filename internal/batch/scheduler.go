package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"credit-advisor/internal/config"

	"github.com/robfig/cron/v3"
)

const (
	defaultPortfolioSchedule = "0 3 * * *"
	defaultPortfolioTimeout  = 30 * time.Minute
)

type portfolioRunner interface {
	Run(ctx context.Context) (PortfolioSummary, error)
}

func StartScheduler(cfg config.BatchConfig, job portfolioRunner, logger *slog.Logger) (*cron.Cron, error) {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.PortfolioScoringSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultPortfolioSchedule
		logger.Warn("Portfolio scoring schedule not configured, using default", slog.String("schedule", scheduleSpec))
	}
	timeout := cfg.PortfolioScoringTimeout
	if timeout <= 0 {
		timeout = defaultPortfolioTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PortfolioScoring")
		jobLogger.Info("Cron triggered: Running portfolio scoring job.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Portfolio scoring job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio scoring schedule %q: %w", scheduleSpec, err)
	}

	c.Start()
	logger.Info("Cron scheduler started.", slog.Int("job_id", int(jobID)), slog.String("schedule", scheduleSpec))
	return c, nil
}
