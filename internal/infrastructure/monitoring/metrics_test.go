package monitoring

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPrediction(t *testing.T) {
	Scoring.PredictionsTotal.Reset()

	RecordPrediction("extend")
	RecordPrediction("extend")
	RecordPrediction("decline")

	if got := testutil.ToFloat64(Scoring.PredictionsTotal.WithLabelValues("extend")); got != 2 {
		t.Errorf("expected 2 extend predictions, got %v", got)
	}
	if got := testutil.ToFloat64(Scoring.PredictionsTotal.WithLabelValues("decline")); got != 1 {
		t.Errorf("expected 1 decline prediction, got %v", got)
	}
}

func TestRecordPortfolioReplacesPreviousRun(t *testing.T) {
	RecordPortfolio(map[string]int{"extend": 5, "decline": 2, "error": 1}, time.Unix(100, 0))
	RecordPortfolio(map[string]int{"extend": 3}, time.Unix(200, 0))

	expected := `
		# HELP credit_advisor_portfolio_recommendations Stored customers per recommendation in the last portfolio scoring run.
		# TYPE credit_advisor_portfolio_recommendations gauge
		credit_advisor_portfolio_recommendations{recommendation="extend"} 3
	`
	if err := testutil.CollectAndCompare(Scoring.PortfolioRecommendations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected portfolio metrics: %v", err)
	}
	if got := testutil.ToFloat64(Scoring.PortfolioLastRunTimestamp); got != 200 {
		t.Errorf("expected last run 200, got %v", got)
	}
}

func TestRecordAuditExport(t *testing.T) {
	Audit.ExportsTotal.Reset()

	RecordAuditExport("failed")

	if got := testutil.ToFloat64(Audit.ExportsTotal.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected 1 failed export, got %v", got)
	}
}
