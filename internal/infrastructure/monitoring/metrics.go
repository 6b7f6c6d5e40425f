package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type ScoringMetrics struct {
	PredictionsTotal          *prometheus.CounterVec
	PortfolioRecommendations  *prometheus.GaugeVec
	PortfolioLastRunTimestamp prometheus.Gauge
}

type AuditMetrics struct {
	ExportsTotal *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_advisor_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Scoring = ScoringMetrics{
		PredictionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_advisor_predictions_total",
				Help: "Total number of credit predictions by outcome.",
			},
			[]string{"outcome"},
		),
		PortfolioRecommendations: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "credit_advisor_portfolio_recommendations",
				Help: "Stored customers per recommendation in the last portfolio scoring run.",
			},
			[]string{"recommendation"},
		),
		PortfolioLastRunTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "credit_advisor_portfolio_last_run_timestamp_seconds",
				Help: "Unix time of the last completed portfolio scoring run.",
			},
		),
	}

	Audit = AuditMetrics{
		ExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_advisor_audit_exports_total",
				Help: "Total number of audit exports by status.",
			},
			[]string{"status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPrediction(outcome string) {
	Scoring.PredictionsTotal.WithLabelValues(outcome).Inc()
}

func RecordPortfolio(counts map[string]int, at time.Time) {
	Scoring.PortfolioRecommendations.Reset()
	for recommendation, n := range counts {
		Scoring.PortfolioRecommendations.WithLabelValues(recommendation).Set(float64(n))
	}
	Scoring.PortfolioLastRunTimestamp.Set(float64(at.Unix()))
}

func RecordAuditExport(status string) {
	Audit.ExportsTotal.WithLabelValues(status).Inc()
}
