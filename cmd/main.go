package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credit-advisor/internal/api"
	mw "credit-advisor/internal/api/middleware"
	"credit-advisor/internal/audit"
	"credit-advisor/internal/batch"
	"credit-advisor/internal/config"
	"credit-advisor/internal/domain/assessment"
	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/domain/scoring"
	"credit-advisor/internal/event"
	"credit-advisor/internal/infrastructure/database/postgres"
	"credit-advisor/internal/infrastructure/logging"
	"credit-advisor/internal/infrastructure/monitoring"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const limiterCleanupInterval = 5 * time.Minute

// @title Credit Advisor API
// @version 1.0
// @description Customer records and credit recommendations.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	rabbitConn, publisher := initializePublisher(cfg.RabbitMQ, logger)
	if rabbitConn != nil {
		defer rabbitConn.Close()
	}

	redisClient := initializeRedis(cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	dispatcher := initializeAudit(cfg.Audit, logger)

	customerService, assessmentService := initializeServices(cfg, dbPool, publisher, dispatcher, logger)

	portfolioJob := batch.NewPortfolioScoringJob(assessmentService, logger)
	cronScheduler, err := batch.StartScheduler(cfg.Batch, portfolioJob, logger)
	if err != nil {
		logger.Error("Failed to start batch scheduler", "error", err)
		os.Exit(1)
	}

	limiterCtx, stopLimiterCleanup := context.WithCancel(context.Background())
	defer stopLimiterCleanup()
	rateLimiter := mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger)
	go rateLimiter.CleanupLimiters(limiterCtx, limiterCleanupInterval)

	router := api.SetupRouter(rateLimiter, customerService, assessmentService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, dispatcher, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (*amqp.Connection, event.EventPublisher) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ publishing disabled; customer events will not be emitted.")
		return nil, event.NoopPublisher{}
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		conn.Close()
		logger.Error("Failed to initialize RabbitMQ publisher", "error", err)
		os.Exit(1)
	}
	return conn, publisher
}

func initializeRedis(cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable; rate limiter will fail open until it recovers", "addr", cfg.Addr, "error", err)
	} else {
		logger.Info("Connected to Redis", "addr", cfg.Addr)
	}
	return client
}

func initializeAudit(cfg config.AuditConfig, logger *slog.Logger) *audit.Dispatcher {
	exporter, err := audit.NewExporter(context.Background(), cfg, logger)
	if err != nil {
		logger.Warn("Audit exporter misconfigured; assessments will not be archived", "provider", cfg.Provider, "error", err)
		monitoring.RecordAuditExport("unconfigured")
		exporter = audit.NoopExporter{}
	}
	return audit.NewDispatcher(exporter, audit.DispatcherConfig{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	}, logger)
}

func initializeServices(
	cfg *config.Config,
	dbPool *pgxpool.Pool,
	publisher event.EventPublisher,
	auditor assessment.AuditRecorder,
	logger *slog.Logger,
) (customer.CustomerService, assessment.AssessmentService) {
	logger.Info("Initializing application components...")

	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	if err := customerRepo.Initialize(context.Background()); err != nil {
		logger.Error("Failed to initialize customer store", "error", err)
		os.Exit(1)
	}

	model, err := scoring.LoadModel(cfg.Scoring.ModelPath)
	if err != nil {
		logger.Error("Failed to load scoring model", "path", cfg.Scoring.ModelPath, "error", err)
		os.Exit(1)
	}
	encoding := scoring.NewEncodingFromConfig(cfg.Scoring.Encoding)
	pipeline := scoring.NewPipeline(model, encoding, logger)

	customerService := customer.NewCustomerService(customerRepo, publisher, encoding, logger)
	return customerService, assessment.NewAssessmentService(customerService, pipeline, auditor, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

type closer interface {
	Close(ctx context.Context) error
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, auditor closer, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Flushing pending audit exports...")
	if err := auditor.Close(shutdownCtx); err != nil {
		logger.Warn("Audit exports still pending at shutdown", "error", err)
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}
