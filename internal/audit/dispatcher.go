package audit

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"credit-advisor/internal/infrastructure/monitoring"

	backoff "github.com/cenkalti/backoff/v4"
)

const (
	defaultExportTimeout   = 30 * time.Second
	defaultInitialInterval = 200 * time.Millisecond
)

type DispatcherConfig struct {
	Timeout         time.Duration
	MaxRetries      uint64
	InitialInterval time.Duration
}

// Dispatcher runs exports in the background. Callers never wait on the archive
// and never see its errors; failures are logged and counted.
type Dispatcher struct {
	exporter Exporter
	logger   *slog.Logger
	cfg      DispatcherConfig
	now      func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(exporter Exporter, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if exporter == nil {
		exporter = NoopExporter{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultExportTimeout
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewDispatcher, using default stderr handler")
	}
	return &Dispatcher{
		exporter: exporter,
		logger:   logger.With(slog.String("component", "auditDispatcher")),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Submit stamps the record with the current time and exports it asynchronously.
// The request context only contributes its values; cancelling it does not stop the export.
func (d *Dispatcher) Submit(ctx context.Context, input, output string) {
	rec := Record{Input: input, Output: output, At: d.now()}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WarnContext(ctx, "Audit dispatcher closed, dropping record", slog.String("folder", rec.Folder()))
		monitoring.RecordAuditExport("dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		d.export(context.WithoutCancel(ctx), rec)
	}()
}

func (d *Dispatcher) export(ctx context.Context, rec Record) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, d.cfg.MaxRetries), ctx)

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return d.exporter.Export(ctx, rec)
	}, policy)

	if err != nil {
		d.logger.WarnContext(ctx, "Audit export failed",
			slog.String("folder", rec.Folder()),
			slog.Int("attempts", attempts),
			slog.Any("error", err),
		)
		monitoring.RecordAuditExport("failure")
		return
	}

	d.logger.DebugContext(ctx, "Audit record exported", slog.String("folder", rec.Folder()))
	monitoring.RecordAuditExport("success")
}

// Close stops accepting records and waits for in-flight exports or ctx, whichever ends first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
