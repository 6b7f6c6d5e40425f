package audit

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"credit-advisor/internal/config"
	"credit-advisor/internal/pkg/apperrors"
)

const (
	ProviderNone  = "none"
	ProviderAzure = "azure"
	ProviderS3    = "s3"

	folderLayout = "2006-01-02_15-04-05"
	inputBlob    = "input.txt"
	outputBlob   = "output.txt"
)

var ErrExport = fmt.Errorf("audit export failed: %w", apperrors.ErrAuditExport)

// Record is one assessment as it is archived: the customer snapshot that went in
// and the recommendation text that came out.
type Record struct {
	Input  string
	Output string
	At     time.Time
}

func (r Record) Folder() string {
	return r.At.UTC().Format(folderLayout)
}

func (r Record) InputKey() string {
	return path.Join(r.Folder(), inputBlob)
}

func (r Record) OutputKey() string {
	return path.Join(r.Folder(), outputBlob)
}

type Exporter interface {
	Export(ctx context.Context, rec Record) error
}

type NoopExporter struct{}

func (NoopExporter) Export(context.Context, Record) error { return nil }

// NewExporter builds the back-end named by cfg.Provider.
func NewExporter(ctx context.Context, cfg config.AuditConfig, logger *slog.Logger) (Exporter, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "", ProviderNone:
		logger.Info("Audit export disabled")
		return NoopExporter{}, nil
	case ProviderAzure:
		exp, err := NewAzureBlobExporter(cfg.Azure)
		if err != nil {
			return nil, err
		}
		logger.Info("Audit export to Azure Blob Storage enabled", slog.String("container", cfg.Azure.Container))
		return exp, nil
	case ProviderS3:
		exp, err := NewS3Exporter(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		logger.Info("Audit export to S3 enabled", slog.String("bucket", cfg.S3.Bucket))
		return exp, nil
	default:
		return nil, fmt.Errorf("%w: unknown audit provider %q", apperrors.ErrInvalidArgument, cfg.Provider)
	}
}
