package audit

import (
	"context"
	"fmt"

	"credit-advisor/internal/config"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type blobUploader interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

var _ blobUploader = (*azblob.Client)(nil)

type AzureBlobExporter struct {
	client    blobUploader
	container string
}

var _ Exporter = (*AzureBlobExporter)(nil)

func NewAzureBlobExporter(cfg config.AzureAuditConfig) (*AzureBlobExporter, error) {
	if cfg.ConnectionString == "" || cfg.Container == "" {
		return nil, fmt.Errorf("%w: azure audit export needs a connection string and a container", apperrors.ErrInvalidArgument)
	}
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}
	return newAzureBlobExporter(client, cfg.Container), nil
}

func newAzureBlobExporter(client blobUploader, container string) *AzureBlobExporter {
	return &AzureBlobExporter{client: client, container: container}
}

func (e *AzureBlobExporter) Export(ctx context.Context, rec Record) error {
	if _, err := e.client.UploadBuffer(ctx, e.container, rec.InputKey(), []byte(rec.Input), nil); err != nil {
		return fmt.Errorf("%w: upload %s: %w", ErrExport, rec.InputKey(), err)
	}
	if _, err := e.client.UploadBuffer(ctx, e.container, rec.OutputKey(), []byte(rec.Output), nil); err != nil {
		return fmt.Errorf("%w: upload %s: %w", ErrExport, rec.OutputKey(), err)
	}
	return nil
}
