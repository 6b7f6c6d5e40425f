package audit

import (
	"context"
	"fmt"
	"strings"

	appconfig "credit-advisor/internal/config"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const textContentType = "text/plain; charset=utf-8"

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ objectPutter = (*s3.Client)(nil)

type S3Exporter struct {
	client objectPutter
	bucket string
}

var _ Exporter = (*S3Exporter)(nil)

func NewS3Exporter(ctx context.Context, cfg appconfig.S3AuditConfig) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 audit export needs a bucket", apperrors.ErrInvalidArgument)
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Exporter(client, cfg.Bucket), nil
}

func newS3Exporter(client objectPutter, bucket string) *S3Exporter {
	return &S3Exporter{client: client, bucket: bucket}
}

func (e *S3Exporter) Export(ctx context.Context, rec Record) error {
	if err := e.put(ctx, rec.InputKey(), rec.Input); err != nil {
		return err
	}
	return e.put(ctx, rec.OutputKey(), rec.Output)
}

func (e *S3Exporter) put(ctx context.Context, key, body string) error {
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String(textContentType),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", ErrExport, key, err)
	}
	return nil
}
