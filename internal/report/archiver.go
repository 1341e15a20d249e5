package report

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// S3Config holds the object-storage parameters for report archiving.
// S3-compatible providers (MinIO, R2, iDrive e2) are supported via Endpoint.
type S3Config struct {
	// Endpoint is the S3-compatible endpoint URL. Leave empty for AWS S3.
	Endpoint string
	Region   string
	Bucket   string

	AccessKey string
	SecretKey string

	// Prefix is prepended to every object key, e.g. "tracker".
	Prefix string

	// ForcePathStyle forces path-style addressing (bucket in path rather
	// than subdomain), required by many S3-compatible providers.
	ForcePathStyle bool
}

// S3Archiver uploads each emitted report to object storage, keyed by
// generation time, so the scheduled job accumulates a browsable history
// even though the working tree only ever holds the latest report.
type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archiver creates an S3Archiver from the given configuration.
func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("report: s3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("report: s3 region is required")
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("report: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			if _, err := url.Parse(cfg.Endpoint); err == nil {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Archive uploads the raw report document under
// <prefix>/reports/<date>/<time>.json.
func (a *S3Archiver) Archive(ctx context.Context, report domain.Report, raw []byte) error {
	generated, err := time.Parse(time.RFC3339, report.GeneratedAt)
	if err != nil {
		generated = time.Now().UTC()
	}

	key := path.Join(a.prefix, "reports",
		generated.Format("2006-01-02"),
		generated.Format("150405")+".json",
	)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("report: put object %s: %w", key, err)
	}
	return nil
}
