// Package archive keeps a copy of exported documents in an S3-compatible
// bucket. Archiving is best-effort and optional; an unconfigured archive is a
// no-op and export requests never fail because of it.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Mynor454-s/iccsa-admin/internal/config"
)

type Archiver struct {
	client *s3.Client // nil when archiving is disabled
	bucket string
	prefix string
}

// New builds an archiver from configuration. Missing endpoint or bucket
// disables archiving rather than failing startup.
func New(ctx context.Context, cfg config.ArchiveConfig) (*Archiver, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return &Archiver{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Enabled reports whether uploads actually go anywhere.
func (a *Archiver) Enabled() bool { return a.client != nil }

// Store uploads one exported document. Failures are logged, not returned; the
// operator already holds the document in the response body.
func (a *Archiver) Store(ctx context.Context, quoteID int64, kind, contentType string, data []byte) {
	if a.client == nil {
		return
	}

	key := fmt.Sprintf("%sorders/%d/%s_%s.%s",
		a.prefix, quoteID, kind, time.Now().Format("20060102_150405"), extFor(contentType))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		slog.Warn("archive upload failed", "key", key, "error", err)
		return
	}
	slog.Info("archived export", "key", key, "bytes", len(data))
}

func extFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return "pdf"
	case "text/csv":
		return "csv"
	default:
		return "bin"
	}
}
