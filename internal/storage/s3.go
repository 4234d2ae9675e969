package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/meeting-scheduler/internal/config"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// CalendarPublisher uploads per-user calendar feeds to a bucket.
type CalendarPublisher struct {
	client putObjectAPI
	bucket string
	prefix string
}

// NewS3Client builds a client from static credentials. A custom endpoint
// (MinIO, localstack) switches to path-style addressing.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		)
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewCalendarPublisher(client putObjectAPI, bucket, prefix string) *CalendarPublisher {
	return &CalendarPublisher{client: client, bucket: bucket, prefix: prefix}
}

// Key is the object key holding userID's feed.
func (p *CalendarPublisher) Key(userID string) string {
	prefix := p.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + userID + ".ics"
}

// Publish overwrites the user's feed and returns its key.
func (p *CalendarPublisher) Publish(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	key := p.Key(userID)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
