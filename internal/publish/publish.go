// Package publish uploads generated archives to S3-compatible storage and
// hands back a time-limited download link.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ruthina1/Dev-Genie/internal/archive"
	"github.com/ruthina1/Dev-Genie/internal/config"
	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// DefaultExpiry is the lifetime of presigned download links.
const DefaultExpiry = time.Hour

// Object describes an uploaded archive.
type Object struct {
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Publisher stores archives in a single bucket.
type Publisher struct {
	client     *minio.Client
	bucketName string
	region     string
	expiry     time.Duration

	mu          sync.Mutex
	bucketReady bool
}

// New builds a Publisher from cfg. Endpoint, bucket and both credentials
// are required.
func New(cfg config.PublishConfig) (*Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.NewInvalidRequest("publish endpoint is required (DEVGENIE_S3_ENDPOINT)")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.NewInvalidRequest("publish access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.NewInvalidRequest("publish bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.NewPublishFailed(bucket, fmt.Errorf("init s3 client: %w", err))
	}

	return &Publisher{
		client:     client,
		bucketName: bucket,
		region:     region,
		expiry:     DefaultExpiry,
	}, nil
}

// Bucket returns the target bucket name.
func (p *Publisher) Bucket() string {
	return p.bucketName
}

// ensureBucket creates the bucket on first use. Failures are not cached,
// so the next Publish checks again.
func (p *Publisher) ensureBucket(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bucketReady {
		return nil
	}
	exists, err := p.client.BucketExists(ctx, p.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucketName, minio.MakeBucketOptions{Region: p.region}); err != nil {
			return err
		}
	}
	p.bucketReady = true
	return nil
}

// Publish uploads data under id/fileName and returns a presigned GET link.
func (p *Publisher) Publish(ctx context.Context, id, fileName string, data []byte) (*Object, error) {
	if p == nil || p.client == nil {
		return nil, errors.NewInternal(fmt.Errorf("publisher is nil"))
	}
	key, err := ObjectKey(id, fileName)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.NewInvalidRequest("archive is empty")
	}
	if err := p.ensureBucket(ctx); err != nil {
		return nil, errors.NewPublishFailed(p.bucketName, fmt.Errorf("ensure bucket: %w", err))
	}

	info, err := p.client.PutObject(ctx, p.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:        archive.ContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", fileName),
	})
	if err != nil {
		return nil, errors.NewPublishFailed(p.bucketName, err)
	}

	u, err := p.client.PresignedGetObject(ctx, p.bucketName, key, p.expiry, nil)
	if err != nil {
		return nil, errors.NewPublishFailed(p.bucketName, fmt.Errorf("presign: %w", err))
	}

	return &Object{
		Bucket:    p.bucketName,
		Key:       key,
		Size:      info.Size,
		URL:       u.String(),
		ExpiresAt: time.Now().Add(p.expiry).UTC(),
	}, nil
}

// ObjectKey returns "<id>/<fileName>" after rejecting empty or nested names.
func ObjectKey(id, fileName string) (string, error) {
	id = strings.TrimSpace(id)
	fileName = strings.TrimSpace(fileName)
	if id == "" {
		return "", errors.NewInvalidRequest("publish id is required")
	}
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid archive file name %q", fileName))
	}
	if strings.ContainsAny(id, `/\`) {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid publish id %q", id))
	}
	return id + "/" + fileName, nil
}
