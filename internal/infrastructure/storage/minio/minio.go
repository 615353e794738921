// Package minio stores uploaded assets in an S3 compatible bucket.
package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/lllypuk/catmap/internal/infrastructure/storage"
)

// Config holds connection settings for the bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string

	// CreateBucket makes the bucket at startup instead of failing when it is missing.
	CreateBucket bool
}

// Store is the MinIO asset store.
type Store struct {
	client *mclient.Client
	bucket string
}

// New connects to the endpoint and checks the bucket. The endpoint may carry
// an http or https scheme, which also selects TLS.
func New(ctx context.Context, cfg Config) (*Store, error) {
	const op = "storage/minio/New"

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: bucket is required", op)
	}

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		if !cfg.CreateBucket {
			return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
		}
		err = client.MakeBucket(ctx, cfg.Bucket, mclient.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("%s: make bucket %q: %w", op, cfg.Bucket, err)
		}
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Save uploads r as object name. size may be -1 when unknown.
func (s *Store) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	const op = "storage/minio/Save"

	if err := storage.ValidateName(name); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Open fetches object name. Missing objects map to storage.ErrAssetNotFound.
func (s *Store) Open(ctx context.Context, name string) (*storage.Asset, error) {
	const op = "storage/minio/Open"

	if err := storage.ValidateName(name); err != nil {
		return nil, storage.ErrAssetNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, mclient.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	// GetObject is lazy; Stat performs the request.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("%s: %w", op, mapNotFound(err))
	}

	return &storage.Asset{ReadCloser: obj, Size: info.Size, ContentType: info.ContentType}, nil
}

// Ping checks the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage/minio/Ping: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage/minio/Ping: bucket %q does not exist", s.bucket)
	}
	return nil
}

// Name identifies the driver in health output.
func (s *Store) Name() string {
	return "minio"
}

func mapNotFound(err error) error {
	resp := mclient.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return storage.ErrAssetNotFound
	}
	return err
}
