package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"restaurant-catalog/internal/config"
)

// MinIOStorage stores images in a MinIO bucket
type MinIOStorage struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
	bucketReady   atomic.Bool
}

// NewMinIOStorage creates the client only; the bucket is checked lazily
func NewMinIOStorage(cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOStorage{
		client:        client,
		bucket:        cfg.Bucket,
		presignExpiry: cfg.PresignExpiry,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet
func (s *MinIOStorage) EnsureBucket(ctx context.Context) error {
	if s.bucketReady.Load() {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("component", "storage").Str("bucket", s.bucket).Msg("bucket created")
	}

	s.bucketReady.Store(true)
	return nil
}

func (s *MinIOStorage) Upload(ctx context.Context, prefix string, ownerID uuid.UUID, file *FileUpload) (string, error) {
	up, err := prepareUpload(prefix, ownerID, file)
	if err != nil {
		return "", err
	}

	if err := s.EnsureBucket(ctx); err != nil {
		return "", uploadFailed(err)
	}

	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		up.name,
		bytes.NewReader(up.data),
		int64(len(up.data)),
		minio.PutObjectOptions{
			ContentType: up.contentType,
		},
	)
	if err != nil {
		return "", uploadFailed(err)
	}

	return up.name, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}

func (s *MinIOStorage) PresignUpload(ctx context.Context, name string) (string, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return "", err
	}

	u, err := s.client.PresignedPutObject(ctx, s.bucket, name, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return u.String(), nil
}

func (s *MinIOStorage) Get(ctx context.Context, name string) (*Object, error) {
	object, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return &Object{
		Name:        name,
		Data:        data,
		ContentType: ContentTypeFor(name, data),
	}, nil
}

func (s *MinIOStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// HealthCheck verifies the bucket is reachable
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}
