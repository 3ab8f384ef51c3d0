package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// RecordingStore keeps uploaded meeting recordings in object storage so the
// transcription provider can fetch them by URL
type RecordingStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewRecordingStore creates the store and ensures its bucket exists
func NewRecordingStore(cfg *config.StorageConfig) (*RecordingStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &RecordingStore{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucket creates the bucket on first use and grants read access so
// the transcription provider can download recordings by presigned URL
func (s *RecordingStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return nil
}

// UploadRecording stores one recording and returns nothing; fetch a URL
// with RecordingURL when handing it to the transcription provider
func (s *RecordingStore) UploadRecording(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload recording: %w", err)
	}

	return nil
}

// RecordingURL returns a presigned download URL for a stored recording.
// When a public URL is configured the internal endpoint is swapped for it,
// which is needed when MinIO sits behind a reverse proxy.
func (s *RecordingStore) RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host)
		if bucketPos < len(urlStr) {
			return s.publicURL + urlStr[bucketPos:], nil
		}
	}

	return url.String(), nil
}

// DeleteRecording removes a stored recording
func (s *RecordingStore) DeleteRecording(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}
