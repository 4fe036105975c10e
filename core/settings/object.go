package settings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"source-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps each setting as an object in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a store writing objects named prefix+key.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

// EnsureBucket creates the bucket when it doesn't exist.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ObjectStore) objectName(key string) string {
	return path.Join(s.prefix, key)
}

// Get implements Store.
func (s *ObjectStore) Get(ctx context.Context, key string) (string, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	defer obj.Close()

	// minio reports missing keys lazily, on first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *ObjectStore) Set(ctx context.Context, key, value string) error {
	data := []byte(value)
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/xml",
	})
	if err != nil {
		return fmt.Errorf("failed to put setting %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
