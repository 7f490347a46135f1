// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore keeps uploaded book files in MinIO or any S3-compatible
bucket.

Postgres stores only the object key; the bytes live here. Objects are written
once at upload and removed when the book is deleted.
*/
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// bootstrapTimeout bounds the bucket check performed at startup.
	bootstrapTimeout = 5 * time.Second
	// pingTimeout bounds the readiness probe.
	pingTimeout = 2 * time.Second
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("objectstore: object not found")

// Options configures the connection to the object storage endpoint.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore stores objects in a single bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

/*
NewMinioStore connects to the endpoint and ensures the bucket exists.

Parameters:
  - ctx: context.Context (startup context)
  - options: Options
  - logger: *slog.Logger

Returns:
  - *MinioStore: Ready to use store
  - error: When the client cannot be built or the bucket cannot be created
*/
func NewMinioStore(ctx context.Context, options Options, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to init minio client: %w", err)
	}

	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	exists, err := client.BucketExists(bootstrapCtx, options.Bucket)
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to check bucket %q: %w", options.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(bootstrapCtx, options.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("objectstore: failed to create bucket %q: %w", options.Bucket, err)
		}
		logger.Info("objectstore_bucket_created", slog.String("bucket", options.Bucket))
	}

	logger.Info("objectstore_connected",
		slog.String("endpoint", options.Endpoint),
		slog.String("bucket", options.Bucket),
	)

	return &MinioStore{client: client, bucket: options.Bucket}, nil
}

// Put uploads an object.
func (store *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := store.client.PutObject(ctx, store.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("objectstore: failed to put %q: %w", key, err)
	}
	return nil
}

// Get downloads a whole object. Missing keys yield [ErrNotFound].
func (store *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := store.client.GetObject(ctx, store.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, store.classify(key, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, store.classify(key, err)
	}
	return data, nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (store *MinioStore) Delete(ctx context.Context, key string) error {
	if err := store.client.RemoveObject(ctx, store.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objectstore: failed to delete %q: %w", key, err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (store *MinioStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := store.client.BucketExists(pingCtx, store.bucket); err != nil {
		return fmt.Errorf("objectstore: ping failed: %w", err)
	}
	return nil
}

// classify turns a NoSuchKey response into [ErrNotFound].
func (store *MinioStore) classify(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return fmt.Errorf("objectstore: failed to get %q: %w", key, err)
}
