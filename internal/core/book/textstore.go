// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
	"github.com/taibuivan/yuedu/internal/platform/constants"
	"github.com/taibuivan/yuedu/internal/platform/objectstore"
)

// # Text Storage

// TextStore holds the decoded UTF-8 text of every book.
type TextStore interface {
	Put(context context.Context, key, text string) error
	Get(context context.Context, key string) (string, error)
	Delete(context context.Context, key string) error
}

// ObjectStore is the blob storage the text lives in.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// objectTextStore keeps texts as objects.
type objectTextStore struct {
	objects ObjectStore
}

// NewObjectTextStore stores texts in object storage.
func NewObjectTextStore(objects ObjectStore) TextStore {
	return &objectTextStore{objects: objects}
}

func (store *objectTextStore) Put(context context.Context, key, text string) error {
	return store.objects.Put(context, key, []byte(text), constants.BookObjectContentType)
}

func (store *objectTextStore) Get(context context.Context, key string) (string, error) {
	data, err := store.objects.Get(context, key)
	if errors.Is(err, objectstore.ErrNotFound) {
		return "", apperr.NotFound("Book content")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (store *objectTextStore) Delete(context context.Context, key string) error {
	return store.objects.Delete(context, key)
}

// # Redis Cache

// CachedTextStore keeps recently read texts in Redis in front of another store.
//
// Redis failures never fail a request: reads fall through to the backing
// store and writes are logged.
type CachedTextStore struct {
	next   TextStore
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedTextStore wraps next with a Redis read-through cache.
func NewCachedTextStore(next TextStore, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedTextStore {
	return &CachedTextStore{next: next, client: client, ttl: ttl, logger: logger}
}

// Put writes through to the backing store and warms the cache.
func (store *CachedTextStore) Put(context context.Context, key, text string) error {
	if err := store.next.Put(context, key, text); err != nil {
		return err
	}
	store.remember(context, key, text)
	return nil
}

// Get serves from Redis when possible.
func (store *CachedTextStore) Get(context context.Context, key string) (string, error) {
	cached, err := store.client.Get(context, cacheKey(key)).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		store.logger.WarnContext(context, "book_text_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	text, err := store.next.Get(context, key)
	if err != nil {
		return "", err
	}
	store.remember(context, key, text)
	return text, nil
}

// Delete removes the text from the backing store and the cache.
func (store *CachedTextStore) Delete(context context.Context, key string) error {
	if err := store.client.Del(context, cacheKey(key)).Err(); err != nil {
		store.logger.WarnContext(context, "book_text_cache_evict_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
	return store.next.Delete(context, key)
}

func (store *CachedTextStore) remember(context context.Context, key, text string) {
	if err := store.client.Set(context, cacheKey(key), text, store.ttl).Err(); err != nil {
		store.logger.WarnContext(context, "book_text_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func cacheKey(key string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixBookText, key)
}
