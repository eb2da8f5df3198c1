package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisClient "github.com/go-redis/redis/v8"

	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
	"github.com/sukalov/lyricsheet/internal/utils"
)

// ErrCacheMiss is returned when no sheet is cached for a song.
var ErrCacheMiss = errors.New("sheet not cached")

const (
	keyPrefix  = "sheet:"
	DefaultTTL = 24 * time.Hour
)

// SheetCache caches song sheets as flat text with encoded titles.
type SheetCache struct {
	client redisClient.UniversalClient
	ttl    time.Duration
}

func NewSheetCache(client redisClient.UniversalClient, ttl time.Duration) *SheetCache {
	return &SheetCache{client: client, ttl: ttl}
}

// NewClientFromEnv connects to REDIS_URL over TLS with REDIS_PASSWORD.
func NewClientFromEnv() (*redisClient.Client, error) {
	env, err := utils.LoadEnv([]string{"REDIS_URL", "REDIS_PASSWORD"})
	if err != nil {
		return nil, fmt.Errorf("failed to load redis env: %w", err)
	}
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", env["REDIS_PASSWORD"], env["REDIS_URL"]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redisClient.NewClient(opt), nil
}

// Key returns the redis key holding the sheet of songID.
func Key(songID string) string {
	return keyPrefix + songID
}

// Get retrieves and decodes a cached sheet
func (c *SheetCache) Get(ctx context.Context, songID string) (sheet.Sheet, error) {
	data, err := c.client.Get(ctx, Key(songID)).Result()
	if err != nil {
		if errors.Is(err, redisClient.Nil) {
			return sheet.Sheet{}, ErrCacheMiss
		}
		return sheet.Sheet{}, fmt.Errorf("failed to read sheet %s from redis: %w", songID, err)
	}
	return sheet.Decode(data), nil
}

// Set encodes and stores a sheet for the cache TTL
func (c *SheetCache) Set(ctx context.Context, songID string, sh sheet.Sheet) error {
	if err := c.client.Set(ctx, Key(songID), sheet.Encode(sh), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache sheet %s: %w", songID, err)
	}
	return nil
}

func (c *SheetCache) Delete(ctx context.Context, songID string) error {
	if err := c.client.Del(ctx, Key(songID)).Err(); err != nil {
		return fmt.Errorf("failed to drop sheet %s from redis: %w", songID, err)
	}
	return nil
}
