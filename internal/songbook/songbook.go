// Package songbook serves song sheets from the cache, the database or the
// song's source page, in that order.
package songbook

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/db"
	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
	"github.com/sukalov/lyricsheet/internal/redis"
)

type SheetStore interface {
	FindSongByID(id string) (db.Song, bool)
	Sheet(ctx context.Context, songID string) (sheet.Sheet, error)
	SaveSheet(ctx context.Context, songID string, sh sheet.Sheet) error
}

type SheetCache interface {
	Get(ctx context.Context, songID string) (sheet.Sheet, error)
	Set(ctx context.Context, songID string, sh sheet.Sheet) error
}

type SheetFetcher interface {
	ExtractSheet(ctx context.Context, url string) (*lyrics.Result, error)
}

// Library resolves song sheets. The cache and fetcher are optional.
type Library struct {
	store   SheetStore
	cache   SheetCache
	fetcher SheetFetcher
}

func New(store SheetStore, cache SheetCache, fetcher SheetFetcher) *Library {
	return &Library{store: store, cache: cache, fetcher: fetcher}
}

// Sheet returns the sheet of a song. A sheet missing from the database is
// fetched from the song's link and stored.
func (l *Library) Sheet(ctx context.Context, songID string) (sheet.Sheet, error) {
	if l.cache != nil {
		sh, err := l.cache.Get(ctx, songID)
		if err == nil {
			return sh, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logger.Error("sheet cache read failed", zap.String("song", songID), zap.Error(err))
		}
	}

	sh, err := l.store.Sheet(ctx, songID)
	if errors.Is(err, db.ErrNoSheet) {
		sh, err = l.fetch(ctx, songID)
	}
	if err != nil {
		return sheet.Sheet{}, err
	}

	l.fill(ctx, songID, sh)
	return sh, nil
}

// Import parses text as the song's sheet and stores it.
func (l *Library) Import(ctx context.Context, songID, text string) (sheet.Sheet, error) {
	sh := sheet.Parse(text)
	message := fmt.Sprintf("importing %d lines for song %s", len(sh.Lines), songID)
	if err := logger.LogWithErr(message, l.store.SaveSheet(ctx, songID, sh)); err != nil {
		return sheet.Sheet{}, err
	}
	l.fill(ctx, songID, sh)
	return sh, nil
}

func (l *Library) fetch(ctx context.Context, songID string) (sheet.Sheet, error) {
	song, ok := l.store.FindSongByID(songID)
	if !ok {
		return sheet.Sheet{}, fmt.Errorf("%w: %s", db.ErrSongNotFound, songID)
	}
	if l.fetcher == nil || song.Link == "" {
		return sheet.Sheet{}, fmt.Errorf("%w: %s", db.ErrNoSheet, songID)
	}

	result, err := l.fetcher.ExtractSheet(ctx, song.Link)
	if err != nil {
		return sheet.Sheet{}, fmt.Errorf("failed to fetch sheet for song %s: %w", songID, err)
	}

	if err := l.store.SaveSheet(ctx, songID, result.Sheet); err != nil {
		return sheet.Sheet{}, err
	}
	logger.Success("stored fetched sheet", zap.String("song", songID), zap.String("source", result.Source))
	return result.Sheet, nil
}

func (l *Library) fill(ctx context.Context, songID string, sh sheet.Sheet) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, songID, sh); err != nil {
		logger.Error("sheet cache write failed", zap.String("song", songID), zap.Error(err))
	}
}
