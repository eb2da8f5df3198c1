package songbook

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/lyricsheet/internal/db"
	"github.com/sukalov/lyricsheet/internal/lyrics"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
	"github.com/sukalov/lyricsheet/internal/redis"
)

type memStore struct {
	songs  map[string]db.Song
	sheets map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		songs: map[string]db.Song{
			"1": {ID: "1", Title: "Amazing Grace"},
			"2": {ID: "2", Title: "Владимирский централ", Link: "https://amdm.ru/akkordi/mihail_krug/102195/"},
		},
		sheets: map[string]string{},
	}
}

func (m *memStore) FindSongByID(id string) (db.Song, bool) {
	song, ok := m.songs[id]
	return song, ok
}

func (m *memStore) Sheet(ctx context.Context, songID string) (sheet.Sheet, error) {
	if _, ok := m.songs[songID]; !ok {
		return sheet.Sheet{}, db.ErrSongNotFound
	}
	text, ok := m.sheets[songID]
	if !ok {
		return sheet.Sheet{}, fmt.Errorf("%w: %s", db.ErrNoSheet, songID)
	}
	return sheet.Decode(text), nil
}

func (m *memStore) SaveSheet(ctx context.Context, songID string, sh sheet.Sheet) error {
	if _, ok := m.songs[songID]; !ok {
		return db.ErrSongNotFound
	}
	m.sheets[songID] = sheet.Encode(sh)
	return nil
}

type memCache struct {
	sheets map[string]sheet.Sheet
	err    error
}

func (c *memCache) Get(ctx context.Context, songID string) (sheet.Sheet, error) {
	if c.err != nil {
		return sheet.Sheet{}, c.err
	}
	sh, ok := c.sheets[songID]
	if !ok {
		return sheet.Sheet{}, redis.ErrCacheMiss
	}
	return sh, nil
}

func (c *memCache) Set(ctx context.Context, songID string, sh sheet.Sheet) error {
	if c.err != nil {
		return c.err
	}
	c.sheets[songID] = sh
	return nil
}

type stubFetcher struct {
	calls int
	text  string
}

func (f *stubFetcher) ExtractSheet(ctx context.Context, url string) (*lyrics.Result, error) {
	f.calls++
	return &lyrics.Result{URL: url, Source: "amdm.ru", Sheet: sheet.Parse(f.text)}, nil
}

func TestSheetFromStoreFillsCache(t *testing.T) {
	store := newMemStore()
	cache := &memCache{sheets: map[string]sheet.Sheet{}}
	lib := New(store, cache, nil)
	ctx := context.Background()

	_, err := lib.Import(ctx, "1", "Verse 1\nG C G\nAmazing grace")
	require.NoError(t, err)
	assert.Equal(t, " #####  1\nG C G\nAmazing grace", store.sheets["1"])

	delete(cache.sheets, "1")
	sh, err := lib.Sheet(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Verse 1\nG C G\nAmazing grace", sh.Text())
	assert.Contains(t, cache.sheets, "1")
}

func TestSheetPrefersCache(t *testing.T) {
	cached := sheet.Parse("Chorus\ncached")
	cache := &memCache{sheets: map[string]sheet.Sheet{"1": cached}}
	lib := New(newMemStore(), cache, nil)

	sh, err := lib.Sheet(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, cached, sh)
}

func TestSheetCacheFailureFallsBack(t *testing.T) {
	store := newMemStore()
	store.sheets["1"] = " ###### \nla la"
	lib := New(store, &memCache{err: errors.New("redis down")}, nil)

	sh, err := lib.Sheet(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Chorus\nla la", sh.Text())
}

func TestSheetFetchedFromLink(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{text: "Verse 1\nAm E\nВладимирский централ"}
	lib := New(store, nil, fetcher)
	ctx := context.Background()

	sh, err := lib.Sheet(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Verse 1", sh.Sections()[0].Name)
	assert.Equal(t, " #####  1\nAm E\nВладимирский централ", store.sheets["2"])

	_, err = lib.Sheet(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestSheetWithoutLink(t *testing.T) {
	lib := New(newMemStore(), nil, &stubFetcher{})

	_, err := lib.Sheet(context.Background(), "1")
	assert.ErrorIs(t, err, db.ErrNoSheet)
}

func TestSheetUnknownSong(t *testing.T) {
	lib := New(newMemStore(), nil, &stubFetcher{})

	_, err := lib.Sheet(context.Background(), "42")
	assert.ErrorIs(t, err, db.ErrSongNotFound)
}

func TestImportUnknownSong(t *testing.T) {
	cache := &memCache{sheets: map[string]sheet.Sheet{}}
	lib := New(newMemStore(), cache, nil)

	_, err := lib.Import(context.Background(), "42", "Verse 1\nla la")
	require.ErrorIs(t, err, db.ErrSongNotFound)
	assert.Contains(t, err.Error(), "importing 2 lines for song 42")
	assert.Empty(t, cache.sheets)
}
