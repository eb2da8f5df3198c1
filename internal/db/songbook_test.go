package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

func newTestSongbook(t *testing.T) *Songbook {
	t.Helper()

	database, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { Close(database) })

	s := NewSongbook(database)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func addSongs(t *testing.T, s *Songbook) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.AddSong(ctx, Song{
		ID:       "1",
		Category: "hymns",
		Title:    "Amazing Grace",
		Artist:   sql.NullString{String: "John Newton", Valid: true},
	}))
	require.NoError(t, s.AddSong(ctx, Song{
		ID:         "2",
		Category:   "шансон",
		Title:      "Владимирский централ",
		Artist:     sql.NullString{String: "Круг", Valid: true},
		ArtistName: sql.NullString{String: "Михаил", Valid: true},
		Link:       "https://amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/",
	}))
}

func TestFindAndSearch(t *testing.T) {
	s := newTestSongbook(t)
	addSongs(t, s)

	assert.Equal(t, 2, s.Len())

	song, ok := s.FindSongByID("2")
	require.True(t, ok)
	assert.Equal(t, "Михаил Круг - Владимирский централ", s.FormatSongName(song))

	_, ok = s.FindSongByID("3")
	assert.False(t, ok)

	results := s.SearchSongs("  grace ")
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "John Newton - Amazing Grace", s.FormatSongName(results[0]))

	assert.Len(t, s.SearchSongs("КРУГ"), 1)
	assert.Empty(t, s.SearchSongs(""))
}

func TestAddSongUpdates(t *testing.T) {
	s := newTestSongbook(t)
	addSongs(t, s)

	require.NoError(t, s.AddSong(context.Background(), Song{ID: "1", Title: "Amazing Grace (live)"}))

	song, ok := s.FindSongByID("1")
	require.True(t, ok)
	assert.Equal(t, "Amazing Grace (live)", song.Title)
	assert.False(t, song.Artist.Valid)
}

func TestIncrementSongCounter(t *testing.T) {
	s := newTestSongbook(t)
	addSongs(t, s)
	ctx := context.Background()

	require.NoError(t, s.IncrementSongCounter(ctx, "1"))
	require.NoError(t, s.IncrementSongCounter(ctx, "1"))
	require.NoError(t, s.Load(ctx))

	song, _ := s.FindSongByID("1")
	assert.Equal(t, 2, song.Counter)

	assert.ErrorIs(t, s.IncrementSongCounter(ctx, "missing"), ErrSongNotFound)
}

func TestSheetStorage(t *testing.T) {
	s := newTestSongbook(t)
	addSongs(t, s)
	ctx := context.Background()

	_, err := s.Sheet(ctx, "1")
	assert.ErrorIs(t, err, ErrNoSheet)

	want := sheet.Parse("Verse 1\nG C G\nAmazing grace how sweet the sound\n<>\nChorus\nD G")
	require.NoError(t, s.SaveSheet(ctx, "1", want))

	var stored string
	require.NoError(t, s.db.QueryRow(`SELECT lyrics FROM songbook WHERE id = ?`, "1").Scan(&stored))
	assert.Contains(t, stored, " #####  1")
	assert.Contains(t, stored, " ###### ")

	got, err := s.Sheet(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSheetMissingSong(t *testing.T) {
	s := newTestSongbook(t)
	ctx := context.Background()

	_, err := s.Sheet(ctx, "nope")
	assert.ErrorIs(t, err, ErrSongNotFound)

	err = s.SaveSheet(ctx, "nope", sheet.Parse("Verse"))
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestSaveSheetOnFreshSongbook(t *testing.T) {
	s := newTestSongbook(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	assert.Zero(t, s.Len())

	err := s.SaveSheet(ctx, "42", sheet.Parse("Verse 1\nla la"))
	require.ErrorIs(t, err, ErrSongNotFound)

	require.NoError(t, s.AddSong(ctx, Song{ID: "42", Title: "New Song"}))
	require.NoError(t, s.SaveSheet(ctx, "42", sheet.Parse("Verse 1\nla la")))

	sh, err := s.Sheet(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Verse 1\nla la", sh.Text())
}
