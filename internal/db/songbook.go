package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

var (
	ErrSongNotFound = errors.New("song not found")
	ErrNoSheet      = errors.New("song has no stored sheet")
)

type Song struct {
	ID         string
	Category   string
	Title      string
	Link       string
	Artist     sql.NullString
	ArtistName sql.NullString
	Counter    int
}

// Songbook keeps an in-memory copy of the song list and stores song sheets
// with their titles encoded as markers.
type Songbook struct {
	db    *sql.DB
	songs []Song
	mu    sync.RWMutex
}

func NewSongbook(database *sql.DB) *Songbook {
	return &Songbook{db: database}
}

const schema = `CREATE TABLE IF NOT EXISTS songbook (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	artist      TEXT,
	artist_name TEXT,
	link        TEXT NOT NULL DEFAULT '',
	lyrics      TEXT,
	counter     INTEGER NOT NULL DEFAULT 0
)`

func (s *Songbook) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create songbook table: %w", err)
	}
	return nil
}

// Load replaces the in-memory song list with the table contents.
func (s *Songbook) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, title, artist, artist_name, link, counter FROM songbook ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Category, &song.Title, &song.Artist, &song.ArtistName, &song.Link, &song.Counter); err != nil {
			logger.Error("error scanning row", zap.Error(err))
			continue
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error during rows iteration: %w", err)
	}

	s.mu.Lock()
	s.songs = songs
	s.mu.Unlock()
	return nil
}

// AddSong inserts a song or updates its metadata, then refreshes the list.
func (s *Songbook) AddSong(ctx context.Context, song Song) error {
	query := `INSERT INTO songbook (id, category, title, artist, artist_name, link)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			title = excluded.title,
			artist = excluded.artist,
			artist_name = excluded.artist_name,
			link = excluded.link`
	if _, err := s.db.ExecContext(ctx, query, song.ID, song.Category, song.Title, song.Artist, song.ArtistName, song.Link); err != nil {
		return fmt.Errorf("failed to save song %s: %w", song.ID, err)
	}
	return s.Load(ctx)
}

// Len returns the number of loaded songs.
func (s *Songbook) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songs)
}

func (s *Songbook) FindSongByID(id string) (Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, song := range s.songs {
		if song.ID == id {
			return song, true
		}
	}
	return Song{}, false
}

// SearchSongs matches query case-insensitively against titles and artists.
func (s *Songbook) SearchSongs(query string) []Song {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Song
	for _, song := range s.songs {
		haystack := strings.ToLower(strings.Join([]string{song.Title, song.Artist.String, song.ArtistName.String}, " "))
		if strings.Contains(haystack, query) {
			results = append(results, song)
		}
	}
	return results
}

func (s *Songbook) FormatSongName(song Song) string {
	var parts []string
	if song.ArtistName.Valid {
		parts = append(parts, song.ArtistName.String+" ")
	}
	if song.Artist.Valid {
		parts = append(parts, song.Artist.String+" - ")
	}
	parts = append(parts, song.Title)

	return strings.TrimSpace(strings.Join(parts, ""))
}

func (s *Songbook) IncrementSongCounter(ctx context.Context, songID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `UPDATE songbook SET counter = counter + 1 WHERE id = ?`
	if err := s.execOne(ctx, songID, query, songID); err != nil {
		return fmt.Errorf("failed to increment song counter: %w", err)
	}
	return nil
}

// SaveSheet stores the sheet as flat text with encoded titles.
func (s *Songbook) SaveSheet(ctx context.Context, songID string, sh sheet.Sheet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `UPDATE songbook SET lyrics = ? WHERE id = ?`
	if err := s.execOne(ctx, songID, query, sheet.Encode(sh), songID); err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	return nil
}

// Sheet loads and decodes the stored sheet of a song.
func (s *Songbook) Sheet(ctx context.Context, songID string) (sheet.Sheet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var lyrics sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT lyrics FROM songbook WHERE id = ?`, songID).Scan(&lyrics)
	if errors.Is(err, sql.ErrNoRows) {
		return sheet.Sheet{}, fmt.Errorf("%w: %s", ErrSongNotFound, songID)
	}
	if err != nil {
		return sheet.Sheet{}, fmt.Errorf("failed to load sheet: %w", err)
	}
	if !lyrics.Valid {
		return sheet.Sheet{}, fmt.Errorf("%w: %s", ErrNoSheet, songID)
	}

	return sheet.Decode(lyrics.String), nil
}

func (s *Songbook) execOne(ctx context.Context, songID, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrSongNotFound, songID)
	}
	return nil
}
