package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/db"
	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics"
	"github.com/sukalov/lyricsheet/internal/songbook"
)

func newFetchCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a song sheet from a supported site",
		Long: `Download a song sheet and print it, or write it to a file.

Examples:
  lyricsheet fetch https://123.amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/
  lyricsheet fetch -o sheet.txt https://amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := lyrics.NewService().ExtractSheet(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Sheet.Text())
				return err
			}
			if err := os.WriteFile(output, []byte(result.Sheet.Text()), 0644); err != nil {
				return fmt.Errorf("failed to save sheet: %w", err)
			}
			logger.Success("sheet saved", zap.String("url", args[0]), zap.String("output", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the sheet to this file")
	return cmd
}

// openDatabase is replaced in tests.
var openDatabase = db.OpenFromEnv

func newAddCmd() *cobra.Command {
	var song db.Song
	var artist, artistName string
	cmd := &cobra.Command{
		Use:   "add <song-id>",
		Short: "Create or update a song in the songbook database",
		Long: `Create a song row, or update its metadata when the id exists. A song
must exist before its sheet can be imported or fetched.

Examples:
  lyricsheet add 42 --title "Amazing Grace" --artist "John Newton"
  lyricsheet add 7 --title "Владимирский централ" --artist "Круг" --artist-name "Михаил" \
    --link https://amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song.ID = args[0]
			song.Artist = sql.NullString{String: artist, Valid: artist != ""}
			song.ArtistName = sql.NullString{String: artistName, Valid: artistName != ""}

			return withLibrary(cmd.Context(), func(book *db.Songbook, _ *songbook.Library) error {
				if err := book.AddSong(cmd.Context(), song); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s\n", song.ID, book.FormatSongName(song))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&song.Title, "title", "", "song title")
	cmd.Flags().StringVar(&song.Category, "category", "", "songbook category")
	cmd.Flags().StringVar(&song.Link, "link", "", "page the sheet can be fetched from")
	cmd.Flags().StringVar(&artist, "artist", "", "artist or band")
	cmd.Flags().StringVar(&artistName, "artist-name", "", "artist's first name")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <song-id> [file]",
		Short: "Store a song sheet in the songbook database",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			return withLibrary(cmd.Context(), func(_ *db.Songbook, lib *songbook.Library) error {
				sh, err := lib.Import(cmd.Context(), args[0], text)
				if errors.Is(err, db.ErrSongNotFound) {
					return fmt.Errorf("%w (create it with lyricsheet add %s --title ...)", err, args[0])
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %d lines in %d sections\n", len(sh.Lines), len(sh.Sections()))
				return err
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <song-id>",
		Short: "Print the stored sheet of a song, fetching it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLibrary(cmd.Context(), func(_ *db.Songbook, lib *songbook.Library) error {
				sh, err := lib.Sheet(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sh.Text())
				return err
			})
		},
	}
}

// withLibrary opens the songbook database for the duration of fn. The CLI
// does not use the redis cache.
func withLibrary(ctx context.Context, fn func(book *db.Songbook, lib *songbook.Library) error) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close(database)

	book := db.NewSongbook(database)
	if err := book.Migrate(ctx); err != nil {
		return err
	}
	if err := book.Load(ctx); err != nil {
		return err
	}

	return fn(book, songbook.New(book, nil, lyrics.NewService()))
}
