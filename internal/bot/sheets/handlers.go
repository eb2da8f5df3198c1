// Package sheets holds the bot handlers that classify and serve song sheets.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/bot"
	"github.com/sukalov/lyricsheet/internal/db"
	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

const (
	// maxMessageLength stays under Telegram's 4096 character limit.
	maxMessageLength = 4000
	maxSearchResults = 10
)

type SheetSource interface {
	Sheet(ctx context.Context, songID string) (sheet.Sheet, error)
}

// Catalog finds songs and counts served sheets. *db.Songbook implements it.
type Catalog interface {
	SearchSongs(query string) []db.Song
	FormatSongName(song db.Song) string
	IncrementSongCounter(ctx context.Context, songID string) error
}

type SheetHandlers struct {
	library SheetSource
	catalog Catalog
	timeout time.Duration

	mu       sync.Mutex
	awaiting map[int64]string
}

func NewSheetHandlers(library SheetSource, catalog Catalog) *SheetHandlers {
	return &SheetHandlers{
		library:  library,
		catalog:  catalog,
		timeout:  30 * time.Second,
		awaiting: make(map[int64]string),
	}
}

// Handlers returns the routing table for the sheet bot.
func (h *SheetHandlers) Handlers() bot.Handlers {
	return bot.Handlers{
		Commands: map[string]bot.Handler{
			"start":    h.startHandler,
			"classify": h.classifyHandler,
			"sections": h.sectionsHandler,
			"lyrics":   h.lyricsHandler,
			"search":   h.searchHandler,
		},
		Messages:  []bot.Handler{h.messageHandler},
		Callbacks: map[string]bot.Handler{},
	}
}

func (h *SheetHandlers) startHandler(s bot.Sender, update tgbotapi.Update) error {
	return s.SendMessageWithMarkdown(update.Message.Chat.ID,
		"send me a song sheet and I will mark its titles, chords and lyrics.\n\n"+
			"`/classify <sheet>` type of every line\n"+
			"`/sections <sheet>` section names\n"+
			"`/search <title or artist>` find a song id\n"+
			"`/lyrics <song id>` stored sheet of a song", true)
}

func (h *SheetHandlers) classifyHandler(s bot.Sender, update tgbotapi.Update) error {
	return h.withText(s, update, "classify", FormatClassified)
}

func (h *SheetHandlers) sectionsHandler(s bot.Sender, update tgbotapi.Update) error {
	return h.withText(s, update, "sections", FormatSections)
}

// withText runs render on the command arguments, or waits for the next
// message when the command came alone.
func (h *SheetHandlers) withText(s bot.Sender, update tgbotapi.Update, command string, render func(sheet.Sheet) string) error {
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.CommandArguments())
	if text == "" {
		h.mu.Lock()
		h.awaiting[chatID] = command
		h.mu.Unlock()
		return s.SendMessage(chatID, "ok, send the sheet")
	}
	return sendLong(s, chatID, render(sheet.Parse(text)))
}

func (h *SheetHandlers) lyricsHandler(s bot.Sender, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	songID := strings.TrimSpace(update.Message.CommandArguments())
	if songID == "" {
		return s.SendMessage(chatID, "usage: /lyrics <song id>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	sh, err := h.library.Sheet(ctx, songID)
	switch {
	case errors.Is(err, db.ErrSongNotFound):
		return s.SendMessage(chatID, "no song with that id")
	case errors.Is(err, db.ErrNoSheet):
		return s.SendMessage(chatID, "that song has no sheet yet")
	case err != nil:
		if sendErr := s.SendMessage(chatID, "could not load the sheet"); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to load sheet %s: %w", songID, err)
	}

	if err := sendLong(s, chatID, sh.Text()); err != nil {
		return err
	}
	if err := h.catalog.IncrementSongCounter(ctx, songID); err != nil {
		logger.Error("failed to count sheet view", zap.String("song", songID), zap.Error(err))
	}
	return nil
}

// searchHandler lists matching songs with the ids /lyrics expects.
func (h *SheetHandlers) searchHandler(s bot.Sender, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	query := strings.TrimSpace(update.Message.CommandArguments())
	if query == "" {
		return s.SendMessage(chatID, "usage: /search <title or artist>")
	}

	songs := h.catalog.SearchSongs(query)
	if len(songs) == 0 {
		return s.SendMessage(chatID, "nothing found")
	}

	var b strings.Builder
	for i, song := range songs {
		if i == maxSearchResults {
			fmt.Fprintf(&b, "\n...and %d more", len(songs)-i)
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", song.ID, h.catalog.FormatSongName(song))
	}
	b.WriteString("\n\nsend /lyrics <id> to read one")
	return sendLong(s, chatID, b.String())
}

// messageHandler classifies pasted sheets: any message after a bare
// command, or any message with more than one line.
func (h *SheetHandlers) messageHandler(s bot.Sender, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.Text == "" {
		return nil
	}
	chatID := update.Message.Chat.ID
	if update.Message.IsCommand() {
		return s.SendMessage(chatID, "unknown command, try /start")
	}

	h.mu.Lock()
	command, waiting := h.awaiting[chatID]
	delete(h.awaiting, chatID)
	h.mu.Unlock()

	sh := sheet.Parse(update.Message.Text)
	switch {
	case waiting && command == "sections":
		return sendLong(s, chatID, FormatSections(sh))
	case waiting || len(sh.Lines) > 1:
		return sendLong(s, chatID, FormatClassified(sh))
	default:
		return s.SendMessage(chatID, fmt.Sprintf("%s: %s", sh.Lines[0].Type, sh.Lines[0].Text))
	}
}

// FormatClassified renders every line prefixed with its type.
func FormatClassified(sh sheet.Sheet) string {
	var b strings.Builder
	for i, l := range sh.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] %s", l.Type, l.Text)
	}
	return b.String()
}

// FormatSections lists section names with their line counts.
func FormatSections(sh sheet.Sheet) string {
	sections := sh.Sections()
	if len(sections) == 0 {
		return "no sections"
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := sec.Name
		if name == "" {
			name = "(untitled)"
		}
		fmt.Fprintf(&b, "%d. %s (%d lines)", i+1, name, len(sec.Lines))
	}
	return b.String()
}

// sendLong sends text in chunks, skipping blank ones Telegram would reject.
func sendLong(s bot.Sender, chatID int64, text string) error {
	sent := false
	for _, chunk := range splitMessage(text, maxMessageLength) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if err := s.SendMessage(chatID, chunk); err != nil {
			return err
		}
		sent = true
	}
	if !sent {
		return s.SendMessage(chatID, "(empty)")
	}
	return nil
}

// splitMessage cuts text at line boundaries into chunks of at most limit
// bytes. A single longer line is cut as is. Joining the chunks with "\n"
// gives back text unless a line had to be cut.
func splitMessage(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	started := false
	flush := func() {
		chunks = append(chunks, current.String())
		current.Reset()
		started = false
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			if started {
				flush()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if started && current.Len()+1+len(line) > limit {
			flush()
		}
		if started {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		started = true
	}
	flush()
	return chunks
}
