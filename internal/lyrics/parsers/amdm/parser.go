package amdm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

const chordsBlockSelector = `pre[itemprop="chordsBlock"]`

// ErrChordsBlockNotFound is returned when a page has no chords block.
var ErrChordsBlockNotFound = errors.New("chords block not found")

// Parser handles the HTML parsing and song sheet extraction
type Parser struct {
	client *Client
	config ProcessingConfig
}

// NewParser creates a new AmDm parser
func NewParser() *Parser {
	return NewParserWithClient(NewClient(), DefaultConfig())
}

func NewParserWithClient(client *Client, config ProcessingConfig) *Parser {
	return &Parser{
		client: client,
		config: config,
	}
}

// ExtractSheet fetches an AmDm.ru page and returns its chords block as a
// classified song sheet.
func (p *Parser) ExtractSheet(ctx context.Context, url string) (*SheetResult, error) {
	logger.Debug("fetching amdm page", zap.String("url", url))

	html, err := p.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	text, err := p.ProcessHTML(html)
	if err != nil {
		logger.Error("failed to extract chords block", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	s := sheet.Parse(text)
	logger.Success("extracted song sheet",
		zap.String("url", url),
		zap.Int("lines", len(s.Lines)),
		zap.Int("sections", len(s.Sections())),
	)

	return &SheetResult{
		URL:       url,
		Sheet:     s,
		FetchedAt: time.Now(),
	}, nil
}

// ProcessHTML turns a full AmDm page into song-sheet text.
func (p *Parser) ProcessHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(chordsBlockSelector).First()
	if selection.Length() == 0 {
		return "", ErrChordsBlockNotFound
	}

	return p.processChordsBlock(selection), nil
}
