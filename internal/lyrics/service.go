package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sukalov/lyricsheet/internal/logger"
	"github.com/sukalov/lyricsheet/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

// ErrUnsupportedSource is returned for URLs no parser handles.
var ErrUnsupportedSource = errors.New("unsupported URL source")

// Result is a song sheet fetched from a lyrics site.
type Result struct {
	URL       string      `json:"url"`
	Source    string      `json:"source"`
	Sheet     sheet.Sheet `json:"sheet"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// SheetExtractor fetches a song sheet from one site.
type SheetExtractor interface {
	ExtractSheet(ctx context.Context, url string) (*amdm.SheetResult, error)
}

// Service handles song sheet extraction for different sources
type Service struct {
	amdmParser SheetExtractor
}

// NewService creates a new lyrics service
func NewService() *Service {
	return NewServiceWithParser(amdm.NewParser())
}

func NewServiceWithParser(amdmParser SheetExtractor) *Service {
	return &Service{
		amdmParser: amdmParser,
	}
}

// ExtractSheet extracts a song sheet from a URL based on the source
func (s *Service) ExtractSheet(ctx context.Context, rawURL string) (*Result, error) {
	logger.Debug("ExtractSheet called", zap.String("url", rawURL))

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "amdm.ru" || strings.HasSuffix(host, ".amdm.ru") {
		return s.extractFromAmdm(ctx, rawURL)
	}

	logger.Error("unsupported URL source", zap.String("url", rawURL))
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, rawURL)
}

func (s *Service) extractFromAmdm(ctx context.Context, url string) (*Result, error) {
	result, err := s.amdmParser.ExtractSheet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("amdm: %w", err)
	}

	return &Result{
		URL:       result.URL,
		Source:    "amdm.ru",
		Sheet:     result.Sheet,
		FetchedAt: result.FetchedAt,
	}, nil
}
