package lyrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/lyricsheet/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

type stubParser struct {
	calls []string
	err   error
}

func (p *stubParser) ExtractSheet(ctx context.Context, url string) (*amdm.SheetResult, error) {
	p.calls = append(p.calls, url)
	if p.err != nil {
		return nil, p.err
	}
	return &amdm.SheetResult{
		URL:       url,
		Sheet:     sheet.Parse("Verse 1\nC G\nla la"),
		FetchedAt: time.Unix(0, 0),
	}, nil
}

func TestExtractSheetDispatch(t *testing.T) {
	tests := []struct {
		url       string
		supported bool
	}{
		{url: "https://amdm.ru/akkordi/mihail_krug/102195/vladimirskiy_tsentral/", supported: true},
		{url: "https://123.amdm.ru/akkordi/x/1/y/", supported: true},
		{url: "https://notamdm.ru/song", supported: false},
		{url: "https://example.com/amdm.ru", supported: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			parser := &stubParser{}
			svc := NewServiceWithParser(parser)

			result, err := svc.ExtractSheet(context.Background(), tt.url)
			if !tt.supported {
				assert.ErrorIs(t, err, ErrUnsupportedSource)
				assert.Empty(t, parser.calls)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "amdm.ru", result.Source)
			assert.Equal(t, tt.url, result.URL)
			assert.Len(t, result.Sheet.Sections(), 1)
		})
	}
}

func TestExtractSheetParserError(t *testing.T) {
	cause := errors.New("down")
	svc := NewServiceWithParser(&stubParser{err: cause})

	_, err := svc.ExtractSheet(context.Background(), "https://amdm.ru/x")
	assert.ErrorIs(t, err, cause)
}
