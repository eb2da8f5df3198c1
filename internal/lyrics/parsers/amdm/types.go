package amdm

import (
	"time"

	"github.com/sukalov/lyricsheet/internal/lyrics/sheet"
)

// SheetResult is a song sheet extracted from an AmDm page.
type SheetResult struct {
	URL       string      `json:"url"`
	Sheet     sheet.Sheet `json:"sheet"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// SectionType is a section keyword as written on amdm.ru.
type SectionType string

const (
	SectionVerse     SectionType = "Куплет"
	SectionChorus    SectionType = "Припев"
	SectionPreChorus SectionType = "Предприпев"
	SectionBridge    SectionType = "Переход"
	SectionIntro     SectionType = "Вступление"
	SectionSolo      SectionType = "Проигрыш"
	SectionCoda      SectionType = "Кода"
	SectionOutro     SectionType = "Концовка"
)

// sectionLabels maps amdm.ru keywords to the labels the line classifier
// recognises as titles.
var sectionLabels = map[SectionType]string{
	SectionVerse:     "Verse",
	SectionChorus:    "Chorus",
	SectionPreChorus: "Pre-chorus",
	SectionBridge:    "Bridge",
	SectionIntro:     "Intro",
	SectionSolo:      "Instrumental//title",
	SectionCoda:      "Coda",
	SectionOutro:     "Outro",
}

// ProcessingConfig holds configuration for text processing
type ProcessingConfig struct {
	MaxBlankLines int
	KeepChords    bool
}

// DefaultConfig keeps chords and allows one blank line between blocks.
func DefaultConfig() ProcessingConfig {
	return ProcessingConfig{
		MaxBlankLines: 1,
		KeepChords:    true,
	}
}
