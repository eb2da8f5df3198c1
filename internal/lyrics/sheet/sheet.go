// Package sheet models a song sheet as an ordered list of classified lines.
package sheet

import (
	"strings"

	"github.com/sukalov/lyricsheet/internal/lyrics/linetype"
)

// Line is one line of a sheet with its structural type.
type Line struct {
	Text string        `json:"text"`
	Type linetype.Type `json:"type"`
}

// Sheet is an ordered sequence of classified lines.
type Sheet struct {
	Lines []Line `json:"lines"`
}

// Section is a run of lines opened by a title line. Lines before the first
// title form a section with an empty name.
type Section struct {
	Name  string `json:"name"`
	Lines []Line `json:"lines"`
}

const titleSuffix = "//title"

// Parse splits text into lines and classifies each of them.
func Parse(text string) Sheet {
	return FromLines(SplitLines(text))
}

// FromLines classifies already split lines.
func FromLines(lines []string) Sheet {
	s := Sheet{Lines: make([]Line, len(lines))}
	for i, text := range lines {
		s.Lines[i] = Line{Text: text, Type: linetype.Classify(text)}
	}
	return s
}

// Strings returns the raw text of every line.
func (s Sheet) Strings() []string {
	lines := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = l.Text
	}
	return lines
}

func (s Sheet) Text() string {
	return strings.Join(s.Strings(), "\n")
}

// Count returns how many lines have the given type.
func (s Sheet) Count(t linetype.Type) int {
	n := 0
	for _, l := range s.Lines {
		if l.Type == t {
			n++
		}
	}
	return n
}

// Lyrics returns the plain lyric lines, dropping titles, chords and
// non-break markers.
func (s Sheet) Lyrics() []string {
	var lyrics []string
	for _, l := range s.Lines {
		if l.Type == linetype.Normal {
			lyrics = append(lyrics, l.Text)
		}
	}
	return lyrics
}

// Sections groups lines under the title that precedes them.
func (s Sheet) Sections() []Section {
	var sections []Section
	for _, l := range s.Lines {
		if l.Type == linetype.Title {
			sections = append(sections, Section{Name: TitleName(l.Text)})
			continue
		}
		if len(sections) == 0 {
			sections = append(sections, Section{})
		}
		last := &sections[len(sections)-1]
		last.Lines = append(last.Lines, l)
	}
	return sections
}

// TitleName strips the explicit title tag and surrounding space from a
// title line.
func TitleName(line string) string {
	name := strings.TrimSpace(line)
	cut := len(name) - len(titleSuffix)
	if cut >= 0 && strings.EqualFold(name[cut:], titleSuffix) {
		name = strings.TrimSpace(name[:cut])
	}
	return name
}

// Encode flattens the sheet to text with section titles replaced by markers.
func Encode(s Sheet) string {
	return strings.Join(linetype.EncodeTitles(s.Strings()), "\n")
}

// Decode restores a sheet written by Encode.
func Decode(text string) Sheet {
	return FromLines(linetype.DecodeTitles(SplitLines(text)))
}

// SplitLines splits text on "\n" after turning "\r\n" line endings into "\n".
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
