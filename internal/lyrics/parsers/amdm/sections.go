package amdm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sukalov/lyricsheet/internal/lyrics/linetype"
)

var (
	// [Куплет 2]: Am C
	sectionMarkerRegex = regexp.MustCompile(`^\[\s*([^\]:]*?)\s*:?\s*\]\s*:?\s*(.*)$`)
	sectionNumberRegex = regexp.MustCompile(`^(.*?)\s*(\d+)$`)
	barRegex           = regexp.MustCompile(`^[\s|]*$`)
)

// ProcessText converts chords-block text to song-sheet lines: section
// markers become English title lines, bar separators are dropped and runs
// of blank lines are collapsed.
func (p *Parser) ProcessText(text string) string {
	var lines []string

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimRight(raw, " \t")

		if strings.TrimSpace(line) == "" {
			lines = append(lines, "")
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			lines = append(lines, p.handleSectionMarker(strings.TrimSpace(line))...)
			continue
		}

		if barRegex.MatchString(line) {
			continue
		}
		if strings.Contains(line, "|") {
			line = strings.TrimRight(strings.ReplaceAll(line, "|", " "), " ")
		}

		if !p.config.KeepChords && linetype.Classify(line) == linetype.Chords {
			continue
		}
		lines = append(lines, line)
	}

	return p.finalCleanup(lines)
}

// handleSectionMarker rewrites a bracketed section marker as a title line,
// followed by whatever was written after the marker on the same line.
func (p *Parser) handleSectionMarker(line string) []string {
	match := sectionMarkerRegex.FindStringSubmatch(line)
	if match == nil {
		return []string{line}
	}

	name, number := match[1], ""
	if m := sectionNumberRegex.FindStringSubmatch(name); m != nil {
		name, number = m[1], m[2]
	}
	if !isSectionName(name) {
		return []string{line}
	}

	title := sectionTitle(name)
	if number != "" {
		if base, ok := strings.CutSuffix(title, "//title"); ok {
			title = base + " " + number + "//title"
		} else {
			title += " " + number
		}
	}

	result := []string{"", title}
	if rest := strings.TrimSpace(match[2]); rest != "" {
		if p.config.KeepChords || linetype.Classify(rest) != linetype.Chords {
			result = append(result, rest)
		}
	}
	return result
}

// isSectionName accepts known section names and words of two or more
// letters, so repeat marks like [x2] stay as written.
func isSectionName(name string) bool {
	if _, ok := knownSection(name); ok {
		return true
	}
	letters := 0
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return letters > 1
}

func knownSection(name string) (string, bool) {
	for section, label := range sectionLabels {
		if strings.EqualFold(string(section), name) {
			return label, true
		}
	}
	return "", false
}

func sectionTitle(name string) string {
	if label, ok := knownSection(name); ok {
		return label
	}
	if linetype.Classify(name) == linetype.Title {
		return name
	}
	return name + "//title"
}
