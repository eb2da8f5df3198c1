package linetype

import (
	"regexp"
	"strings"
)

const (
	titleSuffix  = "//title"
	chordsSuffix = "//chords"
	lyricsSuffix = "//lyrics"
	nonBreakLine = "<>"
)

// titlePrefixes are matched against the lowercased, trimmed line with
// parentheses removed.
var titlePrefixes = []string{
	"verse",
	"chorus",
	"tag",
	"pre-chorus",
	"pre chorus",
	"coda",
	"bridge",
	"intro",
	"outro",
}

// chord is one chord shape: root, accidental, degree, up to three quality
// modifiers with optional digits, and a trailing accidental with digits.
const chord = `[a-gA-G](#|b)?[0-9]*((sus|dim|maj|dom|min|m|aug|add)?[0-9]*){3}(#|b)?[0-9]*`

var (
	chordToken      = regexp.MustCompile(`^(` + chord + `)(/(` + chord + `))?$`)
	timesCount      = regexp.MustCompile(`[xX][0-9]+`)
	countTimes      = regexp.MustCompile(`[0-9]+[xX]`)
	chordSeparators = strings.NewReplacer("-", " ", "(", " ", ")", " ")
	parentheses     = strings.NewReplacer("(", "", ")", "")
)

// Classify returns the type of line. Rules are tried in priority order:
// title, chords, non-break, and Normal when none match.
func Classify(line string) Type {
	switch {
	case isTitle(line):
		return Title
	case isChords(line):
		return Chords
	case isNonBreak(line):
		return NonBreak
	default:
		return Normal
	}
}

func isTitle(line string) bool {
	normalized := parentheses.Replace(trimControl(strings.ToLower(line)))
	if strings.HasSuffix(normalized, titleSuffix) {
		return true
	}
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

// isChords reports whether every whitespace separated token of line is a
// chord. A line holding only whitespace counts as chords.
func isChords(line string) bool {
	if line == "" {
		return false
	}
	lower := strings.ToLower(line)
	if strings.HasSuffix(lower, chordsSuffix) {
		return true
	}
	if strings.HasSuffix(lower, lyricsSuffix) {
		return false
	}

	check := chordSeparators.Replace(line)
	// repeat counts such as x4 or 4x
	check = timesCount.ReplaceAllString(check, "")
	check = countTimes.ReplaceAllString(check, "")

	for _, token := range strings.FieldsFunc(check, isSpace) {
		if trimControl(token) == "" {
			continue
		}
		if !chordToken.MatchString(token) {
			return false
		}
	}
	return true
}

func isNonBreak(line string) bool {
	return trimControl(line) == nonBreakLine
}

// trimControl strips leading and trailing spaces and ASCII control characters.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
