package linetype

import (
	"cmp"
	"slices"
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Label pairs a section keyword with the marker that replaces it in encoded
// title lines.
type Label struct {
	Name   string
	Marker string
}

// fallbackLabel is substituted for a marker with no entry in the table.
const fallbackLabel = "verse"

// labels is ordered; marker lengths grow with position.
var labels = []Label{
	{Name: "Verse", Marker: marker(5)},
	{Name: "Chorus", Marker: marker(6)},
	{Name: "Tag", Marker: marker(7)},
	{Name: "Pre-chorus", Marker: marker(8)},
	{Name: "Pre chorus", Marker: marker(9)},
	{Name: "Coda", Marker: marker(10)},
	{Name: "Bridge", Marker: marker(11)},
	{Name: "Intro", Marker: marker(12)},
	{Name: "Outro", Marker: marker(13)},
}

var (
	markerLabels = make(map[string]string, len(labels))
	encoder      *replacer
	decoder      *replacer
)

func init() {
	names := make([]string, len(labels))
	markers := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
		markers[i] = l.Marker
		markerLabels[l.Marker] = l.Name
	}

	decoded := make([]string, len(markers))
	for i, m := range markers {
		decoded[i] = labelForMarker(m)
	}

	encoder = newReplacer(names, markers)
	decoder = newReplacer(markers, decoded)
}

func marker(hashes int) string {
	return " " + strings.Repeat("#", hashes) + " "
}

// Labels returns the label table in its fixed order.
func Labels() []Label {
	return slices.Clone(labels)
}

func labelForMarker(m string) string {
	if name, ok := markerLabels[m]; ok {
		return name
	}
	return fallbackLabel
}

// EncodeTitles replaces every section keyword in title lines with its marker.
// Other lines are returned unchanged.
func EncodeTitles(lines []string) []string {
	encoded := make([]string, len(lines))
	for i, line := range lines {
		if Classify(line) == Title {
			line = encoder.replace(line)
		}
		encoded[i] = line
	}
	return encoded
}

// DecodeTitles replaces every marker in every line with its canonical label.
// Lines are not classified first.
func DecodeTitles(lines []string) []string {
	decoded := make([]string, len(lines))
	for i, line := range lines {
		decoded[i] = decoder.replace(line)
	}
	return decoded
}

// replacer substitutes a fixed set of patterns, matched case-insensitively,
// in a single left-to-right pass. Where matches overlap, the leftmost wins,
// then the longest.
type replacer struct {
	trie         *ahocorasick.Trie
	replacements []string
}

func newReplacer(patterns, replacements []string) *replacer {
	folded := make([]string, len(patterns))
	for i, p := range patterns {
		folded[i] = foldASCII(p)
	}
	return &replacer{
		trie:         ahocorasick.NewTrieBuilder().AddStrings(folded).Build(),
		replacements: replacements,
	}
}

func (r *replacer) replace(s string) string {
	matches := r.trie.MatchString(foldASCII(s))
	if len(matches) == 0 {
		return s
	}

	slices.SortFunc(matches, func(a, b *ahocorasick.Match) int {
		if c := cmp.Compare(a.Pos(), b.Pos()); c != 0 {
			return c
		}
		return cmp.Compare(len(b.Match()), len(a.Match()))
	})

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start := int(m.Pos())
		if start < last {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(r.replacements[m.Pattern()])
		last = start + len(m.Match())
	}
	b.WriteString(s[last:])
	return b.String()
}

// foldASCII lowercases ASCII letters only, so byte offsets in the folded
// string line up with the input.
func foldASCII(s string) string {
	folded := []byte(s)
	for i, c := range folded {
		if 'A' <= c && c <= 'Z' {
			folded[i] = c + ('a' - 'A')
		}
	}
	return string(folded)
}
