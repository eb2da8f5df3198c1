package linetype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsTable(t *testing.T) {
	table := Labels()
	require.Len(t, table, 9)

	for i, l := range table {
		assert.Equal(t, " "+strings.Repeat("#", i+5)+" ", l.Marker, l.Name)
	}

	// No marker may occur inside another, or decoding would be ambiguous.
	for _, a := range table {
		for _, b := range table {
			if a.Name == b.Name {
				continue
			}
			assert.NotContains(t, b.Marker, a.Marker, "%s marker inside %s marker", a.Name, b.Name)
		}
	}
}

func TestLabelsReturnsCopy(t *testing.T) {
	table := Labels()
	table[0].Marker = "changed"
	assert.Equal(t, " ##### ", Labels()[0].Marker)
}

func TestEncodeTitles(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "mixed sheet",
			in:   []string{"Verse 1", "Amazing grace", "C G", "Chorus"},
			want: []string{" #####  1", "Amazing grace", "C G", " ###### "},
		},
		{
			name: "case insensitive",
			in:   []string{"VERSE 2"},
			want: []string{" #####  2"},
		},
		{
			name: "longest label wins",
			in:   []string{"Pre-chorus", "pre chorus 2"},
			want: []string{" ######## ", " #########  2"},
		},
		{
			name: "every label on the line",
			in:   []string{"Verse 1 / Chorus"},
			want: []string{" #####  1 /  ###### "},
		},
		{
			name: "non-title line keeps keywords",
			in:   []string{"I sing the chorus loud"},
			want: []string{"I sing the chorus loud"},
		},
		{
			name: "unrecognized title",
			in:   []string{"Amazing Grace"},
			want: []string{"Amazing Grace"},
		},
		{
			name: "explicit title without keyword",
			in:   []string{"Ending//title"},
			want: []string{"Ending//title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeTitles(tt.in))
		})
	}
}

func TestEncodeTitlesDoesNotModifyInput(t *testing.T) {
	in := []string{"Verse 1"}
	_ = EncodeTitles(in)
	assert.Equal(t, []string{"Verse 1"}, in)
}

func TestDecodeTitles(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "each marker maps to its own label",
			in:   []string{" ##### ", " ###### ", " ######## ", " ############# "},
			want: []string{"Verse", "Chorus", "Pre-chorus", "Outro"},
		},
		{
			name: "markers inside any line",
			in:   []string{"plain ##### here"},
			want: []string{"plainVersehere"},
		},
		{
			name: "hash runs without delimiting spaces stay",
			in:   []string{"#####", "a ####"},
			want: []string{"#####", "a ####"},
		},
		{
			name: "no markers",
			in:   []string{"Hello world", ""},
			want: []string{"Hello world", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeTitles(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	assert.Equal(t, []string{"Verse 1"}, DecodeTitles(EncodeTitles([]string{"Verse 1"})))

	for _, l := range Labels() {
		lines := []string{l.Name + " 2", "some lyric", l.Name}
		assert.Equal(t, lines, DecodeTitles(EncodeTitles(lines)), l.Name)
	}
}

func TestRoundTripCanonicalizesCase(t *testing.T) {
	assert.Equal(t, []string{"Chorus 3"}, DecodeTitles(EncodeTitles([]string{"CHORUS 3"})))
}

func TestDecodeTitlesIdempotent(t *testing.T) {
	lines := EncodeTitles([]string{"Verse 1", "Bridge", "la la", "(Intro)", "<>"})
	once := DecodeTitles(lines)
	assert.Equal(t, once, DecodeTitles(once))
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, EncodeTitles(nil))
	assert.Empty(t, DecodeTitles([]string{}))
}

func TestLabelForMarkerFallback(t *testing.T) {
	assert.Equal(t, "Bridge", labelForMarker(" ########### "))
	assert.Equal(t, "verse", labelForMarker(" ## "))
}
