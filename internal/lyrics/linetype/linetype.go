// Package linetype decides the structural role of a single song-sheet line
// and encodes section titles into placeholder markers for flat storage.
package linetype

import (
	"fmt"
	"strings"
)

// Type is the structural category of a line.
type Type int

const (
	Normal Type = iota
	Title
	Chords
	NonBreak
)

var typeNames = map[Type]string{
	Normal:   "NORMAL",
	Title:    "TITLE",
	Chords:   "CHORDS",
	NonBreak: "NONBREAK",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalText lets a Type be written as its name in JSON payloads.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the names produced by String, case-insensitively.
func (t *Type) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for typ, n := range typeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown line type: %q", string(text))
}
