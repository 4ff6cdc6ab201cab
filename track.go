package pianoroll

import (
	"fmt"
	"image/color"
)

type Track struct {
	ID         string
	Name       string
	Instrument string     `yaml:",omitempty"`
	Color      ColorToken `yaml:",omitempty"`
	Solo       bool       `yaml:",omitempty"`
	Mute       bool       `yaml:",omitempty"`
	Notes      []Note
}

// ColorToken names one of the track colors of the palette, as a #RRGGBB hex
// string.
type ColorToken string

// Palette is the fixed set of track colors, assigned by track index.
var Palette = [...]ColorToken{
	"#E74C3C", "#3498DB", "#2ECC71", "#F39C12",
	"#9B59B6", "#1ABC9C", "#E67E22", "#34495E",
}

// PaletteColor returns the color assigned to the i:th track.
func PaletteColor(i int) ColorToken {
	return Palette[floorMod(i, len(Palette))]
}

// NRGBA decodes the token. Malformed tokens decode to the first palette color.
func (c ColorToken) NRGBA() color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func (t *Track) Copy() Track {
	notes := make([]Note, len(t.Notes))
	copy(notes, t.Notes)
	ret := *t
	ret.Notes = notes
	return ret
}

// NoteIndex returns the index of the note with the given id, or -1.
func (t *Track) NoteIndex(id string) int {
	for i := range t.Notes {
		if t.Notes[i].ID == id {
			return i
		}
	}
	return -1
}

// Audible tells if the track is heard given the solo state of the document.
func (t *Track) Audible(anySolo bool) bool {
	if t.Mute {
		return false
	}
	return !anySolo || t.Solo
}
