package pianoroll

import (
	"math"
	"regexp"
	"strconv"
)

// Note is a single pitched event on a track. Start and Duration are in
// seconds, Velocity is normalized to [0,1].
type Note struct {
	ID       string
	Pitch    int
	Start    float64
	Duration float64
	Velocity float64
	Name     string `yaml:",omitempty"`
}

const (
	MinPitch = 0
	MaxPitch = 127

	// LowestKey and HighestKey are the range of a standard 88-key piano.
	LowestKey  = 21
	HighestKey = 108

	BeatsPerBar = 4
	DefaultBPM  = 120.0
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteNameRegexp = regexp.MustCompile(`^([A-G]#?)(-?\d+)$`)

// End returns the time the note stops sounding.
func (n *Note) End() float64 { return n.Start + n.Duration }

// ClampPitch limits a pitch to the valid MIDI range.
func ClampPitch(pitch int) int {
	return min(max(pitch, MinPitch), MaxPitch)
}

// NoteName returns the scientific pitch name of a MIDI pitch, e.g. 60 -> "C4".
func NoteName(pitch int) string {
	octave := floorDiv(pitch, 12) - 1
	return noteNames[floorMod(pitch, 12)] + strconv.Itoa(octave)
}

// PitchFromName parses a name like "C#4" into a MIDI pitch. Unparseable names
// give middle C.
func PitchFromName(name string) int {
	m := noteNameRegexp.FindStringSubmatch(name)
	if m == nil {
		return 60
	}
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return 60
	}
	for i, n := range noteNames {
		if n == m[1] {
			return (octave+1)*12 + i
		}
	}
	return 60
}

// IsBlackKey tells if the pitch falls on a black key of the piano.
func IsBlackKey(pitch int) bool {
	switch floorMod(pitch, 12) {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// SnapToSemitone rounds a fractional pitch to the nearest semitone.
func SnapToSemitone(pitch float64) int {
	return int(math.Round(pitch))
}

// GridStep returns the length in seconds of one snap division, assuming four
// beats per bar.
func GridStep(division int, bpm float64) float64 {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	if division <= 0 {
		division = 1
	}
	return 60 / bpm * BeatsPerBar / float64(division)
}

// Quantize rounds t to the nearest grid division.
func Quantize(t float64, division int, bpm float64) float64 {
	step := GridStep(division, bpm)
	return math.Round(t/step) * step
}

// NotesInRange returns the notes that sound at some point inside [start,end).
func NotesInRange(notes []Note, start, end float64) []Note {
	var ret []Note
	for _, n := range notes {
		if n.Start < end && n.End() > start {
			ret = append(ret, n)
		}
	}
	return ret
}

// NotesInPitchRange returns the notes with low <= pitch <= high.
func NotesInPitchRange(notes []Note, low, high int) []Note {
	var ret []Note
	for _, n := range notes {
		if n.Pitch >= low && n.Pitch <= high {
			ret = append(ret, n)
		}
	}
	return ret
}

// Bounds is the time and pitch extent of a set of notes.
type Bounds struct {
	Start, End float64
	Low, High  int
}

// NoteBounds computes the extent of notes; ok is false for an empty slice.
func NoteBounds(notes []Note) (b Bounds, ok bool) {
	if len(notes) == 0 {
		return Bounds{}, false
	}
	b = Bounds{Start: math.Inf(1), End: math.Inf(-1), Low: MaxPitch + 1, High: MinPitch - 1}
	for _, n := range notes {
		b = b.include(n)
	}
	return b, true
}

func (b Bounds) include(n Note) Bounds {
	b.Start = math.Min(b.Start, n.Start)
	b.End = math.Max(b.End, n.End())
	b.Low = min(b.Low, n.Pitch)
	b.High = max(b.High, n.Pitch)
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
