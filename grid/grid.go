// Package grid computes the beat/bar lines and pitch rows that are visible in
// a window of the piano roll. Bars are always four beats long; tempo and meter
// changes are not taken into account.
package grid

import (
	"math"

	"github.com/a5af/pianoroll"
)

type (
	LineKind int

	TimeLine struct {
		Time float64
		Beat int
		Kind LineKind
	}

	PitchLine struct {
		Pitch int
		Kind  LineKind
	}
)

const (
	Beat LineKind = iota
	Bar
	White
	Black
)

func (k LineKind) String() string {
	switch k {
	case Beat:
		return "beat"
	case Bar:
		return "bar"
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "unknown"
}

// BarNumber returns the 1-based number of the bar starting at the line. Only
// meaningful for Bar lines.
func (l TimeLine) BarNumber() int {
	return floorDiv(l.Beat, pianoroll.BeatsPerBar) + 1
}

// TimeLines returns every beat boundary from floor(start/spb) to
// ceil(end/spb), inclusive, where spb = 60/bpm. pxPerSecond does not change the
// result; it is part of the cache key of Cache.
func TimeLines(start, end, pxPerSecond, bpm float64) []TimeLine {
	if bpm <= 0 {
		bpm = pianoroll.DefaultBPM
	}
	spb := 60 / bpm
	first := int(math.Floor(start / spb))
	last := int(math.Ceil(end / spb))
	if last < first {
		return nil
	}
	ret := make([]TimeLine, 0, last-first+1)
	for b := first; b <= last; b++ {
		kind := Beat
		if b%pianoroll.BeatsPerBar == 0 {
			kind = Bar
		}
		ret = append(ret, TimeLine{Time: float64(b) * spb, Beat: b, Kind: kind})
	}
	return ret
}

// PitchLines returns one row per pitch in [low, high].
func PitchLines(low, high int) []PitchLine {
	if high < low {
		return nil
	}
	ret := make([]PitchLine, 0, high-low+1)
	for p := low; p <= high; p++ {
		kind := White
		if pianoroll.IsBlackKey(p) {
			kind = Black
		}
		ret = append(ret, PitchLine{Pitch: p, Kind: kind})
	}
	return ret
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
