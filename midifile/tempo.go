package midifile

import (
	"math"
	"sort"

	"github.com/a5af/pianoroll"
)

type (
	// tempoMap converts between absolute ticks and seconds using the tempo
	// changes of a file.
	tempoMap struct {
		ppq      float64
		segments []tempoSegment
	}

	tempoSegment struct {
		tick    int
		bpm     float64
		seconds float64
	}
)

func newTempoMap(tempos []pianoroll.Tempo, ppq int) tempoMap {
	if ppq <= 0 {
		ppq = pianoroll.DefaultPPQ
	}
	sorted := append([]pianoroll.Tempo(nil), tempos...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })
	m := tempoMap{ppq: float64(ppq)}
	m.segments = append(m.segments, tempoSegment{tick: 0, bpm: pianoroll.DefaultBPM})
	for _, t := range sorted {
		if t.BPM <= 0 || t.Tick < 0 {
			continue
		}
		last := m.segments[len(m.segments)-1]
		if t.Tick == last.tick {
			m.segments[len(m.segments)-1].bpm = t.BPM
			continue
		}
		m.segments = append(m.segments, tempoSegment{
			tick:    t.Tick,
			bpm:     t.BPM,
			seconds: last.seconds + float64(t.Tick-last.tick)/m.ppq*60/last.bpm,
		})
	}
	return m
}

func (m tempoMap) seconds(tick int) float64 {
	i := sort.Search(len(m.segments), func(i int) bool { return m.segments[i].tick > tick }) - 1
	s := m.segments[max(i, 0)]
	return s.seconds + float64(tick-s.tick)/m.ppq*60/s.bpm
}

func (m tempoMap) ticks(seconds float64) int {
	i := sort.Search(len(m.segments), func(i int) bool { return m.segments[i].seconds > seconds }) - 1
	s := m.segments[max(i, 0)]
	return s.tick + int(math.Round((seconds-s.seconds)*s.bpm/60*m.ppq))
}
