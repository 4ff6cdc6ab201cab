// Package midifile converts Standard MIDI Files to and from
// pianoroll.Document. Note on/off pairs become notes with times in seconds,
// using the tempo map of the file.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/a5af/pianoroll"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrTimeFormat = errors.New("only metric (ticks per quarter note) time format is supported")

const (
	defaultTitle      = "Untitled"
	defaultInstrument = "Piano"
)

// Magic is the first bytes of every Standard MIDI File.
var Magic = []byte("MThd")

// IsSMF tells if the data looks like a Standard MIDI File.
func IsSMF(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

type (
	openNote struct {
		tick     int
		velocity uint8
	}

	noteKey struct {
		channel, key uint8
	}

	sourceTrack struct {
		name, instrument string
		notes            []pianoroll.Note
	}
)

// Decode reads a Standard MIDI File. Tracks without notes are dropped; the
// name of a leading track without notes becomes the document title.
func Decode(r io.Reader) (pianoroll.Document, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return pianoroll.Document{}, fmt.Errorf("could not read MIDI file: %w", err)
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return pianoroll.Document{}, ErrTimeFormat
	}
	doc := pianoroll.Document{Title: defaultTitle, PPQ: int(ticks.Resolution())}
	doc.Tempos, doc.TimeSignatures = readMaps(s, doc.PPQ)
	tm := newTempoMap(doc.Tempos, doc.PPQ)
	for i, t := range s.Tracks {
		st := readTrack(t, tm)
		if len(st.notes) == 0 {
			if i == 0 && st.name != "" {
				doc.Title = st.name
			}
			continue
		}
		index := len(doc.Tracks)
		track := pianoroll.Track{
			ID:         pianoroll.NewID(),
			Name:       st.name,
			Instrument: st.instrument,
			Color:      pianoroll.PaletteColor(index),
			Notes:      st.notes,
		}
		if track.Name == "" {
			track.Name = fmt.Sprintf("Track %d", index+1)
		}
		if track.Instrument == "" {
			track.Instrument = defaultInstrument
		}
		doc.Tracks = append(doc.Tracks, track)
	}
	doc.UpdateDuration()
	return doc, nil
}

// readMaps collects the tempo and meter changes of all tracks in tick order.
func readMaps(s *smf.SMF, ppq int) ([]pianoroll.Tempo, []pianoroll.TimeSignature) {
	var tempos []pianoroll.Tempo
	var sigs []pianoroll.TimeSignature
	for _, t := range s.Tracks {
		tick := 0
		for _, ev := range t {
			tick += int(ev.Delta)
			var bpm float64
			var num, denom uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				tempos = append(tempos, pianoroll.Tempo{BPM: bpm, Tick: tick})
			case ev.Message.GetMetaMeter(&num, &denom):
				sigs = append(sigs, pianoroll.TimeSignature{Numerator: int(num), Denominator: int(denom), Tick: tick})
			}
		}
	}
	sort.SliceStable(tempos, func(i, j int) bool { return tempos[i].Tick < tempos[j].Tick })
	sort.SliceStable(sigs, func(i, j int) bool { return sigs[i].Tick < sigs[j].Tick })
	// measure index of each change, counting whole measures of the previous
	// signature
	for i := 1; i < len(sigs); i++ {
		prev := sigs[i-1]
		measureTicks := ppq * 4 * prev.Numerator / max(prev.Denominator, 1)
		if measureTicks <= 0 {
			sigs[i].Measure = prev.Measure
			continue
		}
		sigs[i].Measure = prev.Measure + (sigs[i].Tick-prev.Tick)/measureTicks
	}
	return tempos, sigs
}

func readTrack(t smf.Track, tm tempoMap) sourceTrack {
	var ret sourceTrack
	open := map[noteKey][]openNote{}
	var order []noteKey
	tick := 0
	closeNote := func(k noteKey, endTick int) {
		stack := open[k]
		if len(stack) == 0 {
			return
		}
		on := stack[0]
		open[k] = stack[1:]
		start := tm.seconds(on.tick)
		duration := tm.seconds(endTick) - start
		if duration <= 0 {
			return
		}
		pitch := pianoroll.ClampPitch(int(k.key))
		ret.notes = append(ret.notes, pianoroll.Note{
			ID:       pianoroll.NewID(),
			Pitch:    pitch,
			Start:    start,
			Duration: duration,
			Velocity: float64(on.velocity) / 127,
			Name:     pianoroll.NoteName(pitch),
		})
	}
	for _, ev := range t {
		tick += int(ev.Delta)
		var channel, key, velocity uint8
		var text string
		msg := midi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{channel, key}
			if _, ok := open[k]; !ok {
				order = append(order, k)
			}
			open[k] = append(open[k], openNote{tick: tick, velocity: velocity})
		case msg.GetNoteEnd(&channel, &key):
			closeNote(noteKey{channel, key}, tick)
		case ev.Message.GetMetaTrackName(&text):
			if ret.name == "" {
				ret.name = text
			}
		case ev.Message.GetMetaInstrument(&text):
			if ret.instrument == "" {
				ret.instrument = text
			}
		}
	}
	// notes still sounding at the end of the track end there
	for _, k := range order {
		for len(open[k]) > 0 {
			closeNote(k, tick)
		}
	}
	sort.SliceStable(ret.notes, func(i, j int) bool { return ret.notes[i].Start < ret.notes[j].Start })
	return ret
}

type event struct {
	tick  int
	off   bool
	pitch uint8
	vel   uint8
}

// Encode writes the document as a format 1 Standard MIDI File: a conductor
// track with the title, tempo and meter maps followed by one track per
// document track, each on its own channel.
func Encode(doc pianoroll.Document, w io.Writer) error {
	ppq := doc.PPQ
	if ppq <= 0 || ppq > 0x7fff {
		ppq = pianoroll.DefaultPPQ
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ppq)
	tm := newTempoMap(doc.Tempos, ppq)
	if err := s.Add(conductorTrack(doc)); err != nil {
		return fmt.Errorf("could not add conductor track: %w", err)
	}
	for i, t := range doc.Tracks {
		channel := uint8(i % 16)
		var events []event
		for _, n := range t.Notes {
			if n.Duration <= 0 {
				continue
			}
			pitch := uint8(pianoroll.ClampPitch(n.Pitch))
			// velocity 0 would be a note off
			vel := uint8(max(1, math.Round(min(max(n.Velocity, 0), 1)*127)))
			startTick := tm.ticks(n.Start)
			endTick := max(tm.ticks(n.End()), startTick+1)
			events = append(events, event{tick: startTick, pitch: pitch, vel: vel}, event{tick: endTick, off: true, pitch: pitch})
		}
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].off && !events[j].off
		})
		var track smf.Track
		track.Add(0, smf.MetaTrackSequenceName(t.Name))
		if t.Instrument != "" {
			track.Add(0, smf.MetaInstrument(t.Instrument))
		}
		prev := 0
		for _, e := range events {
			delta := uint32(e.tick - prev)
			if e.off {
				track.Add(delta, midi.NoteOff(channel, e.pitch))
			} else {
				track.Add(delta, midi.NoteOn(channel, e.pitch, e.vel))
			}
			prev = e.tick
		}
		track.Close(0)
		if err := s.Add(track); err != nil {
			return fmt.Errorf("could not add track %q: %w", t.Name, err)
		}
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write MIDI file: %w", err)
	}
	return nil
}

func conductorTrack(doc pianoroll.Document) smf.Track {
	type meta struct {
		tick int
		msg  smf.Message
	}
	var metas []meta
	for _, t := range doc.Tempos {
		metas = append(metas, meta{t.Tick, smf.MetaTempo(t.BPM)})
	}
	for _, ts := range doc.TimeSignatures {
		metas = append(metas, meta{ts.Tick, smf.MetaMeter(uint8(ts.Numerator), uint8(ts.Denominator))})
	}
	sort.SliceStable(metas, func(i, j int) bool { return metas[i].tick < metas[j].tick })
	var track smf.Track
	title := doc.Title
	if title == "" {
		title = defaultTitle
	}
	track.Add(0, smf.MetaTrackSequenceName(title))
	prev := 0
	for _, m := range metas {
		track.Add(uint32(max(m.tick-prev, 0)), m.msg)
		prev = max(m.tick, prev)
	}
	track.Close(0)
	return track
}
