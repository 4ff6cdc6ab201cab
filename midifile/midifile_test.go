package midifile_test

import (
	"bytes"
	"testing"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/midifile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceDocument() pianoroll.Document {
	return pianoroll.Document{
		Title: "Round trip",
		PPQ:   480,
		Tracks: []pianoroll.Track{
			{ID: "a", Name: "Lead", Instrument: "Flute", Notes: []pianoroll.Note{
				{ID: "1", Pitch: 60, Start: 0, Duration: 0.5, Velocity: 1},
				{ID: "2", Pitch: 64, Start: 0.5, Duration: 0.25, Velocity: 0.5},
				{ID: "3", Pitch: 60, Start: 0.5, Duration: 1, Velocity: 0},
			}},
			{ID: "b", Name: "Bass", Notes: []pianoroll.Note{
				{ID: "4", Pitch: 36, Start: 2, Duration: 2, Velocity: 0.75},
			}},
			{ID: "c", Name: "Empty"},
		},
		Tempos:         []pianoroll.Tempo{{BPM: 120, Tick: 0}, {BPM: 60, Tick: 1920}},
		TimeSignatures: []pianoroll.TimeSignature{{Numerator: 4, Denominator: 4}, {Numerator: 3, Denominator: 4, Tick: 3840}},
	}
}

func roundTrip(t *testing.T, doc pianoroll.Document) pianoroll.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, midifile.Encode(doc, &buf))
	require.True(t, midifile.IsSMF(buf.Bytes()))
	got, err := midifile.Decode(&buf)
	require.NoError(t, err)
	return got
}

func TestRoundTrip(t *testing.T) {
	got := roundTrip(t, sourceDocument())
	assert.Equal(t, "Round trip", got.Title)
	assert.Equal(t, 480, got.PPQ)
	require.Len(t, got.Tracks, 2, "tracks without notes are dropped")
	assert.Equal(t, "Lead", got.Tracks[0].Name)
	assert.Equal(t, "Flute", got.Tracks[0].Instrument)
	assert.Equal(t, "Piano", got.Tracks[1].Instrument)
	assert.Equal(t, pianoroll.PaletteColor(0), got.Tracks[0].Color)
	assert.Equal(t, pianoroll.PaletteColor(1), got.Tracks[1].Color)

	lead := got.Tracks[0].Notes
	require.Len(t, lead, 3)
	assert.Equal(t, 60, lead[0].Pitch)
	assert.InDelta(t, 0, lead[0].Start, 1e-9)
	assert.InDelta(t, 0.5, lead[0].Duration, 1e-9)
	assert.InDelta(t, 1, lead[0].Velocity, 1e-9)
	assert.Equal(t, "C4", lead[0].Name)
	for _, n := range lead[1:] {
		assert.InDelta(t, 0.5, n.Start, 1e-9)
		assert.NotEmpty(t, n.ID)
	}

	// the bass note starts after the tempo drops to 60 bpm at 2 s
	bass := got.Tracks[1].Notes
	require.Len(t, bass, 1)
	assert.InDelta(t, 2, bass[0].Start, 1e-9)
	assert.InDelta(t, 2, bass[0].Duration, 1e-9)
	assert.InDelta(t, 0.75, bass[0].Velocity, 0.01)
	assert.InDelta(t, 4, got.Duration, 1e-9)

	require.Len(t, got.Tempos, 2)
	assert.Equal(t, pianoroll.Tempo{BPM: 60, Tick: 1920}, got.Tempos[1])
	require.Len(t, got.TimeSignatures, 2)
	assert.Equal(t, pianoroll.TimeSignature{Numerator: 3, Denominator: 4, Measure: 2, Tick: 3840}, got.TimeSignatures[1])
}

func TestRoundTripSameNoteOverlap(t *testing.T) {
	doc := pianoroll.Document{PPQ: 96, Tracks: []pianoroll.Track{{Name: "x", Notes: []pianoroll.Note{
		{Pitch: 70, Start: 0, Duration: 1, Velocity: 0.5},
		{Pitch: 70, Start: 1, Duration: 1, Velocity: 0.5},
	}}}}
	got := roundTrip(t, doc)
	require.Len(t, got.Tracks, 1)
	notes := got.Tracks[0].Notes
	require.Len(t, notes, 2)
	assert.InDelta(t, 1, notes[0].Duration, 1e-9)
	assert.InDelta(t, 1, notes[1].Start, 1e-9)
	assert.Equal(t, "Untitled", got.Title)
}

func TestVelocityRoundTrip(t *testing.T) {
	velocities := []float64{1, 0.5, 0, 64.0 / 127, 1.0 / 127, 100.0 / 127}
	var notes []pianoroll.Note
	for i, v := range velocities {
		notes = append(notes, pianoroll.Note{Pitch: 60, Start: float64(i), Duration: 0.5, Velocity: v})
	}
	got := roundTrip(t, pianoroll.Document{PPQ: 480, Tracks: []pianoroll.Track{{Name: "v", Notes: notes}}})
	require.Len(t, got.Tracks, 1)
	gotNotes := got.Tracks[0].Notes
	require.Len(t, gotNotes, len(velocities))
	assert.Equal(t, 1.0, gotNotes[0].Velocity)
	assert.InDelta(t, 0.5, gotNotes[1].Velocity, 0.5/127)
	assert.Equal(t, 1.0/127, gotNotes[2].Velocity, "silent notes keep the lowest audible velocity")
	for i := 3; i < len(velocities); i++ {
		assert.Equal(t, velocities[i], gotNotes[i].Velocity)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := midifile.Decode(bytes.NewReader([]byte("this is not a midi file")))
	assert.Error(t, err)
	assert.False(t, midifile.IsSMF([]byte("Title: x")))
}
