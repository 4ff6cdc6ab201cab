package editor_test

import (
	"math"
	"testing"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func note(t *testing.T, m *editor.Model, id string) pianoroll.Note {
	t.Helper()
	ti, ni, ok := m.Document().FindNote(id)
	require.True(t, ok, "note %s not found", id)
	return m.Document().Tracks[ti].Notes[ni]
}

func TestAddNote(t *testing.T) {
	m := newTestModel(t)
	id, ok := m.Edit().AddNote("b", editor.NoteFields{Pitch: 200, Start: -1, Duration: 0.25, Velocity: 2})
	require.True(t, ok)
	n := note(t, m, id)
	assert.Equal(t, 127, n.Pitch)
	assert.Equal(t, "G9", n.Name)
	assert.Equal(t, 0.0, n.Start)
	assert.Equal(t, 1.0, n.Velocity)
	assert.Len(t, m.Document().NotesForTrack("b"), 2)
}

func TestAddNoteRejectsBadInput(t *testing.T) {
	m := newTestModel(t)
	v := m.Version()
	_, ok := m.Edit().AddNote("nope", editor.NoteFields{Pitch: 60, Duration: 1})
	assert.False(t, ok)
	_, ok = m.Edit().AddNote("a", editor.NoteFields{Pitch: 60, Duration: 0})
	assert.False(t, ok)
	assert.Equal(t, v, m.Version())
	assert.Equal(t, 4, m.Document().NoteCount())
}

func TestUpdateNote(t *testing.T) {
	m := newTestModel(t)
	pitch, dur := 130, 0.75
	m.Edit().UpdateNote("a", "n1", editor.NotePatch{Pitch: &pitch, Duration: &dur})
	n := note(t, m, "n1")
	assert.Equal(t, 127, n.Pitch)
	assert.Equal(t, 0.75, n.Duration)
	assert.Equal(t, 0.8, n.Velocity)
	bad := -1.0
	m.Edit().UpdateNote("a", "n1", editor.NotePatch{Pitch: new(int), Duration: &bad})
	assert.Equal(t, 127, note(t, m, "n1").Pitch)
	m.Edit().UpdateNote("a", "missing", editor.NotePatch{Pitch: new(int)})
	m.Edit().UpdateNote("b", "n1", editor.NotePatch{Pitch: new(int)})
	assert.Equal(t, 127, note(t, m, "n1").Pitch)
}

func TestDeleteNoteLeavesStaleSelection(t *testing.T) {
	m := newTestModel(t)
	m.Edit().DeleteNotes("a", []string{"n2", "n3"})
	m.Selection().SelectNote("n1", false)
	m.Edit().DeleteNote("a", "n1")
	assert.Empty(t, m.Document().NotesForTrack("a"))
	assert.True(t, m.Selection().Contains("n1"))
	assert.Empty(t, m.Selection().Selected())
	m.Selection().ClearSelection()
	assert.Equal(t, 0, m.Selection().State().Len())
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	m := newTestModel(t)
	doc := m.Document()
	m.Edit().DeleteNotes("a", []string{"x", "y"})
	m.Edit().DeleteNote("zzz", "n1")
	assert.Same(t, doc, m.Document())
	assert.False(t, m.History().Undo().Enabled())
}

func TestSoloIsExclusive(t *testing.T) {
	m := newTestModel(t)
	m.Edit().ToggleTrackSolo("a")
	var seen []bool
	m.Subscribe(func(s editor.Snapshot) {
		seen = append(seen, s.Document.Tracks[0].Solo, s.Document.Tracks[1].Solo)
	})
	m.Edit().ToggleTrackSolo("b")
	assert.False(t, m.Document().Track("a").Solo)
	assert.True(t, m.Document().Track("b").Solo)
	// one notification, never observing both soloed
	assert.Equal(t, []bool{false, true}, seen)
	m.Edit().ToggleTrackSolo("b")
	assert.False(t, m.Document().AnySolo())
}

func TestMuteIsIndependent(t *testing.T) {
	m := newTestModel(t)
	m.Edit().ToggleTrackMute("a")
	m.Edit().ToggleTrackMute("b")
	assert.True(t, m.Document().Track("a").Mute)
	assert.True(t, m.Document().Track("b").Mute)
	assert.True(t, m.Edit().TrackMute("a").Value())
	m.Edit().TrackMute("a").SetValue(false)
	assert.False(t, m.Document().Track("a").Mute)
}

func TestMoveNotesClamps(t *testing.T) {
	m := newTestModel(t)
	m.Edit().MoveNotes("a", []string{"n1", "n3", "missing"}, -0.5, 100)
	assert.Equal(t, 0.0, note(t, m, "n1").Start)
	assert.Equal(t, 127, note(t, m, "n1").Pitch)
	assert.Equal(t, 0.5, note(t, m, "n3").Start)
	assert.Equal(t, 127, note(t, m, "n3").Pitch)
	assert.Equal(t, "G9", note(t, m, "n3").Name)
	assert.Equal(t, 0.5, note(t, m, "n2").Start)
}

func TestMoveNotesStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := newTestModel(t)
		pitch, start := 60, 0.0
		for range rapid.IntRange(1, 10).Draw(t, "moves") {
			dt := rapid.Float64Range(-10, 10).Draw(t, "dt")
			dp := rapid.OneOf(rapid.Int(), rapid.IntRange(-130, 130), rapid.SampledFrom([]int{math.MinInt, math.MaxInt})).Draw(t, "dp")
			m.Edit().MoveNotes("a", []string{"n1"}, dt, dp)
			switch {
			case dp > 127-pitch:
				pitch = 127
			case dp < -pitch:
				pitch = 0
			default:
				pitch += dp
			}
			start = math.Max(0, start+dt)
			ti, ni, _ := m.Document().FindNote("n1")
			n := m.Document().Tracks[ti].Notes[ni]
			if n.Pitch != pitch || n.Start != start {
				t.Fatalf("moved by (%v, %d): got pitch %d start %v, want pitch %d start %v", dt, dp, n.Pitch, n.Start, pitch, start)
			}
		}
	})
}

func TestMoveNotesExtremeDeltas(t *testing.T) {
	m := newTestModel(t)
	m.Edit().MoveNotes("a", []string{"n1"}, 0, math.MaxInt)
	assert.Equal(t, 127, note(t, m, "n1").Pitch)
	m.Edit().MoveNotes("a", []string{"n1"}, 0, math.MinInt)
	assert.Equal(t, 0, note(t, m, "n1").Pitch)
	assert.Equal(t, "C-1", note(t, m, "n1").Name)

	for _, dt := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		m.Edit().MoveNotes("a", []string{"n2"}, dt, 0)
		m.Selection().SelectNote("n2", false)
		m.Edit().MoveSelected(dt, 0)
	}
	assert.Equal(t, 0.5, note(t, m, "n2").Start)
	assert.Equal(t, 2.0, m.Document().Duration)
}

func TestSplitNote(t *testing.T) {
	m := newTestModel(t)
	id, ok := m.Edit().SplitNote("a", "n3", 1.25)
	require.True(t, ok)
	notes := m.Document().NotesForTrack("a")
	require.Len(t, notes, 4)
	assert.Equal(t, "n3", notes[2].ID)
	assert.InDelta(t, 0.25, notes[2].Duration, 1e-12)
	assert.Equal(t, id, notes[3].ID)
	assert.Equal(t, 1.25, notes[3].Start)
	assert.InDelta(t, 0.75, notes[3].Duration, 1e-12)
	_, ok = m.Edit().SplitNote("a", "n3", 1)
	assert.False(t, ok)
}

func TestMoveSelectedMergesUndo(t *testing.T) {
	m := newTestModel(t)
	m.Selection().SelectNotes([]string{"n1", "n4"}, false)
	nudge := m.Edit().Nudge(1, 0)
	nudge.Do()
	nudge.Do()
	assert.InDelta(t, 0.25, note(t, m, "n1").Start, 1e-12)
	assert.InDelta(t, 0.25, note(t, m, "n4").Start, 1e-12)
	m.History().Undo().Do()
	assert.Equal(t, 0.0, note(t, m, "n1").Start)
	assert.False(t, m.History().Undo().Enabled())
	m.History().Redo().Do()
	assert.InDelta(t, 0.25, note(t, m, "n4").Start, 1e-12)
}

func TestDeleteSelected(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.Edit().DeleteSelected().Enabled())
	m.Selection().SelectNotes([]string{"n2", "n4"}, false)
	m.Edit().DeleteSelected().Do()
	assert.Equal(t, 2, m.Document().NoteCount())
	assert.Equal(t, 0, m.Selection().State().Len())
	m.History().Undo().Do()
	assert.Equal(t, 4, m.Document().NoteCount())
}

func TestSnapshotKeepsOldDocument(t *testing.T) {
	m := newTestModel(t)
	s := m.Snapshot()
	m.Edit().DeleteNote("a", "n1")
	assert.Len(t, s.Document.NotesForTrack("a"), 3)
	assert.Len(t, m.Document().NotesForTrack("a"), 2)
	assert.Greater(t, m.Version(), s.Version)
}

func TestUpdateTrack(t *testing.T) {
	m := newTestModel(t)
	name := "Melody"
	m.Edit().UpdateTrack("a", editor.TrackPatch{Name: &name})
	assert.Equal(t, "Melody", m.Document().Track("a").Name)
	assert.True(t, m.ChangedSinceSave())
}
