package editor_test

import (
	"testing"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rubberBandModel has, at 100 px/s and 10 px/semitone, a note n1 with the
// box {50,50,10,10} and a note n2 with the box {200,200,10,10}.
func rubberBandModel(t *testing.T) *editor.Model {
	m := newTestModel(t)
	m.LoadDocument(pianoroll.Document{Tracks: []pianoroll.Track{
		{ID: "t", Notes: []pianoroll.Note{
			{ID: "n1", Pitch: 122, Start: 0.5, Duration: 0.1, Velocity: 1},
			{ID: "n2", Pitch: 107, Start: 2, Duration: 0.1, Velocity: 1},
		}},
	}})
	m.View().SetVerticalZoom(10)
	return m
}

func TestRubberBandSelect(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	in.PointerDown(editor.PointerEvent{X: 0, Y: 0})
	assert.Equal(t, editor.DraggingSelectionRect, in.State())
	in.PointerMove(editor.PointerEvent{X: 100, Y: 100})
	r, ok := in.DragRect()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 100, H: 100}, r)
	in.PointerUp(editor.PointerEvent{X: 100, Y: 100})
	assert.Equal(t, editor.Idle, in.State())
	assert.Equal(t, []string{"n1"}, m.Selection().State().List())
	_, ok = in.DragRect()
	assert.False(t, ok)
}

func TestRubberBandDragsBackwards(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	in.PointerDown(editor.PointerEvent{X: 300, Y: 300})
	in.PointerMove(editor.PointerEvent{X: 150, Y: 150})
	r, _ := in.DragRect()
	assert.Equal(t, geom.Rect{X: 150, Y: 150, W: 150, H: 150}, r)
	in.PointerUp(editor.PointerEvent{X: 150, Y: 150})
	assert.Equal(t, []string{"n2"}, m.Selection().State().List())
}

func TestRubberBandUsesScroll(t *testing.T) {
	m := rubberBandModel(t)
	m.View().SetScroll(150, 150)
	in := m.Interaction()
	in.PointerDown(editor.PointerEvent{X: 0, Y: 0})
	in.PointerUp(editor.PointerEvent{X: 100, Y: 100})
	assert.Equal(t, []string{"n2"}, m.Selection().State().List())
}

func TestRubberBandMissKeepsSelection(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	m.Selection().SelectNote("n2", false)
	in.PointerDown(editor.PointerEvent{X: 500, Y: 500, Shift: true})
	in.PointerUp(editor.PointerEvent{X: 600, Y: 600, Shift: true})
	assert.Equal(t, []string{"n2"}, m.Selection().State().List())
	// without shift the press itself clears
	in.PointerDown(editor.PointerEvent{X: 500, Y: 500})
	in.PointerUp(editor.PointerEvent{X: 600, Y: 600})
	assert.Equal(t, 0, m.Selection().State().Len())
}

func TestRubberBandShiftExtends(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	m.Selection().SelectNote("n2", false)
	in.PointerDown(editor.PointerEvent{X: 0, Y: 0, Shift: true})
	in.PointerUp(editor.PointerEvent{X: 100, Y: 100, Shift: true})
	assert.Equal(t, []string{"n1", "n2"}, m.Selection().State().List())
	assert.Equal(t, "n2", m.Selection().State().Anchor)
}

func TestClickSelect(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	in.PointerDown(editor.PointerEvent{X: 55, Y: 55})
	in.PointerUp(editor.PointerEvent{X: 55, Y: 55})
	assert.Equal(t, []string{"n1"}, m.Selection().State().List())
	assert.Equal(t, "n1", m.Selection().State().Anchor)
	assert.Equal(t, editor.Idle, in.State())

	in.PointerDown(editor.PointerEvent{X: 205, Y: 205, Shift: true})
	assert.Equal(t, []string{"n1", "n2"}, m.Selection().State().List())
	assert.Equal(t, "n1", m.Selection().State().Anchor)

	// clicking an already selected note keeps the group
	in.PointerDown(editor.PointerEvent{X: 205, Y: 205})
	assert.Equal(t, []string{"n1", "n2"}, m.Selection().State().List())
}

func TestHitTestDocumentOrder(t *testing.T) {
	m := newTestModel(t)
	m.LoadDocument(pianoroll.Document{Tracks: []pianoroll.Track{
		{ID: "t1", Notes: []pianoroll.Note{{ID: "x", Pitch: 60, Start: 0, Duration: 1}}},
		{ID: "t2", Notes: []pianoroll.Note{{ID: "y", Pitch: 60, Start: 0, Duration: 1}}},
	}})
	y := geom.PitchToY(60, m.View().State().Zoom.Vertical)
	ref, ok := m.Interaction().HitTest(10, y+1)
	require.True(t, ok)
	assert.Equal(t, "x", ref.Note.ID)
	assert.Equal(t, "t1", ref.TrackID)
	_, ok = m.Interaction().HitTest(500, y+1)
	assert.False(t, ok)
}

func TestPointerCancel(t *testing.T) {
	m := rubberBandModel(t)
	in := m.Interaction()
	in.PointerDown(editor.PointerEvent{X: 0, Y: 0})
	in.PointerCancel()
	assert.Equal(t, editor.Idle, in.State())
	in.PointerUp(editor.PointerEvent{X: 100, Y: 100})
	assert.Equal(t, 0, m.Selection().State().Len())
}

func TestWheel(t *testing.T) {
	m := newTestModel(t)
	in := m.Interaction()
	in.Wheel(editor.WheelEvent{DeltaX: 10, DeltaY: 20})
	assert.Equal(t, editor.Scroll{X: 10, Y: 20}, m.View().State().Scroll)
	in.Wheel(editor.WheelEvent{DeltaY: -1, Ctrl: true})
	assert.InDelta(t, 120.0, m.View().State().Zoom.Horizontal, 1e-9)
	in.Wheel(editor.WheelEvent{DeltaY: 1, Ctrl: true, Shift: true})
	assert.InDelta(t, 10.0, m.View().State().Zoom.Vertical, 1e-9)
	in.Wheel(editor.WheelEvent{DeltaX: 5, Ctrl: true})
	assert.InDelta(t, 120.0, m.View().State().Zoom.Horizontal, 1e-9)
	assert.Equal(t, editor.Scroll{X: 10, Y: 20}, m.View().State().Scroll)
}

func TestPencilAddsSnappedNote(t *testing.T) {
	m := newTestModel(t)
	m.View().SetTool(editor.PencilTool)
	vz := m.View().State().Zoom.Vertical
	// 0.33 s snaps to 0.375 s at 1/16 and 120 bpm
	m.Interaction().PointerDown(editor.PointerEvent{X: 33, Y: geom.PitchToY(90, vz) + 1})
	assert.Equal(t, editor.Idle, m.Interaction().State())
	refs := m.Selection().Selected()
	require.Len(t, refs, 1)
	assert.Equal(t, "a", refs[0].TrackID)
	n := refs[0].Note
	assert.Equal(t, 90, n.Pitch)
	assert.InDelta(t, 0.375, n.Start, 1e-12)
	assert.InDelta(t, 0.125, n.Duration, 1e-12)
	assert.Equal(t, 0.8, n.Velocity)
	m.History().Undo().Do()
	assert.Equal(t, 4, m.Document().NoteCount())
}

func TestPencilUsesAnchorTrack(t *testing.T) {
	m := newTestModel(t)
	m.Selection().SelectNote("n4", false)
	m.View().SetTool(editor.PencilTool)
	m.Interaction().PointerDown(editor.PointerEvent{X: 1000, Y: 10})
	assert.Len(t, m.Document().NotesForTrack("b"), 2)
}

func TestPencilIgnoresRowsOutsideMIDIRange(t *testing.T) {
	m := newTestModel(t)
	m.View().SetTool(editor.PencilTool)
	vz := m.View().State().Zoom.Vertical
	v := m.Version()
	m.Interaction().PointerDown(editor.PointerEvent{X: 10, Y: geom.PitchToY(0, vz) + vz + 1})
	assert.Equal(t, 4, m.Document().NoteCount())
	assert.Equal(t, v, m.Version())
	m.Interaction().PointerDown(editor.PointerEvent{X: 10, Y: geom.PitchToY(0, vz) + vz/2})
	assert.Equal(t, 5, m.Document().NoteCount())
	assert.Equal(t, 0, m.Selection().Selected()[0].Note.Pitch)
}

func TestEraser(t *testing.T) {
	m := rubberBandModel(t)
	m.View().SetTool(editor.EraserTool)
	m.Interaction().PointerDown(editor.PointerEvent{X: 55, Y: 55})
	m.Interaction().PointerDown(editor.PointerEvent{X: 0, Y: 0})
	assert.Equal(t, []string{"n2"}, noteIDs(m.Document().NotesForTrack("t")))
}

func TestCut(t *testing.T) {
	m := newTestModel(t)
	m.View().SetTool(editor.CutTool)
	vz := m.View().State().Zoom.Vertical
	// n3 spans 1 s .. 2 s; 1.49 s snaps to 1.5 s
	m.Interaction().PointerDown(editor.PointerEvent{X: 149, Y: geom.PitchToY(67, vz) + 1})
	notes := m.Document().NotesForTrack("a")
	require.Len(t, notes, 4)
	assert.InDelta(t, 0.5, notes[2].Duration, 1e-12)
	assert.InDelta(t, 1.5, notes[3].Start, 1e-12)
}

func noteIDs(notes []pianoroll.Note) []string {
	ret := make([]string, len(notes))
	for i, n := range notes {
		ret[i] = n.ID
	}
	return ret
}
