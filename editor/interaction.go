package editor

import (
	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/geom"
)

type (
	// PointerEvent is a pointer event in canvas-local CSS pixels.
	PointerEvent struct {
		X, Y  float64
		Shift bool
		Ctrl  bool
	}

	// WheelEvent is a wheel or trackpad scroll, deltas in CSS pixels.
	WheelEvent struct {
		DeltaX, DeltaY float64
		Shift          bool
		Ctrl           bool
	}

	InteractionState int

	interaction struct {
		state            InteractionState
		anchorX, anchorY float64
		rect             geom.Rect
	}
)

const (
	Idle InteractionState = iota
	DraggingSelectionRect
)

const pencilVelocity = 0.8

func (s InteractionState) String() string {
	if s == DraggingSelectionRect {
		return "dragging"
	}
	return "idle"
}

// Interaction returns the pointer state machine of the session.
func (m *Model) Interaction() *InteractionModel { return (*InteractionModel)(m) }

type InteractionModel Model

func (m *InteractionModel) State() InteractionState { return m.interaction.state }

// DragRect returns the rubber-band rectangle in document pixel space while
// dragging.
func (m *InteractionModel) DragRect() (geom.Rect, bool) {
	if m.interaction.state != DraggingSelectionRect {
		return geom.Rect{}, false
	}
	return m.interaction.rect, true
}

func (m *InteractionModel) change(kind string) func() {
	return (*Model)(m).change("Interaction."+kind, ViewChange, MinorChange)
}

// toDocument converts canvas-local coordinates to document pixel space.
func (m *InteractionModel) toDocument(e PointerEvent) (x, y float64) {
	return geom.CanvasToViewport(e.X, e.Y, m.d.View.Scroll.X, m.d.View.Scroll.Y)
}

func (m *InteractionModel) PointerDown(e PointerEvent) {
	if m.d.Document == nil {
		return
	}
	x, y := m.toDocument(e)
	hit, onNote := m.HitTest(x, y)
	switch m.d.Tool {
	case PencilTool:
		if onNote {
			(*SelectionModel)(m).SelectNote(hit.Note.ID, e.Shift)
			return
		}
		m.pencil(x, y)
	case EraserTool:
		if onNote {
			(*DocumentModel)(m).DeleteNote(hit.TrackID, hit.Note.ID)
		}
	case CutTool:
		if onNote {
			at := (*ViewModel)(m).SnapTime(geom.XToTime(x, m.d.View.Zoom.Horizontal))
			(*DocumentModel)(m).SplitNote(hit.TrackID, hit.Note.ID, at)
		}
	default:
		if onNote {
			switch {
			case e.Shift:
				(*SelectionModel)(m).SelectNote(hit.Note.ID, true)
			case !m.d.Selection.Has(hit.Note.ID):
				(*SelectionModel)(m).SelectNote(hit.Note.ID, false)
			}
			return
		}
		defer m.change("BeginDrag")()
		if !e.Shift {
			(*SelectionModel)(m).ClearSelection()
		}
		m.interaction = interaction{
			state:   DraggingSelectionRect,
			anchorX: x,
			anchorY: y,
			rect:    geom.Rect{X: x, Y: y},
		}
	}
}

// pencil adds a note of one grid step at (x, y) and selects it. The note goes to
// the track of the selection anchor, or to the first track.
func (m *InteractionModel) pencil(x, y float64) {
	doc := m.d.Document
	if len(doc.Tracks) == 0 {
		return
	}
	pitch := geom.YToPitch(y, m.d.View.Zoom.Vertical)
	if pitch < pianoroll.MinPitch || pitch > pianoroll.MaxPitch {
		return
	}
	trackID := doc.Tracks[0].ID
	if ti, _, ok := doc.FindNote(m.d.Selection.Anchor); ok && m.d.Selection.Anchor != "" {
		trackID = doc.Tracks[ti].ID
	}
	view := (*ViewModel)(m)
	defer (*Model)(m).change("Pencil", DocumentChange, MajorChange)()
	id, ok := (*DocumentModel)(m).AddNote(trackID, NoteFields{
		Pitch:    pitch,
		Start:    view.SnapTime(geom.XToTime(x, m.d.View.Zoom.Horizontal)),
		Duration: view.GridStep(),
		Velocity: pencilVelocity,
	})
	if !ok {
		(*Model)(m).cancel()
		return
	}
	(*SelectionModel)(m).SelectNote(id, false)
}

func (m *InteractionModel) PointerMove(e PointerEvent) {
	if m.interaction.state != DraggingSelectionRect {
		return
	}
	defer m.change("Drag")()
	x, y := m.toDocument(e)
	m.interaction.rect = geom.RectFromPoints(m.interaction.anchorX, m.interaction.anchorY, x, y)
}

// PointerUp ends a rubber-band drag, selecting every note touching the
// rectangle. A rectangle that touches nothing leaves the selection as is.
func (m *InteractionModel) PointerUp(e PointerEvent) {
	if m.interaction.state != DraggingSelectionRect {
		return
	}
	defer m.change("EndDrag")()
	x, y := m.toDocument(e)
	r := geom.RectFromPoints(m.interaction.anchorX, m.interaction.anchorY, x, y)
	m.interaction = interaction{}
	refs := m.NotesInRect(r)
	if len(refs) == 0 {
		return
	}
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.Note.ID
	}
	(*SelectionModel)(m).SelectNotes(ids, e.Shift)
}

// PointerCancel abandons a drag without touching the selection.
func (m *InteractionModel) PointerCancel() {
	if m.interaction.state == Idle {
		return
	}
	defer m.change("Cancel")()
	m.interaction = interaction{}
}

// Wheel zooms when Ctrl is held (vertically if Shift is held too), and
// scrolls otherwise.
func (m *InteractionModel) Wheel(e WheelEvent) {
	view := (*ViewModel)(m)
	if !e.Ctrl {
		view.ScrollBy(e.DeltaX, e.DeltaY)
		return
	}
	axis := Horizontal
	if e.Shift {
		axis = Vertical
	}
	// a purely horizontal wheel event leaves the zoom alone
	switch delta := -e.DeltaY; {
	case delta > 0:
		view.ZoomIn(axis)
	case delta < 0:
		view.ZoomOut(axis)
	}
}

// HitTest returns the first note in document order whose box contains the
// point, given in document pixel space.
func (m *InteractionModel) HitTest(x, y float64) (pianoroll.NoteRef, bool) {
	if m.d.Document == nil {
		return pianoroll.NoteRef{}, false
	}
	hz, vz := m.d.View.Zoom.Horizontal, m.d.View.Zoom.Vertical
	for _, t := range m.d.Document.Tracks {
		for _, n := range t.Notes {
			if geom.PointInRect(x, y, geom.NoteRect(n.Start, n.Duration, n.Pitch, hz, vz)) {
				return pianoroll.NoteRef{TrackID: t.ID, Note: n}, true
			}
		}
	}
	return pianoroll.NoteRef{}, false
}

// NotesInRect returns the notes whose boxes touch r, in document order.
func (m *InteractionModel) NotesInRect(r geom.Rect) []pianoroll.NoteRef {
	if m.d.Document == nil {
		return nil
	}
	hz, vz := m.d.View.Zoom.Horizontal, m.d.View.Zoom.Vertical
	var ret []pianoroll.NoteRef
	for _, t := range m.d.Document.Tracks {
		for _, n := range t.Notes {
			if geom.RectsIntersect(r, geom.NoteRect(n.Start, n.Duration, n.Pitch, hz, vz)) {
				ret = append(ret, pianoroll.NoteRef{TrackID: t.ID, Note: n})
			}
		}
	}
	return ret
}
