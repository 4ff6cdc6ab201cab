package editor

import (
	"math"

	"github.com/a5af/pianoroll"
	"gopkg.in/yaml.v3"
)

// clipNotes is the clipboard payload: notes with start times relative to the
// earliest of them.
type clipNotes struct {
	Notes []pianoroll.Note
}

// CopyNotes marshals the selected notes for the clipboard. It returns false
// if nothing is selected.
func (m *SelectionModel) CopyNotes() ([]byte, bool) {
	refs := m.Selected()
	if len(refs) == 0 {
		return nil, false
	}
	start := math.Inf(1)
	for _, r := range refs {
		start = math.Min(start, r.Note.Start)
	}
	c := clipNotes{Notes: make([]pianoroll.Note, len(refs))}
	for i, r := range refs {
		n := r.Note
		n.ID = ""
		n.Start -= start
		c.Notes[i] = n
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, false
	}
	return b, true
}

// PasteNotes adds the notes of a clipboard payload at the playhead time, on
// the track of the selection anchor or the first track, and selects them.
func (m *SelectionModel) PasteNotes(data []byte) bool {
	var c clipNotes
	if err := yaml.Unmarshal(data, &c); err != nil || len(c.Notes) == 0 {
		return false
	}
	doc := m.d.Document
	if doc == nil || len(doc.Tracks) == 0 {
		return false
	}
	trackID := doc.Tracks[0].ID
	if ti, _, ok := doc.FindNote(m.d.Selection.Anchor); ok && m.d.Selection.Anchor != "" {
		trackID = doc.Tracks[ti].ID
	}
	at := (*PlayModel)(m).Status().Time
	defer (*Model)(m).change("PasteNotes", DocumentChange, MajorChange)()
	ids := make([]string, 0, len(c.Notes))
	for _, n := range c.Notes {
		id, ok := (*DocumentModel)(m).AddNote(trackID, NoteFields{
			Pitch:    n.Pitch,
			Start:    at + n.Start,
			Duration: n.Duration,
			Velocity: n.Velocity,
		})
		if ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		(*Model)(m).cancel()
		return false
	}
	m.SelectNotes(ids, false)
	return true
}
