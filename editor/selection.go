package editor

import (
	"sort"

	"github.com/a5af/pianoroll"
)

// Selection is the set of selected note ids plus the anchor, the note the
// selection was started from. Ids may go stale when notes are deleted;
// readers filter them against the document.
type Selection struct {
	IDs    map[string]struct{}
	Anchor string `json:",omitempty"`
}

func (s Selection) Copy() Selection {
	ids := make(map[string]struct{}, len(s.IDs))
	for id := range s.IDs {
		ids[id] = struct{}{}
	}
	return Selection{IDs: ids, Anchor: s.Anchor}
}

func (s Selection) Has(id string) bool {
	_, ok := s.IDs[id]
	return ok
}

func (s Selection) Len() int { return len(s.IDs) }

// List returns the ids in sorted order.
func (s Selection) List() []string {
	ret := make([]string, 0, len(s.IDs))
	for id := range s.IDs {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

// Selection returns the selection view of the session.
func (m *Model) Selection() *SelectionModel { return (*SelectionModel)(m) }

type SelectionModel Model

func (m *SelectionModel) change(kind string) func() {
	return (*Model)(m).change("Selection."+kind, SelectionChange, MinorChange)
}

// State returns a copy of the selection.
func (m *SelectionModel) State() Selection { return m.d.Selection.Copy() }

func (m *SelectionModel) Contains(id string) bool { return m.d.Selection.Has(id) }

// SelectNote selects a single note. When extending, the note is added to the
// selection and the anchor is kept; otherwise it replaces the selection and
// becomes the anchor.
func (m *SelectionModel) SelectNote(id string, extend bool) {
	defer m.change("SelectNote")()
	if !extend {
		m.d.Selection = Selection{IDs: map[string]struct{}{}, Anchor: id}
	}
	m.d.Selection.IDs[id] = struct{}{}
}

// SelectNotes is the batch form of SelectNote. Without extending, the first
// id becomes the anchor.
func (m *SelectionModel) SelectNotes(ids []string, extend bool) {
	defer m.change("SelectNotes")()
	if !extend {
		m.d.Selection = Selection{IDs: map[string]struct{}{}}
		if len(ids) > 0 {
			m.d.Selection.Anchor = ids[0]
		}
	}
	for _, id := range ids {
		m.d.Selection.IDs[id] = struct{}{}
	}
}

func (m *SelectionModel) DeselectNote(id string) {
	defer m.change("DeselectNote")()
	delete(m.d.Selection.IDs, id)
}

func (m *SelectionModel) ClearSelection() {
	defer m.change("ClearSelection")()
	m.d.Selection = Selection{IDs: map[string]struct{}{}}
}

// Selected returns the selected notes that still exist, in document order.
func (m *SelectionModel) Selected() []pianoroll.NoteRef {
	if m.d.Document == nil || len(m.d.Selection.IDs) == 0 {
		return nil
	}
	var ret []pianoroll.NoteRef
	for _, t := range m.d.Document.Tracks {
		for _, n := range t.Notes {
			if m.d.Selection.Has(n.ID) {
				ret = append(ret, pianoroll.NoteRef{TrackID: t.ID, Note: n})
			}
		}
	}
	return ret
}

// byTrack groups the selected, existing note ids by track id.
func (m *SelectionModel) byTrack() (trackIDs []string, ids map[string][]string) {
	ids = map[string][]string{}
	for _, r := range m.Selected() {
		if _, ok := ids[r.TrackID]; !ok {
			trackIDs = append(trackIDs, r.TrackID)
		}
		ids[r.TrackID] = append(ids[r.TrackID], r.Note.ID)
	}
	return trackIDs, ids
}

// SelectAll returns an Action selecting every note of the document.
func (m *SelectionModel) SelectAll() Action { return MakeAction((*selectAll)(m)) }

type selectAll SelectionModel

func (m *selectAll) Enabled() bool { return m.d.Document != nil && m.d.Document.NoteCount() > 0 }
func (m *selectAll) Do() {
	refs := m.d.Document.AllNotes()
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.Note.ID
	}
	(*SelectionModel)(m).SelectNotes(ids, false)
}

// Clear returns an Action clearing the selection.
func (m *SelectionModel) Clear() Action { return MakeAction((*clearSelection)(m)) }

type clearSelection SelectionModel

func (m *clearSelection) Enabled() bool { return len(m.d.Selection.IDs) > 0 }
func (m *clearSelection) Do()           { (*SelectionModel)(m).ClearSelection() }
