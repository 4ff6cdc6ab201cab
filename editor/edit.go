package editor

import (
	"math"
	"slices"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/geom"
)

type (
	// NoteFields are the fields of a new note; the id and name are derived.
	NoteFields struct {
		Pitch    int
		Start    float64
		Duration float64
		Velocity float64
	}

	// NotePatch changes the fields that are not nil.
	NotePatch struct {
		Pitch    *int
		Start    *float64
		Duration *float64
		Velocity *float64
	}

	TrackPatch struct {
		Name       *string
		Instrument *string
	}
)

// Edit returns the document-editing view of the session. Every method is a
// no-op when no document is loaded or the track does not exist.
func (m *Model) Edit() *DocumentModel { return (*DocumentModel)(m) }

type DocumentModel Model

func (m *DocumentModel) change(kind string, severity ChangeSeverity) func() {
	return (*Model)(m).change(kind, DocumentChange, severity)
}

func (m *DocumentModel) track(id string) *pianoroll.Track {
	if m.d.Document == nil {
		return nil
	}
	return m.d.Document.Track(id)
}

// AddNote appends a note with a fresh id to the track and returns the id.
// Notes without a positive duration are rejected.
func (m *DocumentModel) AddNote(trackID string, f NoteFields) (id string, ok bool) {
	if m.track(trackID) == nil || !(f.Duration > 0) {
		return "", false
	}
	defer m.change("AddNote", MajorChange)()
	t := m.track(trackID)
	id = pianoroll.NewID()
	t.Notes = append(t.Notes, newNote(id, f))
	m.d.Document.UpdateDuration()
	return id, true
}

func newNote(id string, f NoteFields) pianoroll.Note {
	p := pianoroll.ClampPitch(f.Pitch)
	return pianoroll.Note{
		ID:       id,
		Pitch:    p,
		Start:    math.Max(f.Start, 0),
		Duration: f.Duration,
		Velocity: clampVelocity(f.Velocity),
		Name:     pianoroll.NoteName(p),
	}
}

func clampVelocity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}

// UpdateNote merges the set fields of the patch into the note. A patch with a
// non-positive duration is rejected as a whole.
func (m *DocumentModel) UpdateNote(trackID, noteID string, p NotePatch) {
	t := m.track(trackID)
	if t == nil || t.NoteIndex(noteID) < 0 {
		return
	}
	if p.Duration != nil && !(*p.Duration > 0) {
		return
	}
	defer m.change("UpdateNote", MajorChange)()
	t = m.track(trackID)
	n := &t.Notes[t.NoteIndex(noteID)]
	if p.Pitch != nil {
		n.Pitch = pianoroll.ClampPitch(*p.Pitch)
		n.Name = pianoroll.NoteName(n.Pitch)
	}
	if p.Start != nil {
		n.Start = math.Max(*p.Start, 0)
	}
	if p.Duration != nil {
		n.Duration = *p.Duration
	}
	if p.Velocity != nil {
		n.Velocity = clampVelocity(*p.Velocity)
	}
	m.d.Document.UpdateDuration()
}

func (m *DocumentModel) DeleteNote(trackID, noteID string) {
	m.DeleteNotes(trackID, []string{noteID})
}

// DeleteNotes removes the notes with the given ids; unknown ids are ignored.
// The selection is left alone.
func (m *DocumentModel) DeleteNotes(trackID string, ids []string) {
	if m.track(trackID) == nil {
		return
	}
	defer m.change("DeleteNotes", MajorChange)()
	del := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		del[id] = struct{}{}
	}
	t := m.track(trackID)
	kept := t.Notes[:0]
	for _, n := range t.Notes {
		if _, ok := del[n.ID]; !ok {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(t.Notes) {
		(*Model)(m).cancel()
		return
	}
	t.Notes = kept
}

// MoveNotes shifts the notes by dt seconds and dp semitones. Each note is
// clamped on its own: start to >= 0 and pitch to the MIDI range.
func (m *DocumentModel) MoveNotes(trackID string, ids []string, dt float64, dp int) {
	if m.track(trackID) == nil || !finite(dt) {
		return
	}
	defer m.change("MoveNotes", MajorChange)()
	m.moveNotes(trackID, ids, dt, dp)
}

func (m *DocumentModel) moveNotes(trackID string, ids []string, dt float64, dp int) {
	t := m.track(trackID)
	moved := false
	for _, id := range ids {
		i := t.NoteIndex(id)
		if i < 0 {
			continue
		}
		n := &t.Notes[i]
		n.Start = math.Max(0, n.Start+dt)
		n.Pitch = pianoroll.ClampPitch(n.Pitch + geom.Clamp(dp, -pianoroll.MaxPitch, pianoroll.MaxPitch))
		n.Name = pianoroll.NoteName(n.Pitch)
		moved = true
	}
	if !moved {
		(*Model)(m).cancel()
		return
	}
	m.d.Document.UpdateDuration()
}

// ToggleTrackSolo flips the solo flag of the track. Enabling it clears the
// flag of every other track in the same change.
func (m *DocumentModel) ToggleTrackSolo(trackID string) {
	if m.track(trackID) == nil {
		return
	}
	defer m.change("ToggleTrackSolo", MajorChange)()
	for i := range m.d.Document.Tracks {
		t := &m.d.Document.Tracks[i]
		if t.ID == trackID {
			t.Solo = !t.Solo
		} else {
			t.Solo = false
		}
	}
}

func (m *DocumentModel) ToggleTrackMute(trackID string) {
	if m.track(trackID) == nil {
		return
	}
	defer m.change("ToggleTrackMute", MajorChange)()
	t := m.track(trackID)
	t.Mute = !t.Mute
}

func (m *DocumentModel) UpdateTrack(trackID string, p TrackPatch) {
	if m.track(trackID) == nil {
		return
	}
	defer m.change("UpdateTrack", MajorChange)()
	t := m.track(trackID)
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Instrument != nil {
		t.Instrument = *p.Instrument
	}
}

// SplitNote cuts the note in two at time at. The first half keeps the id;
// the id of the second half is returned. Nothing happens unless the note
// strictly contains at.
func (m *DocumentModel) SplitNote(trackID, noteID string, at float64) (id string, ok bool) {
	t := m.track(trackID)
	if t == nil {
		return "", false
	}
	i := t.NoteIndex(noteID)
	if i < 0 || !(t.Notes[i].Start < at && at < t.Notes[i].End()) {
		return "", false
	}
	defer m.change("SplitNote", MajorChange)()
	t = m.track(trackID)
	first := t.Notes[i]
	second := first
	second.ID = pianoroll.NewID()
	second.Start = at
	second.Duration = first.End() - at
	first.Duration = at - first.Start
	t.Notes[i] = first
	t.Notes = slices.Insert(t.Notes, i+1, second)
	return second.ID, true
}

// MoveSelected moves the selected notes of every track. Successive moves
// merge into one undo step.
func (m *DocumentModel) MoveSelected(dt float64, dp int) {
	trackIDs, ids := (*SelectionModel)(m).byTrack()
	if len(trackIDs) == 0 || !finite(dt) {
		return
	}
	defer m.change("MoveSelected", MinorChange)()
	for _, tid := range trackIDs {
		m.moveNotes(tid, ids[tid], dt, dp)
	}
}

// DeleteSelected returns an Action deleting the selected notes and clearing
// the selection.
func (m *DocumentModel) DeleteSelected() Action { return MakeAction((*deleteSelected)(m)) }

type deleteSelected DocumentModel

func (m *deleteSelected) Enabled() bool { return len((*SelectionModel)(m).Selected()) > 0 }
func (m *deleteSelected) Do() {
	trackIDs, ids := (*SelectionModel)(m).byTrack()
	defer (*Model)(m).change("DeleteSelected", DocumentChange, MajorChange)()
	for _, tid := range trackIDs {
		(*DocumentModel)(m).DeleteNotes(tid, ids[tid])
	}
	m.d.Selection = Selection{IDs: map[string]struct{}{}}
}

// Nudge returns an Action moving the selection by steps grid steps and
// semitones semitones.
func (m *DocumentModel) Nudge(steps, semitones int) Action {
	return MakeAction(&nudge{m: m, steps: steps, semitones: semitones})
}

type nudge struct {
	m                *DocumentModel
	steps, semitones int
}

func (n *nudge) Enabled() bool { return len((*SelectionModel)(n.m).Selected()) > 0 }
func (n *nudge) Do() {
	dt := float64(n.steps) * (*ViewModel)(n.m).GridStep()
	n.m.MoveSelected(dt, n.semitones)
}

// TrackSolo returns a Bool for the solo toggle of the track.
func (m *DocumentModel) TrackSolo(trackID string) Bool {
	return MakeBool(&trackFlag{m: m, id: trackID, solo: true})
}

// TrackMute returns a Bool for the mute toggle of the track.
func (m *DocumentModel) TrackMute(trackID string) Bool {
	return MakeBool(&trackFlag{m: m, id: trackID})
}

type trackFlag struct {
	m    *DocumentModel
	id   string
	solo bool
}

func (f *trackFlag) Value() bool {
	t := f.m.track(f.id)
	if t == nil {
		return false
	}
	if f.solo {
		return t.Solo
	}
	return t.Mute
}

func (f *trackFlag) SetValue(bool) {
	if f.solo {
		f.m.ToggleTrackSolo(f.id)
	} else {
		f.m.ToggleTrackMute(f.id)
	}
}

func (f *trackFlag) Enabled() bool { return f.m.track(f.id) != nil }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
