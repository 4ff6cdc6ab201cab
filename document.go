package pianoroll

import "math"

type (
	// Document is the musical content of one opened file: the tracks with
	// their notes plus the tempo and meter maps, which are read-only.
	Document struct {
		Title          string
		Duration       float64 `yaml:",omitempty"`
		PPQ            int
		Tracks         []Track
		Tempos         []Tempo         `yaml:",flow,omitempty"`
		TimeSignatures []TimeSignature `yaml:",flow,omitempty"`
	}

	Tempo struct {
		BPM  float64
		Tick int
	}

	TimeSignature struct {
		Numerator   int
		Denominator int
		Measure     int
		Tick        int
	}

	// NoteRef is a note together with the id of the track owning it.
	NoteRef struct {
		TrackID string
		Note    Note
	}
)

const DefaultPPQ = 480

func (d *Document) Copy() Document {
	tracks := make([]Track, len(d.Tracks))
	for i := range d.Tracks {
		tracks[i] = d.Tracks[i].Copy()
	}
	ret := *d
	ret.Tracks = tracks
	ret.Tempos = append([]Tempo(nil), d.Tempos...)
	ret.TimeSignatures = append([]TimeSignature(nil), d.TimeSignatures...)
	return ret
}

// BPM returns the first tempo of the tempo map, or DefaultBPM when the map is
// empty.
func (d *Document) BPM() float64 {
	if len(d.Tempos) == 0 || d.Tempos[0].BPM <= 0 {
		return DefaultBPM
	}
	return d.Tempos[0].BPM
}

// TrackIndex returns the index of the track with the given id, or -1.
func (d *Document) TrackIndex(id string) int {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Track returns a pointer to the track with the given id, or nil.
func (d *Document) Track(id string) *Track {
	if i := d.TrackIndex(id); i >= 0 {
		return &d.Tracks[i]
	}
	return nil
}

// FindNote locates a note by id across all tracks.
func (d *Document) FindNote(id string) (trackIndex, noteIndex int, ok bool) {
	for i := range d.Tracks {
		if j := d.Tracks[i].NoteIndex(id); j >= 0 {
			return i, j, true
		}
	}
	return -1, -1, false
}

// NoteCount returns the number of notes on all tracks.
func (d *Document) NoteCount() (n int) {
	for i := range d.Tracks {
		n += len(d.Tracks[i].Notes)
	}
	return n
}

// AllNotes lists every note in document order: tracks in order, notes in
// stored order.
func (d *Document) AllNotes() []NoteRef {
	ret := make([]NoteRef, 0, d.NoteCount())
	for _, t := range d.Tracks {
		for _, n := range t.Notes {
			ret = append(ret, NoteRef{TrackID: t.ID, Note: n})
		}
	}
	return ret
}

// NotesForTrack returns the notes of a track, or nil for an unknown track.
func (d *Document) NotesForTrack(id string) []Note {
	if t := d.Track(id); t != nil {
		return t.Notes
	}
	return nil
}

// NotesInRange returns the notes of all tracks that sound inside [start,end).
func (d *Document) NotesInRange(start, end float64) []NoteRef {
	return d.notesInRange(start, end, false)
}

// AudibleNotesInRange is like NotesInRange but leaves out muted tracks and,
// when some track is soloed, all tracks that are not.
func (d *Document) AudibleNotesInRange(start, end float64) []NoteRef {
	return d.notesInRange(start, end, true)
}

func (d *Document) notesInRange(start, end float64, audibleOnly bool) []NoteRef {
	anySolo := d.AnySolo()
	var ret []NoteRef
	for i := range d.Tracks {
		t := &d.Tracks[i]
		if audibleOnly && !t.Audible(anySolo) {
			continue
		}
		for _, n := range NotesInRange(t.Notes, start, end) {
			ret = append(ret, NoteRef{TrackID: t.ID, Note: n})
		}
	}
	return ret
}

// AnySolo tells if some track is soloed.
func (d *Document) AnySolo() bool {
	for i := range d.Tracks {
		if d.Tracks[i].Solo {
			return true
		}
	}
	return false
}

// Bounds returns the extent of all notes of the document.
func (d *Document) Bounds() (Bounds, bool) {
	b := Bounds{Start: math.Inf(1), End: math.Inf(-1), Low: MaxPitch + 1, High: MinPitch - 1}
	ok := false
	for i := range d.Tracks {
		for _, n := range d.Tracks[i].Notes {
			b = b.include(n)
			ok = true
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

// UpdateDuration sets Duration to the end of the last note, keeping a longer
// duration read from the file.
func (d *Document) UpdateDuration() {
	if b, ok := d.Bounds(); ok && b.End > d.Duration {
		d.Duration = b.End
	}
}
