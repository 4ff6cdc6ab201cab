package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/midifile"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Dialog int

const (
	NoDialog Dialog = iota
	OpenFileChanges
	OpenFileSaveExplorer
	OpenFileExplorer
	SaveAsExplorer
	QuitChanges
	QuitSaveExplorer
)

var (
	ErrNoDocument = errors.New("no document loaded")
	ErrNoFilePath = errors.New("document has no file path")
)

// DecodeDocument decodes a Standard MIDI File or a document in the native
// yaml format. The result is validated as a whole: a malformed document is an
// error, never a partial document.
func DecodeDocument(data []byte) (pianoroll.Document, error) {
	if midifile.IsSMF(data) {
		doc, err := midifile.Decode(bytes.NewReader(data))
		if err != nil {
			return pianoroll.Document{}, err
		}
		return doc, nil
	}
	var doc pianoroll.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return pianoroll.Document{}, fmt.Errorf("could not parse document: %w", err)
	}
	if len(doc.Tracks) == 0 {
		return pianoroll.Document{}, errors.New("could not parse document: no tracks")
	}
	if err := normalize(&doc); err != nil {
		return pianoroll.Document{}, err
	}
	return doc, nil
}

// normalize fills in the derived fields of a hand-written document and
// rejects notes that can not be edited.
func normalize(doc *pianoroll.Document) error {
	if doc.Title == "" {
		doc.Title = "Untitled"
	}
	if doc.PPQ <= 0 {
		doc.PPQ = pianoroll.DefaultPPQ
	}
	trackIDs := map[string]bool{}
	for i := range doc.Tracks {
		t := &doc.Tracks[i]
		if t.ID == "" || trackIDs[t.ID] {
			t.ID = pianoroll.NewID()
		}
		trackIDs[t.ID] = true
		if t.Name == "" {
			t.Name = fmt.Sprintf("Track %d", i+1)
		}
		if t.Color == "" {
			t.Color = pianoroll.PaletteColor(i)
		}
		noteIDs := map[string]bool{}
		for j := range t.Notes {
			n := &t.Notes[j]
			if !(n.Duration > 0) || n.Start < 0 {
				return fmt.Errorf("track %q note %d: invalid start %v or duration %v", t.Name, j, n.Start, n.Duration)
			}
			if n.ID == "" || noteIDs[n.ID] {
				n.ID = pianoroll.NewID()
			}
			noteIDs[n.ID] = true
			n.Pitch = pianoroll.ClampPitch(n.Pitch)
			n.Name = pianoroll.NoteName(n.Pitch)
			n.Velocity = clampVelocity(n.Velocity)
		}
	}
	solo := false
	for i := range doc.Tracks {
		doc.Tracks[i].Solo = doc.Tracks[i].Solo && !solo
		solo = solo || doc.Tracks[i].Solo
	}
	doc.UpdateDuration()
	return nil
}

// EncodeDocument serializes the document according to the extension of path:
// .mid and .midi give a Standard MIDI File, anything else the yaml format.
func EncodeDocument(doc pianoroll.Document, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		var buf bytes.Buffer
		if err := midifile.Encode(doc, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not marshal document: %w", err)
	}
	return b, nil
}

// ReadDocument decodes r and installs the result. On failure an error alert
// is shown and the current document is left untouched.
func (m *Model) ReadDocument(r io.ReadCloser) error {
	b, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error reading file: %v", err), Error)
		return fmt.Errorf("could not read document: %w", err)
	}
	doc, err := DecodeDocument(b)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error opening file: %v", err), Error)
		return err
	}
	m.LoadDocument(doc)
	if f, ok := r.(*os.File); ok {
		m.d.FilePath = f.Name()
	}
	m.completeAction(false)
	return nil
}

// WriteDocument encodes the document to w, choosing the format from the file
// name when w is a file.
func (m *Model) WriteDocument(w io.WriteCloser) error {
	if m.d.Document == nil {
		w.Close()
		return ErrNoDocument
	}
	path := ""
	if f, ok := w.(*os.File); ok {
		path = f.Name()
	}
	contents, err := EncodeDocument(*m.d.Document, path)
	if err != nil {
		w.Close()
		m.Alerts().Add(fmt.Sprintf("Error saving file: %v", err), Error)
		return err
	}
	if _, err := w.Write(contents); err != nil {
		w.Close()
		m.Alerts().Add(fmt.Sprintf("Error writing to file: %v", err), Error)
		return fmt.Errorf("could not write document: %w", err)
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing file: %v", err), Error)
		return fmt.Errorf("could not close document: %w", err)
	}
	if path != "" {
		m.d.FilePath = path
		m.d.ChangedSinceSave = false
	}
	m.log.WithFields(log.Fields{"path": path, "bytes": len(contents)}).Info("document saved")
	m.completeAction(false)
	return nil
}

// SaveToFile writes the document to its file path.
func (m *Model) SaveToFile() error {
	if m.d.Document == nil {
		return ErrNoDocument
	}
	if m.d.FilePath == "" {
		return ErrNoFilePath
	}
	f, err := os.Create(m.d.FilePath)
	if err != nil {
		m.Alerts().Add("Error creating file: "+err.Error(), Error)
		return fmt.Errorf("could not create file: %w", err)
	}
	return m.WriteDocument(f)
}

func (m *Model) FilePath() String { return MakeString((*filePath)(m)) }

type filePath Model

func (v *filePath) Value() string              { return v.d.FilePath }
func (v *filePath) SetValue(value string) bool { v.d.FilePath = value; return true }

func (m *Model) ChangedSinceSave() bool { return m.d.ChangedSinceSave }
func (m *Model) Dialog() Dialog         { return m.dialog }
func (m *Model) Quitted() bool          { return m.quitted }

// OpenFile asks for a file to open, first offering to save unsaved changes.
func (m *Model) OpenFile() Action { return MakeAction((*openFile)(m)) }

type openFile Model

func (m *openFile) Do() {
	if m.d.ChangedSinceSave {
		m.dialog = OpenFileChanges
	} else {
		m.dialog = OpenFileExplorer
	}
}

// SaveFile saves to the current file path, asking for one if there is none.
func (m *Model) SaveFile() Action { return MakeAction((*saveFile)(m)) }

type saveFile Model

func (m *saveFile) Enabled() bool { return m.d.Document != nil }
func (m *saveFile) Do() {
	if m.d.FilePath == "" {
		switch m.dialog {
		case OpenFileChanges:
			m.dialog = OpenFileSaveExplorer
		case QuitChanges:
			m.dialog = QuitSaveExplorer
		default:
			m.dialog = SaveAsExplorer
		}
		return
	}
	(*Model)(m).SaveToFile()
}

func (m *Model) SaveFileAs() Action { return MakeAction((*saveFileAs)(m)) }

type saveFileAs Model

func (m *saveFileAs) Enabled() bool { return m.d.Document != nil }
func (m *saveFileAs) Do()           { m.dialog = SaveAsExplorer }

func (m *Model) DiscardChanges() Action { return MakeAction((*discardChanges)(m)) }

type discardChanges Model

func (m *discardChanges) Do() { (*Model)(m).completeAction(false) }

func (m *Model) Cancel() Action { return MakeAction((*cancelDialog)(m)) }

type cancelDialog Model

func (m *cancelDialog) Do() { m.dialog = NoDialog }

// Quit asks to quit, first offering to save unsaved changes.
func (m *Model) Quit() Action { return MakeAction((*quit)(m)) }

type quit Model

func (m *quit) Do() {
	if m.d.ChangedSinceSave {
		m.dialog = QuitChanges
		return
	}
	m.quitted = true
}

// ForceQuit quits without asking.
func (m *Model) ForceQuit() Action { return MakeAction((*forceQuit)(m)) }

type forceQuit Model

func (m *forceQuit) Do() { m.quitted = true }

func (m *Model) completeAction(checkSave bool) {
	if checkSave && m.d.ChangedSinceSave {
		return
	}
	switch m.dialog {
	case OpenFileChanges, OpenFileSaveExplorer:
		m.dialog = OpenFileExplorer
	case QuitChanges, QuitSaveExplorer:
		m.quitted = true
		m.dialog = NoDialog
	default:
		m.dialog = NoDialog
	}
}
