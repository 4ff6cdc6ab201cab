package editor_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDocument = `
title: Sketch
tracks:
  - name: Piano
    notes:
      - {pitch: 60, start: 0, duration: 0.5, velocity: 0.9}
      - {pitch: 200, start: 0.5, duration: 0.5, velocity: 3}
  - name: Strings
    solo: true
    notes:
      - {pitch: 48, start: 0, duration: 2, velocity: 0.5}
  - name: Pad
    solo: true
    notes: []
`

func TestDecodeYAMLDocument(t *testing.T) {
	doc, err := editor.DecodeDocument([]byte(yamlDocument))
	require.NoError(t, err)
	assert.Equal(t, "Sketch", doc.Title)
	assert.Equal(t, pianoroll.DefaultPPQ, doc.PPQ)
	require.Len(t, doc.Tracks, 3)
	assert.NotEmpty(t, doc.Tracks[0].ID)
	assert.Equal(t, pianoroll.PaletteColor(1), doc.Tracks[1].Color)
	n := doc.Tracks[0].Notes[1]
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, 127, n.Pitch)
	assert.Equal(t, "G9", n.Name)
	assert.Equal(t, 1.0, n.Velocity)
	assert.True(t, doc.Tracks[1].Solo)
	assert.False(t, doc.Tracks[2].Solo)
	assert.Equal(t, 2.0, doc.Duration)
}

func TestDecodeRejectsInvalidNotes(t *testing.T) {
	_, err := editor.DecodeDocument([]byte("tracks:\n  - notes:\n      - {pitch: 60, start: 0, duration: 0}\n"))
	assert.Error(t, err)
	_, err = editor.DecodeDocument([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestReadDocumentFailureKeepsDocument(t *testing.T) {
	m := newTestModel(t)
	doc := m.Document()
	err := m.ReadDocument(&myWriteCloser{bytes.NewBufferString("tracks: 42")})
	assert.Error(t, err)
	assert.Same(t, doc, m.Document())
	found := false
	for _, a := range m.Alerts().Iterate {
		found = found || a.Priority == editor.Error
	}
	assert.True(t, found, "expected an error alert")
}

func TestWriteAndReadBackMIDI(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "song.mid")
	m.FilePath().SetValue(path)
	require.NoError(t, m.SaveToFile())
	assert.False(t, m.ChangedSinceSave())

	f, err := os.Open(path)
	require.NoError(t, err)
	m2 := editor.NewModel(nil, "")
	require.NoError(t, m2.ReadDocument(f))
	assert.Equal(t, path, m2.FilePath().Value())
	doc := m2.Document()
	require.Len(t, doc.Tracks, 2)
	assert.Equal(t, "Lead", doc.Tracks[0].Name)
	require.Len(t, doc.Tracks[0].Notes, 3)
	assert.Equal(t, 64, doc.Tracks[0].Notes[1].Pitch)
	assert.InDelta(t, 0.5, doc.Tracks[0].Notes[1].Start, 1e-3)
}

func TestWriteYAMLByExtension(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "song.yml")
	m.FilePath().SetValue(path)
	require.NoError(t, m.SaveToFile())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := editor.DecodeDocument(b)
	require.NoError(t, err)
	assert.Equal(t, m.Document().AllNotes(), doc.AllNotes())
}

func TestSaveErrors(t *testing.T) {
	m := editor.NewModel(nil, "")
	assert.True(t, errors.Is(m.SaveToFile(), editor.ErrNoDocument))
	m.LoadDocument(testDocument())
	assert.True(t, errors.Is(m.SaveToFile(), editor.ErrNoFilePath))
}

func TestQuitAsksWhenChanged(t *testing.T) {
	m := newTestModel(t)
	m.Quit().Do()
	assert.True(t, m.Quitted())

	m = newTestModel(t)
	m.Edit().DeleteNote("a", "n1")
	m.Quit().Do()
	assert.False(t, m.Quitted())
	assert.Equal(t, editor.QuitChanges, m.Dialog())
	m.SaveFile().Do()
	assert.Equal(t, editor.QuitSaveExplorer, m.Dialog())
	m.DiscardChanges().Do()
	assert.True(t, m.Quitted())
}

func TestRecoveryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery.json")
	m := editor.NewModel(nil, path)
	m.LoadDocument(testDocument())
	m.View().SetHorizontalZoom(250)
	m.Selection().SelectNote("n2", false)
	require.NoError(t, m.History().SaveRecovery())

	m2 := editor.NewModel(nil, path)
	require.True(t, m2.History().LoadRecoveryFile())
	assert.Equal(t, 250.0, m2.View().State().Zoom.Horizontal)
	assert.True(t, m2.Selection().Contains("n2"))
	assert.Equal(t, m.Document().AllNotes(), m2.Document().AllNotes())

	data := m2.History().MarshalRecovery()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	m3 := editor.NewModel(nil, "")
	m3.History().UnmarshalRecovery(data)
	assert.Equal(t, 4, m3.Document().NoteCount())
}
