package editor

import (
	"time"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/geom"
	log "github.com/sirupsen/logrus"
)

type (
	// modelData is the part of the session that is saved to the recovery
	// file.
	modelData struct {
		Document             *pianoroll.Document
		View                 ViewState
		Selection            Selection
		Tool                 Tool
		FilePath             string
		ChangedSinceSave     bool
		RecoveryFilePath     string
		ChangedSinceRecovery bool
	}

	// Model is one editor session. It owns the document, the view state and
	// the selection. It is not safe for concurrent use: it belongs to the GUI
	// goroutine and other goroutines talk to it through the Broker.
	Model struct {
		d modelData

		interaction interaction
		play        playState
		follow      bool
		alerts      Alerts
		dialog      Dialog
		quitted     bool

		undoStack    []*pianoroll.Document
		redoStack    []*pianoroll.Document
		prevUndoKind string

		changeLevel  int
		changeCancel bool
		changeBackup *pianoroll.Document

		version     uint64
		subscribers []subscriber
		nextSubID   int

		broker *Broker
		log    log.FieldLogger
		now    func() time.Time
	}

	// Snapshot is a consistent view of the session at one moment. The
	// Document is shared with the session and must be treated as read-only;
	// every change to the document installs a new copy, so a Snapshot keeps
	// seeing the document as it was.
	Snapshot struct {
		Version     uint64
		Document    *pianoroll.Document
		View        ViewState
		Selection   Selection
		Tool        Tool
		Interaction InteractionState
		DragRect    geom.Rect
		Playback    PlaybackStatus
	}

	subscriber struct {
		id int
		fn func(Snapshot)
	}

	ChangeType int

	ChangeSeverity int
)

const (
	// ViewChange covers zoom, scroll, snap, tool and transient interaction
	// state. It never enters the undo history.
	ViewChange ChangeType = iota
	SelectionChange
	DocumentChange
)

const (
	// MinorChange merges with the previous undo entry of the same kind, e.g.
	// successive nudges of the same notes.
	MinorChange ChangeSeverity = iota
	MajorChange
)

const maxUndo = 64

// NewModel creates an empty session. recoveryFilePath may be empty to disable
// recovery files.
func NewModel(broker *Broker, recoveryFilePath string) *Model {
	m := &Model{
		broker: broker,
		log:    log.StandardLogger(),
		now:    time.Now,
	}
	m.d.View = DefaultViewState()
	m.d.Selection = Selection{IDs: map[string]struct{}{}}
	m.d.RecoveryFilePath = recoveryFilePath
	m.alerts.log = m.log
	return m
}

// SetLogger replaces the logger, which defaults to the logrus standard logger.
func (m *Model) SetLogger(l log.FieldLogger) {
	m.log = l
	m.alerts.log = l
}

// SetClock replaces the wall clock used by the playback transport.
func (m *Model) SetClock(now func() time.Time) { m.now = now }

func (m *Model) Broker() *Broker { return m.broker }
func (m *Model) Alerts() *Alerts { return &m.alerts }

func (m *Model) Log() log.FieldLogger { return m.log }

// Document returns the current document, or nil if none is loaded. The
// returned document must not be modified.
func (m *Model) Document() *pianoroll.Document { return m.d.Document }

// Version increases every time the session changes.
func (m *Model) Version() uint64 { return m.version }

// Snapshot returns the current state of the session.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Version:     m.version,
		Document:    m.d.Document,
		View:        m.d.View,
		Selection:   m.d.Selection.Copy(),
		Tool:        m.d.Tool,
		Interaction: m.interaction.state,
		Playback:    m.Play().Status(),
	}
	if m.interaction.state == DraggingSelectionRect {
		s.DragRect = m.interaction.rect
	}
	return s
}

// Subscribe registers fn to be called with a fresh snapshot after every
// committed change. The returned func removes the subscription.
func (m *Model) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subscribers {
			if s.id == id {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

// ProcessMsg handles a message posted to the Broker's ToModel channel.
func (m *Model) ProcessMsg(msg MsgToModel) {
	switch e := msg.Data.(type) {
	case func():
		e()
	case Alert:
		m.Alerts().AddAlert(e)
	case pianoroll.Document:
		m.LoadDocument(e)
	}
}

// LoadDocument installs doc as the current document, replacing the previous
// one wholesale. The selection, undo history and playback position are
// reset.
func (m *Model) LoadDocument(doc pianoroll.Document) {
	c := doc.Copy()
	m.d.Document = &c
	m.d.Selection = Selection{IDs: map[string]struct{}{}}
	m.d.ChangedSinceSave = false
	m.d.ChangedSinceRecovery = true
	m.interaction = interaction{}
	m.play = playState{}
	m.undoStack = nil
	m.redoStack = nil
	m.prevUndoKind = ""
	m.log.WithFields(log.Fields{
		"title":  c.Title,
		"tracks": len(c.Tracks),
		"notes":  c.NoteCount(),
	}).Info("document loaded")
	if m.broker != nil {
		TrySend(m.broker.ToGUI, any(MsgToGUI{Kind: GUIMessageFitDocument}))
	}
	m.commit()
}

// CloseDocument clears the session.
func (m *Model) CloseDocument() {
	m.d.Document = nil
	m.d.FilePath = ""
	m.d.Selection = Selection{IDs: map[string]struct{}{}}
	m.d.ChangedSinceSave = false
	m.interaction = interaction{}
	m.play = playState{}
	m.undoStack = nil
	m.redoStack = nil
	m.commit()
}

// change starts a change of the session and returns the func that commits
// it, to be deferred. Changes nest; only the outermost commit notifies
// subscribers. A document change makes a private copy of the document on
// entry, so the previous version can go to the undo stack untouched. Calling
// cancel inside the change rolls the document back.
func (m *Model) change(kind string, t ChangeType, severity ChangeSeverity) func() {
	if m.changeLevel == 0 {
		m.changeCancel = false
	}
	if t == DocumentChange && m.changeBackup == nil && m.d.Document != nil {
		m.changeBackup = m.d.Document
		c := m.d.Document.Copy()
		m.d.Document = &c
	}
	m.changeLevel++
	return func() {
		m.changeLevel--
		if m.changeLevel > 0 {
			return
		}
		backup := m.changeBackup
		m.changeBackup = nil
		if m.changeCancel {
			if backup != nil {
				m.d.Document = backup
			}
			m.changeCancel = false
			return
		}
		if backup != nil {
			if severity == MajorChange || m.prevUndoKind != kind {
				m.undoStack = append(m.undoStack, backup)
				if len(m.undoStack) > maxUndo {
					m.undoStack = m.undoStack[len(m.undoStack)-maxUndo:]
				}
			}
			m.redoStack = m.redoStack[:0]
			m.prevUndoKind = kind
			if severity == MajorChange {
				m.prevUndoKind = ""
			}
			m.d.ChangedSinceSave = true
			m.d.ChangedSinceRecovery = true
		}
		m.commit()
	}
}

// cancel marks the current change as a no-op.
func (m *Model) cancel() { m.changeCancel = true }

func (m *Model) commit() {
	m.version++
	if len(m.subscribers) == 0 {
		return
	}
	s := m.Snapshot()
	for _, sub := range append([]subscriber(nil), m.subscribers...) {
		sub.fn(s)
	}
}

// bpm is the tempo used for the grid and snapping.
func (m *Model) bpm() float64 {
	if m.d.Document == nil {
		return pianoroll.DefaultBPM
	}
	return m.d.Document.BPM()
}
