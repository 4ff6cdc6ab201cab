package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// History returns the undo/redo view of the session, which also saves and
// restores recovery files.
func (m *Model) History() *HistoryModel { return (*HistoryModel)(m) }

type HistoryModel Model

// Undo returns an Action restoring the document before the last change. The
// view and the selection are not restored.
func (m *HistoryModel) Undo() Action { return MakeAction((*historyUndo)(m)) }

type historyUndo HistoryModel

func (m *historyUndo) Enabled() bool { return len(m.undoStack) > 0 }
func (m *historyUndo) Do() {
	m.redoStack = pushBounded(m.redoStack, m.d.Document)
	m.d.Document = m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	(*HistoryModel)(m).restored()
}

// Redo returns an Action reapplying the last undone change.
func (m *HistoryModel) Redo() Action { return MakeAction((*historyRedo)(m)) }

type historyRedo HistoryModel

func (m *historyRedo) Enabled() bool { return len(m.redoStack) > 0 }
func (m *historyRedo) Do() {
	m.undoStack = pushBounded(m.undoStack, m.d.Document)
	m.d.Document = m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	(*HistoryModel)(m).restored()
}

func (m *HistoryModel) restored() {
	m.prevUndoKind = ""
	m.d.ChangedSinceSave = true
	m.d.ChangedSinceRecovery = true
	(*Model)(m).commit()
}

func pushBounded[T any](stack []T, v T) []T {
	stack = append(stack, v)
	if len(stack) > maxUndo {
		stack = stack[len(stack)-maxUndo:]
	}
	return stack
}

// MarshalRecovery marshals the session data so it can be kept by the host
// and passed back to UnmarshalRecovery. The recovery file is removed, as the
// returned bytes supersede it.
func (m *HistoryModel) MarshalRecovery() []byte {
	out, err := json.Marshal(m.d)
	if err != nil {
		m.log.WithError(err).Error("could not marshal recovery data")
		return nil
	}
	if m.d.RecoveryFilePath != "" {
		os.Remove(m.d.RecoveryFilePath)
	}
	m.d.ChangedSinceRecovery = false
	return out
}

// SaveRecovery writes the session data to the recovery file if it has changed
// since the last save.
func (m *HistoryModel) SaveRecovery() error {
	if !m.d.ChangedSinceRecovery {
		return nil
	}
	if m.d.RecoveryFilePath == "" {
		return errors.New("no recovery file path")
	}
	out, err := json.Marshal(m.d)
	if err != nil {
		return fmt.Errorf("could not marshal recovery data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.d.RecoveryFilePath), os.ModePerm); err != nil {
		return fmt.Errorf("could not create recovery directory: %w", err)
	}
	if err := os.WriteFile(m.d.RecoveryFilePath, out, 0o644); err != nil {
		return fmt.Errorf("could not write recovery file: %w", err)
	}
	m.d.ChangedSinceRecovery = false
	m.log.WithField("path", m.d.RecoveryFilePath).Debug("recovery file saved")
	return nil
}

// UnmarshalRecovery restores the session data from bytes returned by
// MarshalRecovery. A recovery file on disk, if any, takes precedence.
func (m *HistoryModel) UnmarshalRecovery(bytes []byte) {
	var data modelData
	if err := json.Unmarshal(bytes, &data); err != nil {
		return
	}
	if data.RecoveryFilePath != "" {
		if b, err := os.ReadFile(data.RecoveryFilePath); err == nil {
			var fromDisk modelData
			if json.Unmarshal(b, &fromDisk) == nil {
				data = fromDisk
			}
		}
	}
	m.restore(data)
}

// LoadRecoveryFile restores the session from its recovery file, if one
// exists. It reports whether anything was restored.
func (m *HistoryModel) LoadRecoveryFile() bool {
	if m.d.RecoveryFilePath == "" {
		return false
	}
	b, err := os.ReadFile(m.d.RecoveryFilePath)
	if err != nil {
		return false
	}
	var data modelData
	if err := json.Unmarshal(b, &data); err != nil {
		m.log.WithError(err).Warn("ignoring corrupt recovery file")
		return false
	}
	m.restore(data)
	return true
}

func (m *HistoryModel) restore(data modelData) {
	if data.Selection.IDs == nil {
		data.Selection.IDs = map[string]struct{}{}
	}
	if data.RecoveryFilePath == "" {
		data.RecoveryFilePath = m.d.RecoveryFilePath
	}
	data.View = data.View.sanitize()
	m.d = data
	m.d.ChangedSinceRecovery = false
	m.undoStack = nil
	m.redoStack = nil
	m.prevUndoKind = ""
	m.interaction = interaction{}
	m.play = playState{}
	(*Model)(m).commit()
}
