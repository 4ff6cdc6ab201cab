package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"github.com/a5af/pianoroll/editor"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // the last key bound to an action, for hints

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	var keyBindings, userKeyBindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if b, err := readUserConfig("keybindings.yml"); err == nil {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if dec.Decode(&userKeyBindings) == nil {
			keyBindings = append(keyBindings, userKeyBindings...)
		}
	}
	for _, kb := range keyBindings {
		bind(kb)
	}
}

func bind(kb KeyBinding) {
	var mods key.Modifiers
	if kb.Shortcut {
		mods |= key.ModShortcut
	}
	if kb.Ctrl {
		mods |= key.ModCtrl
	}
	if kb.Command {
		mods |= key.ModCommand
	}
	if kb.Shift {
		mods |= key.ModShift
	}
	if kb.Alt {
		mods |= key.ModAlt
	}
	if kb.Super {
		mods |= key.ModSuper
	}
	keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
	if action, ok := keyBindingMap[keyEvent]; ok {
		delete(keyActionMap, KeyAction(action))
	}
	if kb.Action == "" { // unbind
		delete(keyBindingMap, keyEvent)
		return
	}
	keyBindingMap[keyEvent] = kb.Action
	text := kb.Key
	if modString := strings.ReplaceAll(mods.String(), "-", "+"); modString != "" {
		text = modString + "+" + text
	}
	keyActionMap[KeyAction(kb.Action)] = text
}

// KeyHint returns the key bound to the action, e.g. "Ctrl+Z", or "".
func KeyHint(action string) string { return keyActionMap[KeyAction(action)] }

// KeyEvent runs the action bound to the key, if any.
func (e *Editor) KeyEvent(ev key.Event, gtx C) {
	if ev.State != key.Press {
		return
	}
	action, ok := keyBindingMap[ev]
	if !ok {
		return
	}
	m := e.Model
	view := m.View()
	switch action {
	// Actions
	case "Undo":
		m.History().Undo().Do()
	case "Redo":
		m.History().Redo().Do()
	case "SelectAll":
		m.Selection().SelectAll().Do()
	case "ClearSelection":
		m.Selection().Clear().Do()
	case "DeleteSelected":
		m.Edit().DeleteSelected().Do()
	case "NudgeLeft":
		m.Edit().Nudge(-1, 0).Do()
	case "NudgeRight":
		m.Edit().Nudge(1, 0).Do()
	case "NudgeUp":
		m.Edit().Nudge(0, 1).Do()
	case "NudgeDown":
		m.Edit().Nudge(0, -1).Do()
	case "NudgeOctaveUp":
		m.Edit().Nudge(0, 12).Do()
	case "NudgeOctaveDown":
		m.Edit().Nudge(0, -12).Do()
	case "SelectTool":
		view.ToolAction(editor.SelectTool).Do()
	case "PencilTool":
		view.ToolAction(editor.PencilTool).Do()
	case "EraserTool":
		view.ToolAction(editor.EraserTool).Do()
	case "CutTool":
		view.ToolAction(editor.CutTool).Do()
	case "ZoomIn":
		view.ZoomInAction(editor.Horizontal).Do()
	case "ZoomOut":
		view.ZoomOutAction(editor.Horizontal).Do()
	case "VerticalZoomIn":
		view.ZoomInAction(editor.Vertical).Do()
	case "VerticalZoomOut":
		view.ZoomOutAction(editor.Vertical).Do()
	case "ResetZoom":
		view.ResetZoomAction().Do()
	case "Stop":
		m.Play().StopAction().Do()
	case "Rewind":
		m.Play().SetCurrentTime(0)
	case "OpenFile":
		m.OpenFile().Do()
	case "SaveFile":
		m.SaveFile().Do()
	case "SaveFileAs":
		m.SaveFileAs().Do()
	case "Quit":
		m.Quit().Do()
	// Booleans
	case "PlayingToggle":
		m.Play().Playing().Toggle()
	case "SnapToggle":
		view.Snap().Toggle()
	case "FollowToggle":
		m.Play().Follow().Toggle()
	case "LoopToggle":
		m.Play().Looping().Toggle()
	// Clipboard
	case "Copy":
		e.copySelection(gtx)
	case "Cut":
		if e.copySelection(gtx) {
			m.Edit().DeleteSelected().Do()
		}
	case "Paste":
		gtx.Execute(clipboard.ReadCmd{Tag: e})
	}
}

func (e *Editor) copySelection(gtx C) bool {
	data, ok := e.Model.Selection().CopyNotes()
	if !ok {
		return false
	}
	gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: nopCloser(data)})
	return true
}
