package gioui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/a5af/pianoroll/editor"
)

// ConfirmDialog is the modal asking whether to save changes before the
// document is replaced or the program quits.
type ConfirmDialog struct {
	Save, Discard, Cancel *ActionClickable
}

func NewConfirmDialog(m *editor.Model) *ConfirmDialog {
	return &ConfirmDialog{
		Save:    NewActionClickable(m.SaveFile()),
		Discard: NewActionClickable(m.DiscardChanges()),
		Cancel:  NewActionClickable(m.Cancel()),
	}
}

func (d *ConfirmDialog) Layout(gtx C, th *Theme, title, text string) D {
	btns := [...]*ActionClickable{d.Save, d.Discard, d.Cancel}
	if !anyFocused(gtx, btns[:]) {
		gtx.Execute(key.FocusCmd{Tag: &d.Cancel.Clickable})
	}
	for i, b := range btns {
		d.handleKeys(gtx, b, btns[(i+len(btns)-1)%len(btns)], btns[(i+1)%len(btns)])
	}
	// swallow pointer events outside the dialog
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, d)
	paint.Fill(gtx.Ops, th.Dialog.Bg)
	area.Pop()
	return layout.Center.Layout(gtx, func(gtx C) D {
		macro := op.Record(gtx.Ops)
		dims := layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(Label(th, &th.Dialog.Title, title).Layout),
				layout.Rigid(func(gtx C) D {
					return layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(12)}.Layout(gtx, Label(th, &th.Dialog.Text, text).Layout)
				}),
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(ActionButton(gtx, th, d.Save, "Save").Layout),
						layout.Rigid(ActionButton(gtx, th, d.Discard, "Don't save").Layout),
						layout.Rigid(ActionButton(gtx, th, d.Cancel, "Cancel").Layout),
					)
				}),
			)
		})
		call := macro.Stop()
		rr := gtx.Dp(6)
		paint.FillShape(gtx.Ops, th.Dialog.Surface, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
		call.Add(gtx.Ops)
		return dims
	})
}

func anyFocused(gtx C, btns []*ActionClickable) bool {
	for _, b := range btns {
		if gtx.Source.Focused(&b.Clickable) {
			return true
		}
	}
	return false
}

func (d *ConfirmDialog) handleKeys(gtx C, btn, prev, next *ActionClickable) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Focus: &btn.Clickable, Name: key.NameLeftArrow},
			key.Filter{Focus: &btn.Clickable, Name: key.NameRightArrow},
			key.Filter{Focus: &btn.Clickable, Name: key.NameEscape},
			key.Filter{Focus: &btn.Clickable, Name: key.NameTab, Optional: key.ModShift},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch {
		case e.Name == key.NameEscape:
			d.Cancel.Action.Do()
		case e.Name == key.NameLeftArrow || (e.Name == key.NameTab && e.Modifiers.Contain(key.ModShift)):
			gtx.Execute(key.FocusCmd{Tag: &prev.Clickable})
		default:
			gtx.Execute(key.FocusCmd{Tag: &next.Clickable})
		}
	}
}
