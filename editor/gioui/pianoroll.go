package gioui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/render"
	log "github.com/sirupsen/logrus"
)

type (
	// PianoRoll is the note canvas: it feeds pointer and wheel input to the
	// interaction model and paints the session through the render pipeline.
	PianoRoll struct {
		pipeline *render.Pipeline
		canvas   render.Canvas
		log      log.FieldLogger

		pressed  bool
		pressID  pointer.ID
		fit      bool
		reveal   bool
		revealAt float64
	}
)

func NewPianoRoll(th *Theme, logger log.FieldLogger) *PianoRoll {
	p := render.NewPipeline()
	p.Theme = th.Canvas
	p.Log = logger
	return &PianoRoll{pipeline: p, log: logger}
}

// FitDocument scrolls to the notes of the document on the next frame, once
// the canvas size is known.
func (p *PianoRoll) FitDocument() { p.fit = true }

// RevealTime scrolls horizontally so t is visible on the next frame.
func (p *PianoRoll) RevealTime(t float64) { p.reveal, p.revealAt = true, t }

// CSSSize returns the size of the canvas in device independent pixels.
func (p *PianoRoll) CSSSize() (w, h float64) { return p.canvas.CSSWidth, p.canvas.CSSHeight }

func (p *PianoRoll) Layout(gtx C, m *editor.Model) D {
	size := gtx.Constraints.Max
	dpr := float64(gtx.Metric.PxPerDp)
	if p.canvas.Resize(float64(size.X)/dpr, float64(size.Y)/dpr, dpr) {
		p.log.WithFields(log.Fields{"width": p.canvas.Width, "height": p.canvas.Height, "dpr": dpr}).Debug("canvas resized")
	}
	p.update(gtx, m, dpr)
	view := m.View()
	if p.fit && p.canvas.CSSHeight > 0 {
		view.Fit(p.canvas.CSSHeight)
		p.fit = false
	}
	if p.reveal {
		view.Reveal(p.revealAt, p.canvas.CSSWidth)
		p.reveal = false
	}
	status := m.Play().Tick()
	if status.Playing && m.Play().Follow().Value() {
		view.Reveal(status.Time, p.canvas.CSSWidth)
	}

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, p)
	switch view.Tool() {
	case editor.PencilTool, editor.CutTool:
		pointer.CursorCrosshair.Add(gtx.Ops)
	case editor.EraserTool:
		pointer.CursorNotAllowed.Add(gtx.Ops)
	default:
		pointer.CursorDefault.Add(gtx.Ops)
	}
	surface := &opsSurface{ops: gtx.Ops, size: size}
	p.pipeline.Draw(surface, render.SceneFromSnapshot(m.Snapshot(), dpr))
	return D{Size: size}
}

func (p *PianoRoll) update(gtx C, m *editor.Model, dpr float64) {
	in := m.Interaction()
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  p,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -1e6, Max: 1e6},
			ScrollY: pointer.ScrollRange{Min: -1e6, Max: 1e6},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pe := editor.PointerEvent{
			X:     float64(e.Position.X) / dpr,
			Y:     float64(e.Position.Y) / dpr,
			Shift: e.Modifiers.Contain(key.ModShift),
			Ctrl:  e.Modifiers.Contain(key.ModShortcut),
		}
		switch e.Kind {
		case pointer.Press:
			if e.Buttons&pointer.ButtonPrimary == 0 {
				continue
			}
			gtx.Execute(key.FocusCmd{Tag: p})
			p.pressed, p.pressID = true, e.PointerID
			in.PointerDown(pe)
		case pointer.Drag:
			if p.pressed && e.PointerID == p.pressID {
				in.PointerMove(pe)
			}
		case pointer.Release:
			if p.pressed && e.PointerID == p.pressID {
				p.pressed = false
				in.PointerUp(pe)
			}
		case pointer.Cancel:
			p.pressed = false
			in.PointerCancel()
		case pointer.Scroll:
			in.Wheel(editor.WheelEvent{
				DeltaX: float64(e.Scroll.X) / dpr,
				DeltaY: float64(e.Scroll.Y) / dpr,
				Shift:  pe.Shift,
				Ctrl:   pe.Ctrl,
			})
		}
	}
}
