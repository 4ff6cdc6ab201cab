package gioui

import (
	"image"
	"strconv"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/geom"
	"github.com/a5af/pianoroll/grid"
)

// Timeline is the ruler above the canvas. Clicking or dragging on it moves
// the playhead.
type Timeline struct {
	cache grid.Cache
}

func (t *Timeline) Layout(gtx C, th *Theme, m *editor.Model) D {
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(th.Timeline.Height))
	dpr := float64(gtx.Metric.PxPerDp)
	view := m.View().State()
	hz := view.Zoom.Horizontal
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: t, Kinds: pointer.Press | pointer.Drag})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			x := float64(e.Position.X)/dpr + view.Scroll.X
			m.Play().SetCurrentTime(geom.XToTime(x, hz))
		}
	}

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, t)
	paint.FillShape(gtx.Ops, th.Timeline.Bg, clip.Rect{Max: size}.Op())
	bpm := 0.0
	if doc := m.Document(); doc != nil {
		bpm = doc.BPM()
	}
	start := geom.XToTime(view.Scroll.X, hz)
	end := geom.XToTime(view.Scroll.X+float64(size.X)/dpr, hz)
	barH, beatH := int(float64(size.Y)*0.6), int(float64(size.Y)*0.3)
	for _, l := range t.cache.TimeLines(start, end, hz, bpm) {
		x := int((geom.TimeToX(l.Time, hz) - view.Scroll.X) * dpr)
		if x < 0 || x > size.X {
			continue
		}
		h := beatH
		if l.Kind == grid.Bar {
			h = barH
		}
		paint.FillShape(gtx.Ops, th.Timeline.Tick, clip.Rect{Min: image.Pt(x, size.Y-h), Max: image.Pt(x+1, size.Y)}.Op())
		if l.Kind == grid.Bar {
			stack := op.Offset(image.Pt(x+gtx.Dp(3), 0)).Push(gtx.Ops)
			lgtx := gtx
			lgtx.Constraints = clipConstraints(size.X, size.Y-barH)
			Label(th, &th.Timeline.BarText, strconv.Itoa(l.BarNumber())).Layout(lgtx)
			stack.Pop()
		}
	}
	if status := m.Play().Status(); status.Playing || status.Time > 0 {
		x := int((geom.TimeToX(status.Time, hz) - view.Scroll.X) * dpr)
		if x >= 0 && x <= size.X {
			w := max(gtx.Dp(2), 1)
			paint.FillShape(gtx.Ops, th.Canvas.Playhead, clip.Rect{Min: image.Pt(x-w/2, 0), Max: image.Pt(x-w/2+w, size.Y)}.Op())
		}
	}
	return D{Size: size}
}

func clipConstraints(w, h int) layout.Constraints {
	return layout.Constraints{Max: image.Pt(max(w, 0), max(h, 0))}
}
