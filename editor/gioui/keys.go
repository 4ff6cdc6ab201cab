package gioui

import (
	"image"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/geom"
)

// PianoKeys draws the keyboard column left of the canvas, following the
// vertical zoom and scroll of the view. Only the 88 keys of a piano are drawn.
type PianoKeys struct{}

func (k *PianoKeys) Layout(gtx C, th *Theme, view editor.ViewState) D {
	size := image.Pt(gtx.Dp(th.Keys.Width), gtx.Constraints.Max.Y)
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, th.Keys.Separator, clip.Rect{Max: size}.Op())
	dpr := float64(gtx.Metric.PxPerDp)
	vz := view.Zoom.Vertical
	low := max(geom.YToPitch(view.Scroll.Y+float64(size.Y)/dpr, vz), pianoroll.LowestKey)
	high := min(geom.YToPitch(view.Scroll.Y, vz), pianoroll.HighestKey)
	blackWidth := size.X * 3 / 5
	for p := low; p <= high; p++ {
		y0 := int((geom.PitchToY(p, vz) - view.Scroll.Y) * dpr)
		y1 := int((geom.PitchToY(p, vz) + vz - view.Scroll.Y) * dpr)
		if pianoroll.IsBlackKey(p) {
			paint.FillShape(gtx.Ops, th.Keys.White, clip.Rect{Min: image.Pt(blackWidth, y0), Max: image.Pt(size.X, y1)}.Op())
			paint.FillShape(gtx.Ops, th.Keys.Black, clip.Rect{Min: image.Pt(0, y0), Max: image.Pt(blackWidth, y1)}.Op())
			continue
		}
		// leave a one pixel gap as the separator
		paint.FillShape(gtx.Ops, th.Keys.White, clip.Rect{Min: image.Pt(0, y0), Max: image.Pt(size.X, y1-1)}.Op())
		if p%12 == 0 && vz > th.Keys.LabelMinPx {
			stack := op.Offset(image.Pt(blackWidth+gtx.Dp(2), y0)).Push(gtx.Ops)
			lgtx := gtx
			lgtx.Constraints = clipConstraints(size.X-blackWidth, y1-y0)
			Label(th, &th.Keys.Label, pianoroll.NoteName(p)).Layout(lgtx)
			stack.Pop()
		}
	}
	return D{Size: size}
}
