package gioui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/a5af/pianoroll/geom"
)

// opsSurface implements render.Surface on top of a gioui op list. gioui works
// in physical pixels, which are the backing-store pixels of the renderer.
type opsSurface struct {
	ops  *op.Ops
	size image.Point
}

func (s *opsSurface) Size() (int, int) { return s.size.X, s.size.Y }

func (s *opsSurface) FillRect(r geom.Rect, c color.NRGBA) {
	paint.FillShape(s.ops, c, clip.Rect(pixelRect(r)).Op())
}

func (s *opsSurface) StrokeRect(r geom.Rect, width float64, c color.NRGBA) {
	paint.FillShape(s.ops, c, clip.Stroke{Path: clip.Rect(pixelRect(r)).Path(), Width: float32(width)}.Op())
}

func (s *opsSurface) DashedRect(r geom.Rect, width, dash float64, c color.NRGBA) {
	if dash <= 0 {
		s.StrokeRect(r, width, c)
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	s.dashes(x0, y0, x1, y0, width, dash, c)
	s.dashes(x1, y0, x1, y1, width, dash, c)
	s.dashes(x1, y1, x0, y1, width, dash, c)
	s.dashes(x0, y1, x0, y0, width, dash, c)
}

func (s *opsSurface) dashes(x0, y0, x1, y1, width, dash float64, c color.NRGBA) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		return
	}
	dx, dy := (x1-x0)/length, (y1-y0)/length
	for d := 0.0; d < length; d += 2 * dash {
		e := min(d+dash, length)
		s.Line(x0+dx*d, y0+dy*d, x0+dx*e, y0+dy*e, width, c)
	}
}

func (s *opsSurface) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	var p clip.Path
	p.Begin(s.ops)
	p.MoveTo(f32.Pt(float32(x0), float32(y0)))
	p.LineTo(f32.Pt(float32(x1), float32(y1)))
	paint.FillShape(s.ops, c, clip.Stroke{Path: p.End(), Width: float32(width)}.Op())
}

func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.Right())), int(math.Round(r.Bottom())),
	)
}
