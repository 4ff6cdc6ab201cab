package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/a5af/pianoroll/geom"
)

type (
	// Recorder is a Surface that records the draw calls instead of drawing.
	Recorder struct {
		Width, Height int
		Ops           []Op
	}

	Op struct {
		Kind  OpKind
		Rect  geom.Rect
		Width float64 // stroke width
		Dash  float64
		Color color.NRGBA
	}

	OpKind int
)

const (
	FillOp OpKind = iota
	StrokeOp
	DashedOp
	LineOp
)

func (k OpKind) String() string {
	switch k {
	case FillOp:
		return "fill"
	case StrokeOp:
		return "stroke"
	case DashedOp:
		return "dashed"
	case LineOp:
		return "line"
	}
	return "unknown"
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) FillRect(rect geom.Rect, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: FillOp, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect geom.Rect, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: StrokeOp, Rect: rect, Width: width, Color: c})
}

func (r *Recorder) DashedRect(rect geom.Rect, width, dash float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: DashedOp, Rect: rect, Width: width, Dash: dash, Color: c})
}

// Line is recorded with the start point in Rect.X, Rect.Y and the vector to
// the end point in Rect.W, Rect.H.
func (r *Recorder) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: LineOp, Rect: geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, Width: width, Color: c})
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Filter returns the recorded operations of the given kind and color.
func (r *Recorder) Filter(kind OpKind, c color.NRGBA) []Op {
	var ret []Op
	for _, op := range r.Ops {
		if op.Kind == kind && op.Color == c {
			ret = append(ret, op)
		}
	}
	return ret
}

// String dumps the operations one per line, for diagnostics.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		fmt.Fprintf(&b, "%s %.1f,%.1f %.1fx%.1f w=%.1f #%02x%02x%02x%02x\n",
			op.Kind, op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H, op.Width,
			op.Color.R, op.Color.G, op.Color.B, op.Color.A)
	}
	return b.String()
}
