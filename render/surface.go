// Package render draws the piano roll: the pitch rows, the beat and bar
// lines, the notes, the playhead and the rubber-band rectangle, in that order.
//
// Drawing goes through the Surface interface, so the same pipeline paints
// into a gioui window or into a Recorder in tests. All coordinates given to a
// Surface are backing-store pixels, i.e. CSS pixels times the device pixel
// ratio.
package render

import (
	"image/color"

	"github.com/a5af/pianoroll/geom"
)

type Surface interface {
	// Size returns the size of the backing store in pixels.
	Size() (width, height int)
	FillRect(r geom.Rect, c color.NRGBA)
	StrokeRect(r geom.Rect, width float64, c color.NRGBA)
	// DashedRect strokes the outline of r with dashes of the given length.
	DashedRect(r geom.Rect, width, dash float64, c color.NRGBA)
	Line(x0, y0, x1, y1, width float64, c color.NRGBA)
}

// Canvas tracks the size of the drawing area in CSS pixels and the matching
// backing-store size.
type Canvas struct {
	CSSWidth, CSSHeight float64
	DPR                 float64
	Width, Height       int
}

// Resize sets the CSS size and the device pixel ratio. The backing store is
// round(css*dpr) pixels. It reports whether the backing size changed.
func (c *Canvas) Resize(cssW, cssH, dpr float64) bool {
	if !(dpr > 0) {
		dpr = 1
	}
	w, h := roundPx(cssW*dpr), roundPx(cssH*dpr)
	c.CSSWidth, c.CSSHeight, c.DPR = cssW, cssH, dpr
	if w == c.Width && h == c.Height {
		return false
	}
	c.Width, c.Height = w, h
	return true
}

func roundPx(v float64) int {
	if !(v > 0) {
		return 0
	}
	return int(v + 0.5)
}
