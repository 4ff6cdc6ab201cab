// Package geom maps between musical coordinates (seconds, MIDI pitch) and the
// pixel space of the piano roll canvas. Pitch 127 is at y=0; time 0 is at x=0.
// All functions are pure.
package geom

import (
	"cmp"
	"math"
)

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints spans a rectangle between two corners given in any order,
// so that W and H are never negative.
func RectFromPoints(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X: math.Min(x0, x1),
		Y: math.Min(y0, y1),
		W: math.Abs(x1 - x0),
		H: math.Abs(y1 - y0),
	}
}

// Normalize flips a rectangle with negative width or height so that W and H
// are non-negative while covering the same area.
func (r Rect) Normalize() Rect {
	return RectFromPoints(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) Scale(k float64) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}

func TimeToX(t, hZoom float64) float64 { return t * hZoom }
func XToTime(x, hZoom float64) float64 { return x / hZoom }

func PitchToY(pitch int, vZoom float64) float64 { return float64(127-pitch) * vZoom }

// YToPitch returns the pitch of the row containing y. It is a left inverse of
// PitchToY for integer pitches.
func YToPitch(y, vZoom float64) int {
	// the epsilon absorbs (k*z)/z landing one ulp below k
	return 127 - int(math.Floor(y/vZoom+1e-9))
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// PointInRect is inclusive on all four edges.
func PointInRect(px, py float64, r Rect) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// RectsIntersect reports whether a and b share any point; touching edges
// count.
func RectsIntersect(a, b Rect) bool {
	return !(a.X+a.W < b.X || a.X > b.X+b.W || a.Y+a.H < b.Y || a.Y > b.Y+b.H)
}

// NoteRect is the box of a note in document pixel space (scroll not applied).
func NoteRect(start, duration float64, pitch int, hZoom, vZoom float64) Rect {
	return Rect{
		X: TimeToX(start, hZoom),
		Y: PitchToY(pitch, vZoom),
		W: duration * hZoom,
		H: vZoom,
	}
}

// IsRectVisible tells if r overlaps the viewport [0,w]x[0,h].
func IsRectVisible(r Rect, w, h float64) bool {
	return !(r.X+r.W < 0 || r.X > w || r.Y+r.H < 0 || r.Y > h)
}

// ViewportToCanvas converts document pixel coordinates to canvas-local ones.
func ViewportToCanvas(x, y, scrollX, scrollY float64) (float64, float64) {
	return x - scrollX, y - scrollY
}

// CanvasToViewport converts canvas-local coordinates, e.g. from a pointer
// event, to document pixel coordinates.
func CanvasToViewport(x, y, scrollX, scrollY float64) (float64, float64) {
	return x + scrollX, y + scrollY
}
