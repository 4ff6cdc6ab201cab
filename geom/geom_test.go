package geom_test

import (
	"math"
	"testing"

	"github.com/a5af/pianoroll/geom"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func drawRect(t *rapid.T, label string) geom.Rect {
	return geom.Rect{
		X: rapid.Float64Range(-1000, 1000).Draw(t, label+"X"),
		Y: rapid.Float64Range(-1000, 1000).Draw(t, label+"Y"),
		W: rapid.Float64Range(0, 500).Draw(t, label+"W"),
		H: rapid.Float64Range(0, 500).Draw(t, label+"H"),
	}
}

func TestTimeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tm := rapid.Float64Range(0, 1e5).Draw(t, "time")
		z := rapid.Float64Range(1e-3, 1e3).Draw(t, "zoom")
		got := geom.XToTime(geom.TimeToX(tm, z), z)
		if math.Abs(got-tm) > 1e-9*math.Max(1, tm) {
			t.Fatalf("round trip of %v at zoom %v gave %v", tm, z, got)
		}
	})
}

func TestPitchRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.IntRange(0, 127).Draw(t, "pitch")
		z := rapid.Float64Range(1, 100).Draw(t, "zoom")
		if got := geom.YToPitch(geom.PitchToY(p, z), z); got != p {
			t.Fatalf("pitch %v at zoom %v gave %v", p, z, got)
		}
	})
}

func TestPitchToY(t *testing.T) {
	assert.Equal(t, 0.0, geom.PitchToY(127, 12))
	assert.Equal(t, 12.0*67, geom.PitchToY(60, 12))
	// anywhere inside the row maps to the row's pitch
	assert.Equal(t, 60, geom.YToPitch(12*67+11.9, 12))
	assert.Equal(t, 59, geom.YToPitch(12*68, 12))
}

func TestClamp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-100, 100).Draw(t, "lo")
		hi := lo + rapid.Float64Range(0, 100).Draw(t, "span")
		x := rapid.Float64Range(-1000, 1000).Draw(t, "x")
		c := geom.Clamp(x, lo, hi)
		if c < lo || c > hi {
			t.Fatalf("clamp(%v, %v, %v) = %v out of range", x, lo, hi, c)
		}
		if geom.Clamp(c, lo, hi) != c {
			t.Fatalf("clamp not idempotent for %v", x)
		}
	})
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, geom.Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, geom.Lerp(0, 10, 0))
	assert.Equal(t, 10.0, geom.Lerp(0, 10, 1))
}

func TestPointInRectInclusive(t *testing.T) {
	r := geom.Rect{X: 10, Y: 10, W: 5, H: 5}
	assert.True(t, geom.PointInRect(10, 10, r))
	assert.True(t, geom.PointInRect(15, 15, r))
	assert.True(t, geom.PointInRect(12, 15, r))
	assert.False(t, geom.PointInRect(15.01, 12, r))
	assert.False(t, geom.PointInRect(9.99, 12, r))
}

func TestRectsIntersectSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		if geom.RectsIntersect(a, b) != geom.RectsIntersect(b, a) {
			t.Fatalf("asymmetric for %+v %+v", a, b)
		}
	})
}

func TestRectsIntersect(t *testing.T) {
	band := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	assert.True(t, geom.RectsIntersect(band, geom.Rect{X: 50, Y: 50, W: 10, H: 10}))
	assert.False(t, geom.RectsIntersect(band, geom.Rect{X: 200, Y: 200, W: 10, H: 10}))
	assert.True(t, geom.RectsIntersect(band, geom.Rect{X: 100, Y: 0, W: 10, H: 10}), "touching edges intersect")
	assert.True(t, geom.RectsIntersect(geom.Rect{X: 5, Y: 5}, band), "degenerate rect inside")
}

func TestRectFromPoints(t *testing.T) {
	assert.Equal(t, geom.Rect{X: 10, Y: 20, W: 30, H: 40}, geom.RectFromPoints(40, 60, 10, 20))
	assert.Equal(t, geom.Rect{X: 10, Y: 20, W: 30, H: 40}, geom.RectFromPoints(10, 20, 40, 60))
}

func TestNoteRect(t *testing.T) {
	r := geom.NoteRect(1, 0.5, 60, 100, 12)
	assert.Equal(t, geom.Rect{X: 100, Y: 804, W: 50, H: 12}, r)
}

func TestIsRectVisible(t *testing.T) {
	assert.True(t, geom.IsRectVisible(geom.Rect{X: -5, Y: 0, W: 5, H: 5}, 100, 100))
	assert.False(t, geom.IsRectVisible(geom.Rect{X: -6, Y: 0, W: 5, H: 5}, 100, 100))
	assert.False(t, geom.IsRectVisible(geom.Rect{X: 101, Y: 0, W: 5, H: 5}, 100, 100))
	assert.False(t, geom.IsRectVisible(geom.Rect{X: 0, Y: 100.5, W: 5, H: 5}, 100, 100))
}

func TestViewportConversion(t *testing.T) {
	x, y := geom.CanvasToViewport(10, 20, 100, 200)
	assert.Equal(t, 110.0, x)
	assert.Equal(t, 220.0, y)
	x, y = geom.ViewportToCanvas(x, y, 100, 200)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, geom.Rect{X: 10, Y: 20, W: 30, H: 40}, geom.Rect{X: 40, Y: 60, W: -30, H: -40}.Normalize())
	assert.Equal(t, geom.Rect{X: 1, Y: 2, W: 3, H: 4}, geom.Rect{X: 1, Y: 2, W: 3, H: 4}.Normalize())
}
