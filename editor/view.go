package editor

import (
	"fmt"
	"math"

	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/geom"
)

type (
	Zoom struct {
		Horizontal float64 // pixels per second
		Vertical   float64 // pixels per semitone
	}

	Scroll struct {
		X, Y float64
	}

	Snap struct {
		Enabled  bool
		Division int
	}

	ViewState struct {
		Zoom   Zoom
		Scroll Scroll
		Snap   Snap
	}

	Axis int

	Tool int
)

const (
	Horizontal Axis = iota
	Vertical
	BothAxes
)

const (
	SelectTool Tool = iota
	PencilTool
	EraserTool
	CutTool
	NumTools
)

const (
	MinHorizontalZoom     = 10.0
	MaxHorizontalZoom     = 500.0
	DefaultHorizontalZoom = 100.0
	MinVerticalZoom       = 4.0
	MaxVerticalZoom       = 40.0
	DefaultVerticalZoom   = 12.0
	ZoomFactor            = 1.2
	DefaultSnapDivision   = 16
)

// SnapDivisions are the allowed snap divisions of a bar.
var SnapDivisions = [...]int{4, 8, 16, 32}

var toolNames = [NumTools]string{"select", "pencil", "eraser", "cut"}

func (t Tool) String() string {
	if t < 0 || t >= NumTools {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool is the inverse of Tool.String.
func ParseTool(s string) (Tool, bool) {
	for i, n := range toolNames {
		if n == s {
			return Tool(i), true
		}
	}
	return SelectTool, false
}

func DefaultViewState() ViewState {
	return ViewState{
		Zoom: Zoom{Horizontal: DefaultHorizontalZoom, Vertical: DefaultVerticalZoom},
		Snap: Snap{Enabled: true, Division: DefaultSnapDivision},
	}
}

// sanitize brings a view state read from outside back within its limits.
func (s ViewState) sanitize() ViewState {
	d := DefaultViewState()
	s.Zoom.Horizontal = clampZoom(s.Zoom.Horizontal, MinHorizontalZoom, MaxHorizontalZoom, d.Zoom.Horizontal)
	s.Zoom.Vertical = clampZoom(s.Zoom.Vertical, MinVerticalZoom, MaxVerticalZoom, d.Zoom.Vertical)
	s.Scroll.X = clampScroll(s.Scroll.X, 0)
	s.Scroll.Y = clampScroll(s.Scroll.Y, 0)
	if !validDivision(s.Snap.Division) {
		s.Snap.Division = DefaultSnapDivision
	}
	return s
}

func validDivision(d int) bool {
	for _, v := range SnapDivisions {
		if v == d {
			return true
		}
	}
	return false
}

// View returns the view-state part of the session: zoom, scroll, snapping
// and the active tool.
func (m *Model) View() *ViewModel { return (*ViewModel)(m) }

type ViewModel Model

func (v *ViewModel) State() ViewState { return v.d.View }
func (v *ViewModel) Tool() Tool       { return v.d.Tool }

func (v *ViewModel) change(kind string) func() {
	return (*Model)(v).change("View."+kind, ViewChange, MinorChange)
}

func (v *ViewModel) SetHorizontalZoom(z float64) {
	defer v.change("SetHorizontalZoom")()
	v.d.View.Zoom.Horizontal = clampZoom(z, MinHorizontalZoom, MaxHorizontalZoom, v.d.View.Zoom.Horizontal)
}

func (v *ViewModel) SetVerticalZoom(z float64) {
	defer v.change("SetVerticalZoom")()
	v.d.View.Zoom.Vertical = clampZoom(z, MinVerticalZoom, MaxVerticalZoom, v.d.View.Zoom.Vertical)
}

// clampZoom keeps NaN out of the store by keeping the old value.
func clampZoom(z, lo, hi, old float64) float64 {
	if math.IsNaN(z) {
		return old
	}
	return geom.Clamp(z, lo, hi)
}

// ZoomIn multiplies the zoom of the axis by ZoomFactor.
func (v *ViewModel) ZoomIn(axis Axis) { v.zoomBy(axis, ZoomFactor) }

// ZoomOut divides the zoom of the axis by ZoomFactor.
func (v *ViewModel) ZoomOut(axis Axis) { v.zoomBy(axis, 1/ZoomFactor) }

func (v *ViewModel) zoomBy(axis Axis, k float64) {
	defer v.change("Zoom")()
	if axis == Horizontal || axis == BothAxes {
		v.SetHorizontalZoom(v.d.View.Zoom.Horizontal * k)
	}
	if axis == Vertical || axis == BothAxes {
		v.SetVerticalZoom(v.d.View.Zoom.Vertical * k)
	}
}

func (v *ViewModel) ResetZoom() {
	defer v.change("ResetZoom")()
	v.d.View.Zoom = Zoom{Horizontal: DefaultHorizontalZoom, Vertical: DefaultVerticalZoom}
}

// SetScroll sets the scroll offset; negative values are clamped to zero.
// There is no upper bound.
func (v *ViewModel) SetScroll(x, y float64) {
	defer v.change("SetScroll")()
	v.d.View.Scroll = Scroll{X: clampScroll(x, v.d.View.Scroll.X), Y: clampScroll(y, v.d.View.Scroll.Y)}
}

func (v *ViewModel) ScrollBy(dx, dy float64) {
	v.SetScroll(v.d.View.Scroll.X+dx, v.d.View.Scroll.Y+dy)
}

func clampScroll(s, old float64) float64 {
	if math.IsNaN(s) {
		return old
	}
	return math.Max(s, 0)
}

func (v *ViewModel) ToggleSnap() {
	defer v.change("ToggleSnap")()
	v.d.View.Snap.Enabled = !v.d.View.Snap.Enabled
}

// SetSnapDivision changes the division; values other than 4, 8, 16 and 32
// are ignored.
func (v *ViewModel) SetSnapDivision(d int) {
	if !validDivision(d) {
		return
	}
	defer v.change("SetSnapDivision")()
	v.d.View.Snap.Division = d
}

func (v *ViewModel) SetTool(t Tool) {
	if t < 0 || t >= NumTools {
		return
	}
	defer v.change("SetTool")()
	v.d.Tool = t
}

// GridStep is the length of one snap division in seconds.
func (v *ViewModel) GridStep() float64 {
	return pianoroll.GridStep(v.d.View.Snap.Division, (*Model)(v).bpm())
}

// SnapTime quantizes t to the grid if snapping is enabled.
func (v *ViewModel) SnapTime(t float64) float64 {
	if !v.d.View.Snap.Enabled {
		return t
	}
	return pianoroll.Quantize(t, v.d.View.Snap.Division, (*Model)(v).bpm())
}

// VisibleTimeRange returns the time window shown in a canvas of the given
// size in CSS pixels.
func (v *ViewModel) VisibleTimeRange(width float64) (start, end float64) {
	z := v.d.View.Zoom.Horizontal
	return geom.XToTime(v.d.View.Scroll.X, z), geom.XToTime(v.d.View.Scroll.X+width, z)
}

// VisiblePitchRange returns the lowest and highest pitch rows touching a
// canvas of the given height in CSS pixels, limited to the MIDI range.
func (v *ViewModel) VisiblePitchRange(height float64) (low, high int) {
	z := v.d.View.Zoom.Vertical
	low = geom.YToPitch(v.d.View.Scroll.Y+height, z)
	high = geom.YToPitch(v.d.View.Scroll.Y, z)
	return max(low, pianoroll.MinPitch), min(high, pianoroll.MaxPitch)
}

// Reveal scrolls the minimum amount so that the time t is inside a canvas of
// the given width, keeping a margin of a tenth of the width.
func (v *ViewModel) Reveal(t, width float64) {
	x := geom.TimeToX(t, v.d.View.Zoom.Horizontal)
	margin := width / 10
	switch {
	case x < v.d.View.Scroll.X+margin:
		v.SetScroll(x-margin, v.d.View.Scroll.Y)
	case x > v.d.View.Scroll.X+width-margin:
		v.SetScroll(x-width+margin, v.d.View.Scroll.Y)
	}
}

// Fit scrolls to the start of the document and centers its pitch range
// vertically in a canvas of the given height.
func (v *ViewModel) Fit(height float64) {
	doc := v.d.Document
	if doc == nil {
		return
	}
	b, ok := doc.Bounds()
	if !ok {
		v.SetScroll(0, geom.PitchToY(72, v.d.View.Zoom.Vertical))
		return
	}
	z := v.d.View.Zoom.Vertical
	center := (geom.PitchToY(b.High, z) + geom.PitchToY(b.Low, z) + z) / 2
	v.SetScroll(geom.TimeToX(b.Start, v.d.View.Zoom.Horizontal), center-height/2)
}

// Actions and values for the toolbar and key bindings.

func (v *ViewModel) ZoomInAction(axis Axis) Action {
	return MakeAction(&zoomAction{v: v, axis: axis, k: ZoomFactor})
}

func (v *ViewModel) ZoomOutAction(axis Axis) Action {
	return MakeAction(&zoomAction{v: v, axis: axis, k: 1 / ZoomFactor})
}

type zoomAction struct {
	v    *ViewModel
	axis Axis
	k    float64
}

func (a *zoomAction) Do() { a.v.zoomBy(a.axis, a.k) }
func (a *zoomAction) Enabled() bool {
	z := a.v.d.View.Zoom
	h := a.axis != Vertical && ((a.k > 1 && z.Horizontal < MaxHorizontalZoom) || (a.k < 1 && z.Horizontal > MinHorizontalZoom))
	vv := a.axis != Horizontal && ((a.k > 1 && z.Vertical < MaxVerticalZoom) || (a.k < 1 && z.Vertical > MinVerticalZoom))
	return h || vv
}

func (v *ViewModel) ResetZoomAction() Action { return MakeAction((*resetZoom)(v)) }

type resetZoom ViewModel

func (a *resetZoom) Do() { (*ViewModel)(a).ResetZoom() }

// ToolAction returns an Action that activates the tool.
func (v *ViewModel) ToolAction(t Tool) Action { return MakeAction(&toolAction{v: v, tool: t}) }

type toolAction struct {
	v    *ViewModel
	tool Tool
}

func (a *toolAction) Do() { a.v.SetTool(a.tool) }

// Snap returns a Bool controlling whether edits snap to the grid.
func (v *ViewModel) Snap() Bool { return MakeBool((*snapEnabled)(v)) }

type snapEnabled ViewModel

func (s *snapEnabled) Value() bool { return s.d.View.Snap.Enabled }
func (s *snapEnabled) SetValue(val bool) {
	if val != s.d.View.Snap.Enabled {
		(*ViewModel)(s).ToggleSnap()
	}
}

// SnapDivision returns an Int indexing SnapDivisions. It is disabled while
// snapping is off.
func (v *ViewModel) SnapDivision() Int { return MakeInt((*snapDivision)(v)) }

type snapDivision ViewModel

func (s *snapDivision) Value() int {
	for i, d := range SnapDivisions {
		if d == s.d.View.Snap.Division {
			return i
		}
	}
	return 0
}

func (s *snapDivision) SetValue(i int) bool {
	(*ViewModel)(s).SetSnapDivision(SnapDivisions[i])
	return true
}

func (s *snapDivision) Range() RangeInclusive {
	return RangeInclusive{0, len(SnapDivisions) - 1}
}

func (s *snapDivision) StringOf(i int) string {
	return fmt.Sprintf("1/%d", SnapDivisions[RangeInclusive{0, len(SnapDivisions) - 1}.Clamp(i)])
}

func (s *snapDivision) Enabled() bool { return s.d.View.Snap.Enabled }
