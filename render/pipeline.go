package render

import (
	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/geom"
	"github.com/a5af/pianoroll/grid"
	log "github.com/sirupsen/logrus"
	"github.com/viterin/vek"
)

// Scene is everything one frame shows. Zoom and scroll are in CSS pixels;
// DragRect is in document pixel space.
type Scene struct {
	Document         *pianoroll.Document
	HZoom, VZoom     float64
	ScrollX, ScrollY float64
	Selection        editor.Selection
	Playing          bool
	PlayTime         float64
	Dragging         bool
	DragRect         geom.Rect
	DPR              float64
}

// SceneFromSnapshot builds the scene of a session snapshot.
func SceneFromSnapshot(s editor.Snapshot, dpr float64) Scene {
	return Scene{
		Document:  s.Document,
		HZoom:     s.View.Zoom.Horizontal,
		VZoom:     s.View.Zoom.Vertical,
		ScrollX:   s.View.Scroll.X,
		ScrollY:   s.View.Scroll.Y,
		Selection: s.Selection,
		Playing:   s.Playback.Playing,
		PlayTime:  s.Playback.Time,
		Dragging:  s.Interaction == editor.DraggingSelectionRect,
		DragRect:  s.DragRect,
		DPR:       dpr,
	}
}

// Pipeline paints scenes. It keeps the grid line cache and scratch buffers
// between frames, so one Pipeline should be used per canvas.
type Pipeline struct {
	Theme Theme
	Log   log.FieldLogger

	grid       grid.Cache
	starts, xs []float64
	durs, ws   []float64
}

func NewPipeline() *Pipeline {
	return &Pipeline{Theme: DefaultTheme, Log: log.StandardLogger()}
}

// Draw paints one frame. It returns false and draws nothing when the surface
// is missing or has no pixels; the caller should try again on the next tick.
func (p *Pipeline) Draw(s Surface, sc Scene) bool {
	if s == nil {
		p.skip("no surface")
		return false
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		p.skip("empty surface")
		return false
	}
	if !(sc.DPR > 0) {
		sc.DPR = 1
	}
	W, H := float64(w), float64(h)
	s.FillRect(geom.Rect{W: W, H: H}, p.Theme.Background)
	p.drawPitchRows(s, sc, W, H)
	p.drawTimeLines(s, sc, W, H)
	p.drawNotes(s, sc, W, H)
	if sc.Playing {
		x := (geom.TimeToX(sc.PlayTime, sc.HZoom) - sc.ScrollX) * sc.DPR
		if x >= 0 && x <= W {
			s.Line(x, 0, x, H, 2*sc.DPR, p.Theme.Playhead)
		}
	}
	if sc.Dragging {
		r := sc.DragRect.Translate(-sc.ScrollX, -sc.ScrollY).Scale(sc.DPR)
		if geom.IsRectVisible(r, W, H) {
			s.FillRect(r, p.Theme.SelectionFill)
			s.DashedRect(r, sc.DPR, 4*sc.DPR, p.Theme.SelectionEdge)
		}
	}
	return true
}

func (p *Pipeline) skip(reason string) {
	if p.Log != nil {
		p.Log.WithField("reason", reason).Debug("frame skipped")
	}
}

func (p *Pipeline) drawPitchRows(s Surface, sc Scene, W, H float64) {
	cssH := H / sc.DPR
	low := max(geom.YToPitch(sc.ScrollY+cssH, sc.VZoom), pianoroll.MinPitch)
	high := min(geom.YToPitch(sc.ScrollY, sc.VZoom), pianoroll.MaxPitch)
	rowH := sc.VZoom * sc.DPR
	for _, l := range p.grid.PitchLines(low, high) {
		y := (geom.PitchToY(l.Pitch, sc.VZoom) - sc.ScrollY) * sc.DPR
		r := geom.Rect{Y: y, W: W, H: rowH}
		if !geom.IsRectVisible(r, W, H) {
			continue
		}
		if l.Kind == grid.Black {
			s.FillRect(r, p.Theme.BlackKeyRow)
		}
		s.Line(0, r.Bottom(), W, r.Bottom(), sc.DPR, p.Theme.RowSeparator)
	}
}

func (p *Pipeline) drawTimeLines(s Surface, sc Scene, W, H float64) {
	bpm := pianoroll.DefaultBPM
	if sc.Document != nil {
		bpm = sc.Document.BPM()
	}
	start := geom.XToTime(sc.ScrollX, sc.HZoom)
	end := geom.XToTime(sc.ScrollX+W/sc.DPR, sc.HZoom)
	for _, l := range p.grid.TimeLines(start, end, sc.HZoom, bpm) {
		x := (geom.TimeToX(l.Time, sc.HZoom) - sc.ScrollX) * sc.DPR
		if x < 0 || x > W {
			continue
		}
		if l.Kind == grid.Bar {
			s.Line(x, 0, x, H, 1.5*sc.DPR, p.Theme.BarLine)
		} else {
			s.Line(x, 0, x, H, sc.DPR, p.Theme.BeatLine)
		}
	}
}

func (p *Pipeline) drawNotes(s Surface, sc Scene, W, H float64) {
	doc := sc.Document
	if doc == nil {
		return
	}
	anySolo := doc.AnySolo()
	dpr := sc.DPR
	rowH := sc.VZoom * dpr
	barH := 3 * dpr
	for i := range doc.Tracks {
		t := &doc.Tracks[i]
		n := len(t.Notes)
		if n == 0 {
			continue
		}
		p.starts, p.durs = resize(p.starts, n), resize(p.durs, n)
		p.xs, p.ws = resize(p.xs, n), resize(p.ws, n)
		for j, note := range t.Notes {
			p.starts[j] = note.Start
			p.durs[j] = note.Duration
		}
		xs := vek.MulNumber_Into(p.xs, p.starts, sc.HZoom*dpr)
		vek.AddNumber_Inplace(xs, -sc.ScrollX*dpr)
		ws := vek.MulNumber_Into(p.ws, p.durs, sc.HZoom*dpr)
		trackAlpha := 1.0
		if !t.Audible(anySolo) {
			trackAlpha = p.Theme.InaudibleAlpha
		}
		base := t.Color.NRGBA()
		for j, note := range t.Notes {
			x, w := xs[j], ws[j]
			y := (geom.PitchToY(note.Pitch, sc.VZoom) - sc.ScrollY) * dpr
			if x+w < 0 || x > W || y+rowH < 0 || y > H {
				continue
			}
			r := geom.Rect{X: x, Y: y, W: w, H: rowH}
			if sc.Selection.Has(note.ID) {
				s.FillRect(r, withAlpha(base, p.Theme.SelectedAlpha*trackAlpha))
				s.StrokeRect(r, 2*dpr, p.Theme.SelectedBorder)
			} else {
				s.FillRect(r, withAlpha(base, p.Theme.UnselectedAlpha*trackAlpha))
				s.StrokeRect(r, dpr, p.Theme.NoteBorder)
			}
			s.FillRect(geom.Rect{X: x, Y: r.Bottom() - barH, W: w * note.Velocity, H: barH}, p.Theme.Velocity)
		}
	}
}

func resize(b []float64, n int) []float64 {
	if cap(b) < n {
		return make([]float64, n)
	}
	return b[:n]
}
