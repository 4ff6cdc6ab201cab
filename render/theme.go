package render

import "image/color"

// Theme holds the colors of the piano roll. Note fills use the track color;
// their alpha comes from SelectedAlpha and UnselectedAlpha.
type Theme struct {
	Background     color.NRGBA
	BlackKeyRow    color.NRGBA
	RowSeparator   color.NRGBA
	BeatLine       color.NRGBA
	BarLine        color.NRGBA
	NoteBorder     color.NRGBA
	SelectedBorder color.NRGBA
	Velocity       color.NRGBA
	Playhead       color.NRGBA
	SelectionFill  color.NRGBA
	SelectionEdge  color.NRGBA

	SelectedAlpha   float64
	UnselectedAlpha float64
	// InaudibleAlpha multiplies the alpha of notes on muted tracks, and of
	// tracks that are not soloed while some other track is.
	InaudibleAlpha float64
}

var DefaultTheme = Theme{
	Background:     color.NRGBA{R: 18, G: 18, B: 18, A: 255},
	BlackKeyRow:    color.NRGBA{R: 12, G: 12, B: 14, A: 255},
	RowSeparator:   color.NRGBA{R: 37, G: 37, B: 38, A: 255},
	BeatLine:       color.NRGBA{R: 55, G: 55, B: 61, A: 255},
	BarLine:        color.NRGBA{R: 110, G: 110, B: 120, A: 255},
	NoteBorder:     color.NRGBA{R: 0, G: 0, B: 0, A: 160},
	SelectedBorder: color.NRGBA{R: 255, G: 255, B: 130, A: 255},
	Velocity:       color.NRGBA{R: 255, G: 255, B: 255, A: 160},
	Playhead:       color.NRGBA{R: 252, G: 186, B: 3, A: 255},
	SelectionFill:  color.NRGBA{R: 100, G: 140, B: 255, A: 48},
	SelectionEdge:  color.NRGBA{R: 100, G: 140, B: 255, A: 255},

	SelectedAlpha:   0.8,
	UnselectedAlpha: 0.6,
	InaudibleAlpha:  0.5,
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha*255 + 0.5)
	return c
}
