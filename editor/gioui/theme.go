package gioui

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/a5af/pianoroll/render"
)

type Theme struct {
	Material *material.Theme
	Canvas   render.Theme

	Toolbar struct {
		Bg       color.NRGBA
		Height   unit.Dp
		Status   LabelStyle
		Active   color.NRGBA
		Inactive color.NRGBA
		Disabled color.NRGBA
	}
	Keys struct {
		Width      unit.Dp
		White      color.NRGBA
		Black      color.NRGBA
		Separator  color.NRGBA
		Label      LabelStyle
		LabelMinPx float64
	}
	Timeline struct {
		Height  unit.Dp
		Bg      color.NRGBA
		Tick    color.NRGBA
		BarText LabelStyle
	}
	Tracks struct {
		Width  unit.Dp
		Bg     color.NRGBA
		Name   LabelStyle
		Detail LabelStyle
		Solo   color.NRGBA
		Mute   color.NRGBA
	}
	Alert struct {
		Info    AlertStyle
		Warning AlertStyle
		Error   AlertStyle
		Margin  layout.Inset
		Inset   layout.Inset
	}
	Dialog struct {
		Bg      color.NRGBA
		Surface color.NRGBA
		Title   LabelStyle
		Text    LabelStyle
	}
}

var fontCollection []font.FontFace = gofont.Collection()

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	transparent = color.NRGBA{A: 0}

	primaryColor   = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
	secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

	highEmphasisTextColor   = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
	mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
	disabledTextColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

	surfaceColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
	warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}
	errorColor   = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
)

func NewTheme() *Theme {
	th := &Theme{Canvas: render.DefaultTheme}
	th.Material = material.NewTheme()
	th.Material.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	th.Material.Palette.Bg = render.DefaultTheme.Background
	th.Material.Palette.Fg = highEmphasisTextColor
	th.Material.Palette.ContrastBg = primaryColor
	th.Material.Palette.ContrastFg = black
	th.Material.TextSize = unit.Sp(14)

	th.Toolbar.Bg = surfaceColor
	th.Toolbar.Height = unit.Dp(40)
	th.Toolbar.Status = LabelStyle{Color: mediumEmphasisTextColor, ShadeColor: black, TextSize: unit.Sp(13)}
	th.Toolbar.Active = primaryColor
	th.Toolbar.Inactive = highEmphasisTextColor
	th.Toolbar.Disabled = disabledTextColor

	th.Keys.Width = unit.Dp(56)
	th.Keys.White = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	th.Keys.Black = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	th.Keys.Separator = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	th.Keys.Label = LabelStyle{Color: color.NRGBA{R: 60, G: 60, B: 60, A: 255}, Alignment: layout.W, TextSize: unit.Sp(10)}
	th.Keys.LabelMinPx = 8

	th.Timeline.Height = unit.Dp(40)
	th.Timeline.Bg = color.NRGBA{R: 28, G: 28, B: 30, A: 255}
	th.Timeline.Tick = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	th.Timeline.BarText = LabelStyle{Color: mediumEmphasisTextColor, TextSize: unit.Sp(11)}

	th.Tracks.Width = unit.Dp(180)
	th.Tracks.Bg = surfaceColor
	th.Tracks.Name = LabelStyle{Color: highEmphasisTextColor, ShadeColor: black, TextSize: unit.Sp(14)}
	th.Tracks.Detail = LabelStyle{Color: mediumEmphasisTextColor, TextSize: unit.Sp(11)}
	th.Tracks.Solo = warningColor
	th.Tracks.Mute = errorColor

	th.Alert.Info = AlertStyle{Bg: color.NRGBA{R: 50, G: 50, B: 51, A: 255}, Text: LabelStyle{Color: highEmphasisTextColor, TextSize: unit.Sp(14)}}
	th.Alert.Warning = AlertStyle{Bg: warningColor, Text: LabelStyle{Color: black, TextSize: unit.Sp(14)}}
	th.Alert.Error = AlertStyle{Bg: errorColor, Text: LabelStyle{Color: black, TextSize: unit.Sp(14)}}
	th.Alert.Margin = layout.UniformInset(unit.Dp(6))
	th.Alert.Inset = layout.UniformInset(unit.Dp(6))

	th.Dialog.Bg = color.NRGBA{A: 224}
	th.Dialog.Surface = color.NRGBA{R: 50, G: 50, B: 51, A: 255}
	th.Dialog.Title = LabelStyle{Color: highEmphasisTextColor, TextSize: unit.Sp(18)}
	th.Dialog.Text = LabelStyle{Color: highEmphasisTextColor, TextSize: unit.Sp(14)}
	return th
}
