package gioui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/a5af/pianoroll/editor"
	log "github.com/sirupsen/logrus"
)

type (
	// ActionClickable ties a clickable to a model action; the action is run
	// when the button is clicked and the action is enabled.
	ActionClickable struct {
		Action    editor.Action
		Clickable widget.Clickable
	}

	// BoolClickable toggles a model bool on click.
	BoolClickable struct {
		Bool      editor.Bool
		Clickable widget.Clickable
	}
)

var iconCache = map[*byte]*widget.Icon{}

// widgetForIcon returns a widget for IconVG data, caching the results.
func widgetForIcon(icon []byte) *widget.Icon {
	if w, ok := iconCache[&icon[0]]; ok {
		return w
	}
	w, err := widget.NewIcon(icon)
	if err != nil {
		log.WithError(err).Fatal("invalid icon")
	}
	iconCache[&icon[0]] = w
	return w
}

func NewActionClickable(a editor.Action) *ActionClickable {
	return &ActionClickable{Action: a}
}

func NewBoolClickable(b editor.Bool) *BoolClickable {
	return &BoolClickable{Bool: b}
}

func (a *ActionClickable) update(gtx C) {
	for a.Clickable.Clicked(gtx) {
		a.Action.Do()
	}
}

func (b *BoolClickable) update(gtx C) {
	for b.Clickable.Clicked(gtx) {
		if b.Bool.Enabled() {
			b.Bool.Toggle()
		}
	}
}

// ActionIcon lays out an icon button running the action. Disabled actions are
// drawn greyed out.
func ActionIcon(gtx C, th *Theme, a *ActionClickable, icon []byte, description string) material.IconButtonStyle {
	a.update(gtx)
	c := th.Toolbar.Inactive
	if !a.Action.Enabled() {
		c = th.Toolbar.Disabled
	}
	return iconButton(th, &a.Clickable, icon, description, c)
}

// ToggleIcon lays out an icon button showing onIcon and the active color
// while the bool is true.
func ToggleIcon(gtx C, th *Theme, b *BoolClickable, offIcon, onIcon []byte, description string) material.IconButtonStyle {
	b.update(gtx)
	icon, c := offIcon, th.Toolbar.Inactive
	if b.Bool.Value() {
		icon, c = onIcon, th.Toolbar.Active
	}
	if !b.Bool.Enabled() {
		c = th.Toolbar.Disabled
	}
	return iconButton(th, &b.Clickable, icon, description, c)
}

func iconButton(th *Theme, c *widget.Clickable, icon []byte, description string, fg color.NRGBA) material.IconButtonStyle {
	ret := material.IconButton(th.Material, c, widgetForIcon(icon), description)
	ret.Background = transparent
	ret.Color = fg
	ret.Size = unit.Dp(20)
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

// ActionButton is a text button running the action, used in dialogs.
func ActionButton(gtx C, th *Theme, a *ActionClickable, txt string) material.ButtonStyle {
	a.update(gtx)
	ret := material.Button(th.Material, &a.Clickable, txt)
	ret.Color = th.Material.Palette.Fg
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

// ToggleText is a small text button colored by the bool, e.g. the S and M
// buttons of a track.
func ToggleText(gtx C, th *Theme, b *BoolClickable, txt string, on color.NRGBA) material.ButtonStyle {
	b.update(gtx)
	ret := material.Button(th.Material, &b.Clickable, txt)
	ret.TextSize = unit.Sp(12)
	ret.Inset = layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(6), Right: unit.Dp(6)}
	ret.CornerRadius = unit.Dp(3)
	if b.Bool.Value() {
		ret.Background = on
		ret.Color = black
	} else {
		ret.Background = transparent
		ret.Color = mediumEmphasisTextColor
	}
	return ret
}
