package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	LabelStyle struct {
		Color      color.NRGBA
		ShadeColor color.NRGBA // zero alpha means no shade
		Alignment  layout.Direction
		Font       font.Font
		TextSize   unit.Sp
	}

	LabelWidget struct {
		Text   string
		Shaper *text.Shaper
		LabelStyle
	}
)

func Label(th *Theme, style *LabelStyle, txt string) LabelWidget {
	return LabelWidget{Text: txt, Shaper: th.Material.Shaper, LabelStyle: *style}
}

func (l LabelWidget) Layout(gtx C) D {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		if l.ShadeColor.A > 0 {
			offs := op.Offset(image.Pt(1, 1)).Push(gtx.Ops)
			l.layoutText(gtx, l.ShadeColor)
			offs.Pop()
		}
		return l.layoutText(gtx, l.Color)
	})
}

func (l LabelWidget) layoutText(gtx C, c color.NRGBA) D {
	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	material := m.Stop()
	return widget.Label{Alignment: text.Start, MaxLines: 1}.Layout(gtx, l.Shaper, l.Font, l.TextSize, l.Text, material)
}
