package gioui

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// TrackList shows the tracks of the document with their solo and mute
	// toggles.
	TrackList struct {
		list    layout.List
		buttons map[string]*trackButtons
		title   cases.Caser
	}

	trackButtons struct {
		solo, mute *BoolClickable
	}
)

func NewTrackList() *TrackList {
	return &TrackList{
		list:    layout.List{Axis: layout.Vertical},
		buttons: map[string]*trackButtons{},
		title:   cases.Title(language.English),
	}
}

func (l *TrackList) Layout(gtx C, th *Theme, m *editor.Model) D {
	size := image.Pt(gtx.Dp(th.Tracks.Width), gtx.Constraints.Max.Y)
	gtx.Constraints = layout.Exact(size)
	paint.FillShape(gtx.Ops, th.Tracks.Bg, clip.Rect{Max: size}.Op())
	doc := m.Document()
	if doc == nil {
		return D{Size: size}
	}
	l.prune(doc)
	return l.list.Layout(gtx, len(doc.Tracks), func(gtx C, i int) D {
		return l.layoutTrack(gtx, th, m, &doc.Tracks[i])
	})
}

func (l *TrackList) prune(doc *pianoroll.Document) {
	for id := range l.buttons {
		if doc.TrackIndex(id) < 0 {
			delete(l.buttons, id)
		}
	}
}

func (l *TrackList) layoutTrack(gtx C, th *Theme, m *editor.Model, t *pianoroll.Track) D {
	btns, ok := l.buttons[t.ID]
	if !ok {
		btns = &trackButtons{
			solo: NewBoolClickable(m.Edit().TrackSolo(t.ID)),
			mute: NewBoolClickable(m.Edit().TrackMute(t.ID)),
		}
		l.buttons[t.ID] = btns
	}
	swatch := func(gtx C) D {
		s := image.Pt(gtx.Dp(6), gtx.Dp(32))
		paint.FillShape(gtx.Ops, t.Color.NRGBA(), clip.Rect{Max: s}.Op())
		return D{Size: s}
	}
	names := func(gtx C) D {
		detail := l.title.String(t.Instrument)
		if detail == "" {
			detail = pluralize(len(t.Notes), "note")
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(Label(th, &th.Tracks.Name, t.Name).Layout),
			layout.Rigid(Label(th, &th.Tracks.Detail, detail).Layout),
		)
	}
	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(swatch),
			layout.Rigid(spacer(6)),
			layout.Flexed(1, names),
			layout.Rigid(ToggleText(gtx, th, btns.solo, "S", th.Tracks.Solo).Layout),
			layout.Rigid(spacer(2)),
			layout.Rigid(ToggleText(gtx, th, btns.mute, "M", th.Tracks.Mute).Layout),
		)
	})
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
