package gioui

import (
	"image"
	"slices"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/a5af/pianoroll/editor"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Toolbar struct {
		openBtn, saveBtn   *ActionClickable
		undoBtn, redoBtn   *ActionClickable
		playBtn            *BoolClickable
		stopBtn            *ActionClickable
		loopBtn, followBtn *BoolClickable
		zoomInBtn, zoomOut *ActionClickable
		resetZoomBtn       *ActionClickable
		snapBtn            *BoolClickable
		divisionBtn        *ActionClickable
		toolBtns           [editor.NumTools]*ActionClickable
		status             *editor.StatusFormatter
		title              cases.Caser
		snapDivision       editor.Int
		model              *editor.Model
	}

	cycleDivision struct{ v *editor.ViewModel }
)

var toolIcons = [editor.NumTools][]byte{
	icons.ImageCropFree,
	icons.ImageEdit,
	icons.ActionDelete,
	icons.ContentContentCut,
}

func NewToolbar(m *editor.Model, status *editor.StatusFormatter) *Toolbar {
	view := m.View()
	t := &Toolbar{
		openBtn:      NewActionClickable(m.OpenFile()),
		saveBtn:      NewActionClickable(m.SaveFile()),
		undoBtn:      NewActionClickable(m.History().Undo()),
		redoBtn:      NewActionClickable(m.History().Redo()),
		playBtn:      NewBoolClickable(m.Play().Playing()),
		stopBtn:      NewActionClickable(m.Play().StopAction()),
		loopBtn:      NewBoolClickable(m.Play().Looping()),
		followBtn:    NewBoolClickable(m.Play().Follow()),
		zoomInBtn:    NewActionClickable(view.ZoomInAction(editor.Horizontal)),
		zoomOut:      NewActionClickable(view.ZoomOutAction(editor.Horizontal)),
		resetZoomBtn: NewActionClickable(view.ResetZoomAction()),
		snapBtn:      NewBoolClickable(view.Snap()),
		divisionBtn:  NewActionClickable(editor.MakeAction(&cycleDivision{v: view})),
		status:       status,
		title:        cases.Title(language.English),
		snapDivision: view.SnapDivision(),
		model:        m,
	}
	for i := range t.toolBtns {
		t.toolBtns[i] = NewActionClickable(view.ToolAction(editor.Tool(i)))
	}
	return t
}

func (c *cycleDivision) Enabled() bool { return c.v.State().Snap.Enabled }
func (c *cycleDivision) Do() {
	i := slices.Index(editor.SnapDivisions[:], c.v.State().Snap.Division)
	c.v.SetSnapDivision(editor.SnapDivisions[(i+1)%len(editor.SnapDivisions)])
}

func (t *Toolbar) Layout(gtx C, th *Theme) D {
	height := gtx.Dp(th.Toolbar.Height)
	gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, height))
	paint.FillShape(gtx.Ops, th.Toolbar.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	playIcon := ToggleIcon(gtx, th, t.playBtn, icons.AVPlayArrow, icons.AVPause, "Play/Pause")
	children := []layout.FlexChild{
		layout.Rigid(ActionIcon(gtx, th, t.openBtn, icons.FileFolderOpen, "Open").Layout),
		layout.Rigid(ActionIcon(gtx, th, t.saveBtn, icons.ContentSave, "Save").Layout),
		layout.Rigid(ActionIcon(gtx, th, t.undoBtn, icons.ContentUndo, "Undo").Layout),
		layout.Rigid(ActionIcon(gtx, th, t.redoBtn, icons.ContentRedo, "Redo").Layout),
		layout.Rigid(spacer(12)),
		layout.Rigid(playIcon.Layout),
		layout.Rigid(ActionIcon(gtx, th, t.stopBtn, icons.AVStop, "Stop").Layout),
		layout.Rigid(ToggleIcon(gtx, th, t.loopBtn, icons.AVLoop, icons.AVLoop, "Loop").Layout),
		layout.Rigid(ToggleIcon(gtx, th, t.followBtn, icons.NotificationSyncDisabled, icons.NotificationSync, "Follow").Layout),
		layout.Rigid(spacer(12)),
		layout.Rigid(ActionIcon(gtx, th, t.zoomInBtn, icons.ActionZoomIn, "Zoom in").Layout),
		layout.Rigid(ActionIcon(gtx, th, t.zoomOut, icons.ActionZoomOut, "Zoom out").Layout),
		layout.Rigid(ActionIcon(gtx, th, t.resetZoomBtn, icons.ImageCenterFocusStrong, "Reset zoom").Layout),
		layout.Rigid(ToggleIcon(gtx, th, t.snapBtn, icons.ImageGridOff, icons.ImageGridOn, "Snap").Layout),
		layout.Rigid(t.divisionButton(gtx, th)),
		layout.Rigid(spacer(12)),
	}
	current := t.model.View().Tool()
	for i, btn := range t.toolBtns {
		style := ActionIcon(gtx, th, btn, toolIcons[i], t.title.String(editor.Tool(i).String()))
		if editor.Tool(i) == current {
			style.Color = th.Toolbar.Active
		}
		children = append(children, layout.Rigid(style.Layout))
	}
	status := t.status.Format(t.model.StatusInfo())
	children = append(children,
		layout.Flexed(1, func(gtx C) D {
			return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, func(gtx C) D {
				st := th.Toolbar.Status
				st.Alignment = layout.E
				gtx.Constraints.Min = gtx.Constraints.Max
				return Label(th, &st, status).Layout(gtx)
			})
		}),
	)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (t *Toolbar) divisionButton(gtx C, th *Theme) layout.Widget {
	btn := ActionButton(gtx, th, t.divisionBtn, t.snapDivision.String())
	if !t.snapDivision.Enabled() {
		btn.Color = th.Toolbar.Disabled
	}
	return btn.Layout
}

func spacer(dp unit.Dp) layout.Widget {
	return func(gtx C) D { return D{Size: image.Pt(gtx.Dp(dp), 0)} }
}
