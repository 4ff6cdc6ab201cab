package gioui

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/explorer"
	"github.com/a5af/pianoroll/editor"
)

type (
	// Editor is the window of one editing session.
	Editor struct {
		Theme      *Theme
		PianoRoll  *PianoRoll
		Keys       *PianoKeys
		Timeline   *Timeline
		Toolbar    *Toolbar
		Tracks     *TrackList
		Dialog     *ConfirmDialog
		PopupAlert *AlertsState
		Explorer   *explorer.Explorer
		Exploring  bool

		filePath    editor.String
		preferences Preferences
		window      *app.Window

		*editor.Model
	}

	C = layout.Context
	D = layout.Dimensions
)

const appName = "Piano Roll"

func NewEditor(model *editor.Model) *Editor {
	th := NewTheme()
	e := &Editor{
		Theme:      th,
		PianoRoll:  NewPianoRoll(th, model.Log()),
		Keys:       &PianoKeys{},
		Timeline:   &Timeline{},
		Tracks:     NewTrackList(),
		Dialog:     NewConfirmDialog(model),
		PopupAlert: NewAlertsState(),
		filePath:   model.FilePath(),
		Model:      model,
	}
	if warn := ReadConfig(defaultPreferences, "preferences.yml", &e.preferences); warn != nil {
		e.warn(warn)
	}
	e.preferences.Apply(model)
	status, err := editor.NewStatusFormatter(e.preferences.StatusTemplate)
	if err != nil {
		e.warn(err)
		status, _ = editor.NewStatusFormatter(editor.DefaultStatusTemplate)
	}
	e.Toolbar = NewToolbar(model, status)
	e.PianoRoll.FitDocument()
	return e
}

func (e *Editor) warn(err error) {
	e.Alerts().AddAlert(editor.Alert{
		Priority: editor.Warning,
		Message:  err.Error(),
		Duration: 10 * time.Second,
	})
}

// Main runs the window loop until the session quits. It must be called from
// a goroutine other than the one running app.Main.
func (e *Editor) Main() {
	redraw := time.NewTicker(e.preferences.redrawInterval())
	defer redraw.Stop()
	recovery := time.NewTicker(e.preferences.recoveryInterval())
	defer recovery.Stop()
	unsubscribe := e.Subscribe(func(editor.Snapshot) {
		if e.window != nil {
			e.window.Invalidate()
		}
	})
	defer unsubscribe()
	var ops op.Ops
	titlePath := e.filePath.Value()
	for !e.Quitted() {
		w := e.newWindow()
		e.window = w
		w.Option(app.Title(titleFromPath(titlePath)))
		e.Explorer = explorer.NewExplorer(w)
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := w.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case msg := <-e.Broker().ToGUI:
				if msg, ok := msg.(editor.MsgToGUI); ok {
					switch msg.Kind {
					case editor.GUIMessageFitDocument:
						e.PianoRoll.FitDocument()
					case editor.GUIMessageRevealTime:
						e.PianoRoll.RevealTime(msg.Param)
					}
				}
				w.Invalidate()
			case msg := <-e.Broker().ToModel:
				e.ProcessMsg(msg)
				w.Invalidate()
			case <-e.Broker().CloseGUI:
				e.ForceQuit().Do()
				w.Perform(system.ActionClose)
			case <-redraw.C:
				w.Invalidate()
			case <-recovery.C:
				e.saveRecovery()
			case ev := <-events:
				e.Explorer.ListenEvents(ev)
				switch ev := ev.(type) {
				case app.DestroyEvent:
					if ev.Err != nil {
						e.Log().WithError(ev.Err).Error("window destroyed")
					}
					e.Quit().Do()
					acks <- struct{}{}
					break F // a new window is opened if quitting was not confirmed
				case app.FrameEvent:
					if titlePath != e.filePath.Value() {
						titlePath = e.filePath.Value()
						w.Option(app.Title(titleFromPath(titlePath)))
					}
					gtx := app.NewContext(&ops, ev)
					e.Layout(gtx)
					ev.Frame(gtx.Ops)
					if e.Quitted() {
						w.Perform(system.ActionClose)
					}
				}
				acks <- struct{}{}
			}
		}
	}
	e.window = nil
	e.saveRecovery()
	close(e.Broker().FinishedGUI)
}

func (e *Editor) saveRecovery() {
	if err := e.History().SaveRecovery(); err != nil {
		e.Log().WithError(err).Warn("could not save recovery file")
	}
}

func (e *Editor) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Size(e.preferences.WindowSize()))
	if e.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func titleFromPath(path string) string {
	if path == "" {
		return appName
	}
	return fmt.Sprintf("%s - %s", appName, path)
}

func (e *Editor) Layout(gtx C) {
	th := e.Theme
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, th.Material.Bg)
	event.Op(gtx.Ops, e)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D { return e.Toolbar.Layout(gtx, th) }),
		layout.Flexed(1, e.layoutMain),
	)
	alerts := Alerts(e.Alerts(), th, e.PopupAlert)
	alerts.Layout(gtx)
	e.showDialog(gtx)
	// top level input handler for the keys nobody else consumed and for
	// clipboard reads
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			transfer.TargetFilter{Target: e, Type: "application/text"},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.Event:
			e.KeyEvent(ev, gtx)
		case transfer.DataEvent:
			e.paste(ev.Open())
		}
	}
}

func (e *Editor) layoutMain(gtx C) D {
	th := e.Theme
	view := e.View().State()
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx C) D { return e.Tracks.Layout(gtx, th, e.Model) }),
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					size := image.Pt(gtx.Dp(th.Keys.Width), gtx.Dp(th.Timeline.Height))
					paint.FillShape(gtx.Ops, th.Timeline.Bg, clip.Rect{Max: size}.Op())
					return D{Size: size}
				}),
				layout.Flexed(1, func(gtx C) D { return e.Keys.Layout(gtx, th, view) }),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx C) D { return e.Timeline.Layout(gtx, th, e.Model) }),
				layout.Flexed(1, func(gtx C) D { return e.PianoRoll.Layout(gtx, e.Model) }),
			)
		}),
	)
}

func (e *Editor) paste(r io.ReadCloser) {
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		e.Alerts().Add(fmt.Sprintf("Error reading clipboard: %v", err), editor.Error)
		return
	}
	if !e.Selection().PasteNotes(data) {
		e.Alerts().Add("The clipboard does not contain notes", editor.Warning)
	}
}

func (e *Editor) showDialog(gtx C) {
	if e.Exploring {
		return
	}
	switch e.Model.Dialog() {
	case editor.OpenFileChanges, editor.QuitChanges:
		e.Dialog.Layout(gtx, e.Theme, "Save changes to the document?", "Your changes will be lost if you don't save them.")
	case editor.OpenFileExplorer:
		e.explorerChooseFile(e.readDocument, ".mid", ".midi", ".yml", ".yaml")
	case editor.OpenFileSaveExplorer, editor.QuitSaveExplorer, editor.SaveAsExplorer:
		filename := e.filePath.Value()
		if filename == "" {
			filename = "untitled.mid"
		}
		e.explorerCreateFile(e.writeDocument, filename)
	}
}

func (e *Editor) readDocument(rc io.ReadCloser) {
	if err := e.ReadDocument(rc); err != nil {
		e.Cancel().Do()
	}
}

func (e *Editor) writeDocument(wc io.WriteCloser) {
	if err := e.WriteDocument(wc); err != nil {
		e.Cancel().Do()
	}
}

func (e *Editor) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.ChooseFile(extensions...)
		e.Broker().ToModel <- editor.MsgToModel{Data: func() {
			e.Exploring = false
			if err != nil {
				e.explorerFailed(err)
				return
			}
			success(file)
		}}
	}()
}

func (e *Editor) explorerCreateFile(success func(io.WriteCloser), filename string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.CreateFile(filename)
		e.Broker().ToModel <- editor.MsgToModel{Data: func() {
			e.Exploring = false
			if err != nil {
				e.explorerFailed(err)
				return
			}
			success(file)
		}}
	}()
}

func (e *Editor) explorerFailed(err error) {
	e.Cancel().Do()
	if !errors.Is(err, explorer.ErrUserDecline) {
		e.Alerts().Add(err.Error(), editor.Error)
	}
}

func nopCloser(data []byte) io.ReadCloser { return io.NopCloser(bytes.NewReader(data)) }

