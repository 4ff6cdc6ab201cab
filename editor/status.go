package editor

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
)

// StatusInfo is the data available to the status bar template.
type StatusInfo struct {
	Title        string
	Zoom         float64
	VerticalZoom float64
	Tracks       int
	Notes        int
	Selected     int
	Tool         string
	Snap         string
	Time         float64
	Playing      bool
	Changed      bool
}

const DefaultStatusTemplate = `Zoom: {{ printf "%.0f" .Zoom }}px/s | {{ .Tracks }} tracks` +
	`{{ if .Selected }} | {{ .Selected }} selected{{ end }} | {{ .Tool | title }}`

// StatusFormatter renders StatusInfo with a text/template, with the sprig
// functions available.
type StatusFormatter struct {
	tmpl *template.Template
}

func NewStatusFormatter(text string) (*StatusFormatter, error) {
	tmpl, err := template.New("status").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse status template: %w", err)
	}
	return &StatusFormatter{tmpl: tmpl}, nil
}

func (f *StatusFormatter) Format(info StatusInfo) string {
	var b strings.Builder
	if err := f.tmpl.Execute(&b, info); err != nil {
		return err.Error()
	}
	return b.String()
}

// StatusInfo collects the status bar data of the session.
func (m *Model) StatusInfo() StatusInfo {
	s := StatusInfo{
		Zoom:         m.d.View.Zoom.Horizontal,
		VerticalZoom: m.d.View.Zoom.Vertical,
		Selected:     len(m.Selection().Selected()),
		Tool:         m.d.Tool.String(),
		Changed:      m.d.ChangedSinceSave,
		Snap:         "off",
	}
	if m.d.View.Snap.Enabled {
		s.Snap = fmt.Sprintf("1/%d", m.d.View.Snap.Division)
	}
	p := m.Play().Status()
	s.Time, s.Playing = p.Time, p.Playing
	if doc := m.d.Document; doc != nil {
		s.Title = doc.Title
		s.Tracks = len(doc.Tracks)
		s.Notes = doc.NoteCount()
	}
	return s
}
