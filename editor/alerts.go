package editor

import (
	"iter"
	"time"

	log "github.com/sirupsen/logrus"
)

type (
	// Alerts is the queue of messages shown to the user as toasts. Alerts
	// with a name replace the previous alert of the same name, so e.g. a zoom
	// level indicator does not pile up.
	Alerts struct {
		alerts []Alert
		log    log.FieldLogger
	}

	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeTime        = 150 * time.Millisecond
)

func (p AlertPriority) String() string {
	switch p {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

// Add queues an alert shown for the default duration.
func (m *Alerts) Add(message string, priority AlertPriority) {
	m.AddAlert(Alert{Priority: priority, Message: message, Duration: defaultAlertDuration})
}

// AddNamed queues an alert replacing the earlier alert with the same name.
func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	m.AddAlert(Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration})
}

func (m *Alerts) AddAlert(a Alert) {
	if m.log != nil && a.Priority > Info {
		entry := m.log.WithFields(log.Fields{"alert": a.Name})
		if a.Priority == Error {
			entry.Error(a.Message)
		} else {
			entry.Warn(a.Message)
		}
	}
	if a.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == a.Name {
				a.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = a
				return
			}
		}
	}
	m.alerts = append(m.alerts, a)
}

// Update advances the fade animations by d and drops alerts that have faded
// out. It returns true while something is still animating.
func (m *Alerts) Update(d time.Duration) (animating bool) {
	step := float64(d) / float64(alertFadeTime)
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Duration > d {
			a.Duration -= d
			if a.FadeLevel < 1 {
				a.FadeLevel = min(a.FadeLevel+step, 1)
				animating = true
			}
		} else {
			a.Duration = 0
			a.FadeLevel -= step
			if a.FadeLevel <= 0 {
				continue
			}
			animating = true
		}
		kept = append(kept, a)
	}
	m.alerts = kept
	return animating
}

// Iterate visits the alerts, newest first.
func (m *Alerts) Iterate(yield func(index int, alert Alert) bool) {
	for i := len(m.alerts) - 1; i >= 0; i-- {
		if !yield(i, m.alerts[i]) {
			return
		}
	}
}

// All is Iterate as an iterator value.
func (m *Alerts) All() iter.Seq2[int, Alert] { return m.Iterate }

func (m *Alerts) Len() int { return len(m.alerts) }
