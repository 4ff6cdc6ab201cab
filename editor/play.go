package editor

import (
	"math"
	"time"
)

type (
	// Loop is the region the transport wraps around while looping.
	Loop struct {
		Enabled    bool
		Start, End float64
	}

	// PlaybackStatus is what the renderer and the toolbar need to know about
	// the transport.
	PlaybackStatus struct {
		Playing bool
		Paused  bool
		Time    float64
		Loop    Loop
	}

	// playState tracks the current time against the wall clock: while
	// playing, the time is position plus the time elapsed since started.
	playState struct {
		playing  bool
		paused   bool
		position float64
		started  time.Time
		loop     Loop
	}
)

// Play returns the transport view of the session. It keeps the current time
// only; no audio is produced.
func (m *Model) Play() *PlayModel { return (*PlayModel)(m) }

type PlayModel Model

func (m *PlayModel) change(kind string) func() {
	return (*Model)(m).change("Play."+kind, ViewChange, MinorChange)
}

// Status returns the transport state at the current wall-clock time.
func (m *PlayModel) Status() PlaybackStatus {
	return PlaybackStatus{
		Playing: m.play.playing,
		Paused:  m.play.paused,
		Time:    m.currentTime(),
		Loop:    m.play.loop,
	}
}

func (m *PlayModel) currentTime() float64 {
	t := m.play.position
	if m.play.playing {
		t += m.now().Sub(m.play.started).Seconds()
	}
	l := m.play.loop
	if l.Enabled && t >= l.End {
		t = l.Start + math.Mod(t-l.Start, l.End-l.Start)
	}
	return t
}

func (m *PlayModel) Start() {
	if m.play.playing {
		return
	}
	defer m.change("Start")()
	m.play.playing = true
	m.play.paused = false
	m.play.started = m.now()
}

// Pause stops the clock and keeps the current time.
func (m *PlayModel) Pause() {
	if !m.play.playing {
		return
	}
	defer m.change("Pause")()
	m.play.position = m.currentTime()
	m.play.playing = false
	m.play.paused = true
}

// Stop stops the clock and rewinds to the beginning.
func (m *PlayModel) Stop() {
	defer m.change("Stop")()
	m.play.playing = false
	m.play.paused = false
	m.play.position = 0
}

// SetCurrentTime moves the playhead. Negative times are clamped to zero.
func (m *PlayModel) SetCurrentTime(t float64) {
	if math.IsNaN(t) {
		return
	}
	defer m.change("SetCurrentTime")()
	m.play.position = math.Max(t, 0)
	m.play.started = m.now()
}

// SetLoop sets the loop region. A region that is empty after clamping the
// start to zero disables looping.
func (m *PlayModel) SetLoop(enabled bool, start, end float64) {
	defer m.change("SetLoop")()
	start = math.Max(start, 0)
	if !(end > start) {
		enabled = false
	}
	if m.play.playing {
		m.play.position = m.currentTime()
		m.play.started = m.now()
	}
	m.play.loop = Loop{Enabled: enabled, Start: start, End: end}
}

// Tick is called on every redraw tick. It stops the transport when it runs
// past the end of the document without looping, and returns the status.
func (m *PlayModel) Tick() PlaybackStatus {
	s := m.Status()
	if !s.Playing || s.Loop.Enabled || m.d.Document == nil {
		return s
	}
	if s.Time >= m.d.Document.Duration {
		m.Stop()
		m.log.WithField("time", s.Time).Debug("playback reached the end of the document")
		return m.Status()
	}
	return s
}

// Follow returns a Bool controlling whether the view scrolls along with the
// playhead.
func (m *PlayModel) Follow() Bool { return MakeBoolFromPtr(&m.follow) }

// Playing returns a Bool for the play/pause toggle.
func (m *PlayModel) Playing() Bool { return MakeBool((*playing)(m)) }

type playing PlayModel

func (m *playing) Value() bool { return m.play.playing }
func (m *playing) SetValue(val bool) {
	if val {
		(*PlayModel)(m).Start()
	} else {
		(*PlayModel)(m).Pause()
	}
}
func (m *playing) Enabled() bool { return m.d.Document != nil }

// Looping returns a Bool toggling the loop. Enabling it without a region
// loops over the whole document.
func (m *PlayModel) Looping() Bool { return MakeBool((*looping)(m)) }

type looping PlayModel

func (m *looping) Value() bool { return m.play.loop.Enabled }
func (m *looping) SetValue(val bool) {
	l := m.play.loop
	if val && !(l.End > l.Start) && m.d.Document != nil {
		l.Start, l.End = 0, m.d.Document.Duration
	}
	(*PlayModel)(m).SetLoop(val, l.Start, l.End)
}
func (m *looping) Enabled() bool { return m.d.Document != nil }

// StopAction returns an Action for the stop button.
func (m *PlayModel) StopAction() Action { return MakeAction((*stopAction)(m)) }

type stopAction PlayModel

func (m *stopAction) Do() { (*PlayModel)(m).Stop() }
func (m *stopAction) Enabled() bool {
	return m.play.playing || m.play.paused || m.play.position > 0
}
