package editor_test

import (
	"testing"
	"time"

	"github.com/a5af/pianoroll/editor"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func playModel(t *testing.T) (*editor.Model, *fakeClock) {
	m := newTestModel(t)
	c := &fakeClock{t: time.Unix(0, 0)}
	m.SetClock(c.now)
	return m, c
}

func TestPlayPauseStop(t *testing.T) {
	m, c := playModel(t)
	p := m.Play()
	p.Start()
	c.advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, p.Status().Time, 1e-9)
	assert.True(t, m.Snapshot().Playback.Playing)
	p.Pause()
	c.advance(time.Second)
	s := p.Status()
	assert.False(t, s.Playing)
	assert.True(t, s.Paused)
	assert.InDelta(t, 0.5, s.Time, 1e-9)
	p.Start()
	c.advance(250 * time.Millisecond)
	assert.InDelta(t, 0.75, p.Status().Time, 1e-9)
	p.Stop()
	assert.Equal(t, editor.PlaybackStatus{}, p.Status())
}

func TestSetCurrentTime(t *testing.T) {
	m, c := playModel(t)
	p := m.Play()
	p.SetCurrentTime(-3)
	assert.Equal(t, 0.0, p.Status().Time)
	p.SetCurrentTime(1.25)
	p.Start()
	c.advance(time.Second)
	assert.InDelta(t, 2.25, p.Status().Time, 1e-9)
}

func TestPlaybackStopsAtEnd(t *testing.T) {
	m, c := playModel(t)
	p := m.Play()
	p.Start()
	c.advance(1500 * time.Millisecond)
	assert.True(t, p.Tick().Playing)
	c.advance(time.Second)
	s := p.Tick()
	assert.False(t, s.Playing)
	assert.Equal(t, 0.0, s.Time)
}

func TestLoopWraps(t *testing.T) {
	m, c := playModel(t)
	p := m.Play()
	p.SetLoop(true, 0.5, 1.5)
	p.SetCurrentTime(1)
	p.Start()
	c.advance(800 * time.Millisecond)
	s := p.Tick()
	assert.True(t, s.Playing)
	assert.InDelta(t, 0.8, s.Time, 1e-9)
	c.advance(10 * time.Second)
	assert.True(t, p.Tick().Playing)

	p.SetLoop(true, 2, 1)
	assert.False(t, p.Status().Loop.Enabled)
}

func TestLoopingBoolCoversDocument(t *testing.T) {
	m, _ := playModel(t)
	m.Play().Looping().SetValue(true)
	assert.Equal(t, editor.Loop{Enabled: true, Start: 0, End: 2}, m.Play().Status().Loop)
}
