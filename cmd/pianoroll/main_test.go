package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sketch = `
title: Sketch
tracks:
  - name: Piano
    notes:
      - {pitch: 60, start: 0, duration: 0.5, velocity: 0.9}
      - {pitch: 72, start: 0.5, duration: 0.5, velocity: 0.7}
  - name: Bass
    instrument: electric bass
    notes:
      - {pitch: 48, start: 0, duration: 2, velocity: 0.5}
`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeSketch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.yml")
	require.NoError(t, os.WriteFile(path, []byte(sketch), 0o644))
	return path
}

func TestInfo(t *testing.T) {
	out := execute(t, "info", writeSketch(t))
	assert.Contains(t, out, "title:    Sketch")
	assert.Contains(t, out, "notes:    3")
	assert.Contains(t, out, "range:    C3 - C5")
	assert.Contains(t, out, `"Bass", 1 notes, electric bass`)
}

func TestExportToMIDIAndBack(t *testing.T) {
	dir := t.TempDir()
	mid := filepath.Join(dir, "sketch.mid")
	execute(t, "export", writeSketch(t), mid)
	b, err := os.ReadFile(mid)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(b[:4]))

	out := execute(t, "info", mid)
	assert.Contains(t, out, "notes:    3")
	assert.Contains(t, out, "range:    C3 - C5")
}

func TestInfoMissingFile(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"info", filepath.Join(t.TempDir(), "nope.mid")})
	assert.Error(t, rootCmd.Execute())
}

func TestBadLogLevel(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--log-level", "loud", "version"})
	assert.Error(t, rootCmd.Execute())
	logLevel = "info"
}
