package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gioui.org/unit"
	"github.com/a5af/pianoroll/editor"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Window           WindowPreferences
		StatusTemplate   string `yaml:"status_template"`
		Tool             string
		Snap             SnapPreferences
		RedrawInterval   time.Duration `yaml:"redraw_interval"`
		RecoveryInterval time.Duration `yaml:"recovery_interval"`
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}

	SnapPreferences struct {
		Enabled  bool
		Division int
	}
)

//go:embed preferences.yml
var defaultPreferences []byte

// configDirName is the directory under os.UserConfigDir() holding the user's
// preferences, key bindings and the recovery file.
const configDirName = "pianoroll"

// ReadConfig decodes the embedded defaults into target and then overlays the
// user's file of the same name, if there is one. A broken default is a
// programming error and panics; a broken user file is returned as a warning.
func ReadConfig(defaults []byte, filename string, target any) (warn error) {
	if err := yaml.UnmarshalStrict(defaults, target); err != nil {
		panic(fmt.Errorf("failed to unmarshal default %s: %w", filename, err))
	}
	b, err := readUserConfig(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.UnmarshalStrict(b, target); err != nil {
		return fmt.Errorf("invalid %s: %w", filename, err)
	}
	return nil
}

func readUserConfig(filename string) ([]byte, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(dir, configDirName, filename))
}

// RecoveryFilePath returns where the session is periodically saved, or an
// empty string if there is no config directory.
func RecoveryFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, "recovery.json")
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}

// Apply sets the initial tool and snap of the session.
func (p Preferences) Apply(m *editor.Model) {
	view := m.View()
	if t, ok := editor.ParseTool(p.Tool); ok {
		view.SetTool(t)
	}
	view.Snap().SetValue(p.Snap.Enabled)
	view.SetSnapDivision(p.Snap.Division)
}

func (p Preferences) redrawInterval() time.Duration {
	if p.RedrawInterval <= 0 {
		return 16 * time.Millisecond
	}
	return p.RedrawInterval
}

func (p Preferences) recoveryInterval() time.Duration {
	if p.RecoveryInterval <= 0 {
		return 30 * time.Second
	}
	return p.RecoveryInterval
}
