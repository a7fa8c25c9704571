package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	AccentPresets = []string{"violet", "blue", "teal", "green", "amber", "rose"}
	Themes        = []string{"dark", "light"}
	Instruments   = []string{"guitar", "bass", "violin", "cello", "ukulele", "other"}
)

const DefaultAccent = "violet"

// Preferences is process-wide user configuration. It is loaded once at
// startup and written back whenever it changes.
type Preferences struct {
	Accent            string `yaml:"accent"`
	Theme             string `yaml:"theme"`
	DefaultBPM        int    `yaml:"default_bpm"`
	DefaultVolume     int    `yaml:"default_volume"`
	DefaultInstrument string `yaml:"default_instrument"`
	DashboardWeeks    int    `yaml:"dashboard_weeks"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Accent:            DefaultAccent,
		Theme:             "dark",
		DefaultBPM:        120,
		DefaultVolume:     75,
		DefaultInstrument: "guitar",
		DashboardWeeks:    8,
	}
}

// Normalize replaces unknown or out-of-range values with defaults.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()
	if !slices.Contains(AccentPresets, p.Accent) {
		p.Accent = def.Accent
	}
	if !slices.Contains(Themes, p.Theme) {
		p.Theme = def.Theme
	}
	if p.DefaultBPM < 40 || p.DefaultBPM > 240 {
		p.DefaultBPM = def.DefaultBPM
	}
	if p.DefaultVolume < 0 || p.DefaultVolume > 100 {
		p.DefaultVolume = def.DefaultVolume
	}
	if !slices.Contains(Instruments, p.DefaultInstrument) {
		p.DefaultInstrument = def.DefaultInstrument
	}
	if p.DashboardWeeks < 1 || p.DashboardWeeks > 52 {
		p.DashboardWeeks = def.DashboardWeeks
	}
	return p
}

// LoadPreferences reads the YAML file at path. A missing file yields defaults.
func LoadPreferences(path string) (Preferences, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPreferences(), nil
		}
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	prefs := DefaultPreferences()
	if err := yaml.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Normalize(), nil
}

func SavePreferences(path string, prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	raw, err := yaml.Marshal(prefs.Normalize())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Set updates a single preference by its YAML key.
func (p Preferences) Set(key, value string) (Preferences, error) {
	switch key {
	case "accent":
		if !slices.Contains(AccentPresets, value) {
			return p, fmt.Errorf("unknown accent %q", value)
		}
		p.Accent = value
	case "theme":
		if !slices.Contains(Themes, value) {
			return p, fmt.Errorf("unknown theme %q", value)
		}
		p.Theme = value
	case "default_bpm":
		n, err := atoi(value)
		if err != nil || n < 40 || n > 240 {
			return p, fmt.Errorf("default_bpm must be 40..240")
		}
		p.DefaultBPM = n
	case "default_volume":
		n, err := atoi(value)
		if err != nil || n < 0 || n > 100 {
			return p, fmt.Errorf("default_volume must be 0..100")
		}
		p.DefaultVolume = n
	case "default_instrument":
		if !slices.Contains(Instruments, value) {
			return p, fmt.Errorf("unknown instrument %q", value)
		}
		p.DefaultInstrument = value
	case "dashboard_weeks":
		n, err := atoi(value)
		if err != nil || n < 1 || n > 52 {
			return p, fmt.Errorf("dashboard_weeks must be 1..52")
		}
		p.DashboardWeeks = n
	default:
		return p, fmt.Errorf("unknown preference %q", key)
	}
	return p, nil
}

func atoi(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}
