package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"stringlog/internal/platform/config"
)

func TestNewDerivesPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPOTIFY_CLIENT_ID", "from-env")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SPOTIFY_CLIENT_ID=from-file\nSPOTIFY_CLIENT_SECRET=secret\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, ".stringlog", "stringlog.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.SpotifyClientID != "from-env" {
		t.Fatalf("process env must win over .env, got %q", cfg.SpotifyClientID)
	}
	if cfg.SpotifyClientSecret != "secret" {
		t.Fatalf("expected secret from .env, got %q", cfg.SpotifyClientSecret)
	}
	if _, err := config.New(" "); err == nil {
		t.Fatalf("blank data dir must fail")
	}
}

func TestPreferencesRoundTripAndDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	prefs, err := config.LoadPreferences(path)
	if err != nil {
		t.Fatalf("load missing prefs: %v", err)
	}
	if prefs != config.DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}
	prefs, err = prefs.Set("accent", "teal")
	if err != nil {
		t.Fatalf("set accent: %v", err)
	}
	prefs, err = prefs.Set("default_bpm", "96")
	if err != nil {
		t.Fatalf("set bpm: %v", err)
	}
	if _, err := prefs.Set("default_bpm", "300"); err == nil {
		t.Fatalf("out of range bpm must fail")
	}
	if _, err := prefs.Set("accent", "plaid"); err == nil {
		t.Fatalf("unknown accent must fail")
	}
	if err := config.SavePreferences(path, prefs); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := config.LoadPreferences(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Accent != "teal" || loaded.DefaultBPM != 96 {
		t.Fatalf("unexpected reloaded prefs %+v", loaded)
	}
}

func TestLoadPreferencesNormalizesGarbage(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	if err := os.WriteFile(path, []byte("accent: neon\ndefault_volume: 400\ndashboard_weeks: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	prefs, err := config.LoadPreferences(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.Accent != config.DefaultAccent || prefs.DefaultVolume != 75 || prefs.DashboardWeeks != 4 {
		t.Fatalf("unexpected normalized prefs %+v", prefs)
	}
}
