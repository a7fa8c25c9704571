package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir         string
	StateDir        string
	DBPath          string
	LogPath         string
	TimerPath       string
	PreferencesPath string
	JournalDir      string
	LogLevel        string

	SpotifyClientID     string
	SpotifyClientSecret string
}

// New derives all paths from the data directory and reads the optional
// <data>/.env file. Variables already set in the process environment win.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	envPath := filepath.Join(dataDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	stateDir := filepath.Join(dataDir, ".stringlog")
	return Config{
		DataDir:             dataDir,
		StateDir:            stateDir,
		DBPath:              filepath.Join(stateDir, "stringlog.db"),
		LogPath:             filepath.Join(stateDir, "stringlog.log"),
		TimerPath:           filepath.Join(stateDir, "timer.json"),
		PreferencesPath:     filepath.Join(dataDir, "preferences.yaml"),
		JournalDir:          filepath.Join(dataDir, "journal"),
		LogLevel:            envStr("STRINGLOG_LOG_LEVEL", "info"),
		SpotifyClientID:     envStr("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: envStr("SPOTIFY_CLIENT_SECRET", ""),
	}, nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
