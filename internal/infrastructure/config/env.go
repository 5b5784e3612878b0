package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ClientConfig is the process configuration read from the environment.
type ClientConfig struct {
	APIBaseURL   string        `envconfig:"API_BASE_URL" default:"http://localhost:4568"`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding  string        `envconfig:"LOG_ENCODING" default:"console"`
	LogOutput    string        `envconfig:"LOG_OUTPUT"`
	SessionFile  string        `envconfig:"SESSION_FILE"`
	ScreenWidth  int           `envconfig:"SCREEN_WIDTH" default:"640"`
	ScreenHeight int           `envconfig:"SCREEN_HEIGHT" default:"480"`
}

// LoadClientConfig reads an optional .env file and then the environment.
// Variables already set take precedence over the .env file.
func LoadClientConfig(envFiles ...string) (*ClientConfig, error) {
	_ = godotenv.Load(envFiles...)

	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
	return &cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dungeonmenu", "session.json")
}
