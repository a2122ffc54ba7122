package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Scrape contains settings for fetching the listing and detail pages.
type Scrape struct {
	BaseURL        string `toml:"base_url"`
	Concurrency    int    `toml:"concurrency"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// UserAgent is sent only when set; by default requests carry no custom headers.
	UserAgent    string `toml:"user_agent"`
	WithOverview bool   `toml:"with_overview"`
}

// Paths contains output locations.
type Paths struct {
	DataDir string `toml:"data_dir"`
}

// Analysis selects the conference year and the tracks kept by the filter export.
type Analysis struct {
	Year   int      `toml:"year"`
	Tracks []string `toml:"tracks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for gdcvault.
type Config struct {
	Scrape   Scrape   `toml:"scrape"`
	Paths    Paths    `toml:"paths"`
	Analysis Analysis `toml:"analysis"`
	Logging  Logging  `toml:"logging"`
}

// Timeout returns the HTTP client timeout. Zero means no timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Scrape.TimeoutSeconds) * time.Second
}

// Load locates and parses a configuration file, then normalizes and validates it.
// It returns the config, the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/gdcvault/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gdcvault.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Scrape.BaseURL = strings.TrimRight(strings.TrimSpace(c.Scrape.BaseURL), "/")
	c.Scrape.UserAgent = strings.TrimSpace(c.Scrape.UserAgent)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	dataDir, err := expandPath(strings.TrimSpace(c.Paths.DataDir))
	if err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	c.Paths.DataDir = dataDir

	tracks := make([]string, 0, len(c.Analysis.Tracks))
	for _, track := range c.Analysis.Tracks {
		if trimmed := strings.TrimSpace(track); trimmed != "" {
			tracks = append(tracks, trimmed)
		}
	}
	c.Analysis.Tracks = tracks

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Scrape.BaseURL == "" {
		return errors.New("scrape.base_url must be set")
	}
	if !strings.HasPrefix(c.Scrape.BaseURL, "http://") && !strings.HasPrefix(c.Scrape.BaseURL, "https://") {
		return fmt.Errorf("scrape.base_url must be an http(s) URL, got %q", c.Scrape.BaseURL)
	}
	if c.Scrape.Concurrency < 1 {
		return fmt.Errorf("scrape.concurrency must be at least 1, got %d", c.Scrape.Concurrency)
	}
	if c.Scrape.TimeoutSeconds < 0 {
		return fmt.Errorf("scrape.timeout_seconds must not be negative, got %d", c.Scrape.TimeoutSeconds)
	}
	if c.Analysis.Year < 0 {
		return fmt.Errorf("analysis.year must not be negative, got %d", c.Analysis.Year)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
