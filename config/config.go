// Package config loads the aurora configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults of a fresh configuration.
const (
	DefaultTimeZone     = "America/Vancouver"
	DefaultModel        = "gemini-2.5-flash"
	DefaultRegion       = "NWT"
	DefaultCacheVersion = "aurora-trip-v2"
)

// Config is the top-level application configuration.
type Config struct {
	// DataDir holds the saved itinerary, expenses and checklist, and the cache.
	DataDir string `yaml:"data_dir"`

	// TimeZone is the IANA zone of the itinerary times, used by the calendar export.
	TimeZone string `yaml:"time_zone"`

	// Model is the Gemini model of the assistant.
	Model string `yaml:"model"`

	// APIKey is the Gemini API key. When empty GEMINI_API_KEY then
	// GOOGLE_API_KEY are used.
	APIKey string `yaml:"api_key"`

	// Region is the default sales tax region of the converter, "NWT" or "BC".
	Region string `yaml:"region"`

	// PINDigest replaces the default booking PIN, see aurora booking -digest.
	PINDigest string `yaml:"pin_digest"`

	// CacheVersion names the offline cache folder, other versions are deleted.
	CacheVersion string `yaml:"cache_version"`
}

// DefaultPath returns "aurora/aurora.yaml" in the user configuration folder.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "aurora", "aurora.yaml")
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "aurora")
	}
	return "aurora-data"
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		TimeZone:     DefaultTimeZone,
		Model:        DefaultModel,
		Region:       DefaultRegion,
		CacheVersion: DefaultCacheVersion,
	}
}

// Normalize fills in missing values with the defaults, so that partially
// filled files still behave correctly.
func (c *Config) Normalize() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(home, c.DataDir[2:])
		}
	}
	if c.TimeZone == "" {
		c.TimeZone = DefaultTimeZone
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.CacheVersion == "" {
		c.CacheVersion = DefaultCacheVersion
	}
}

// Location returns the time zone of the itinerary.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Key returns the API key of the assistant, "" when there is none.
func (c *Config) Key() string {
	for _, k := range []string{c.APIKey, os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

// CacheRoot is the folder holding the offline cache versions.
func (c *Config) CacheRoot() string { return filepath.Join(c.DataDir, "cache") }

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default one is written with 0600 permissions
// and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			// Even if save fails, return cfg with error so caller can decide.
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path, atomically and readable by the owner only.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".aurora-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
