package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version    int              `toml:"version"`
	Server     ServerConfig     `toml:"server"`
	Screenshot ScreenshotConfig `toml:"screenshot"`
	Browser    BrowserConfig    `toml:"browser"`
	Store      StoreConfig      `toml:"store"`
	Tracing    TracingConfig    `toml:"tracing"`
	Client     ClientConfig     `toml:"client"`
}

type ServerConfig struct {
	Addr                     string `toml:"addr"`
	ReadHeaderTimeoutSeconds int    `toml:"read_header_timeout_seconds"`
	MaxBodyMB                int    `toml:"max_body_mb"`
}

type ScreenshotConfig struct {
	DefaultScale       int  `toml:"default_scale"`
	MaxDurationSeconds int  `toml:"max_duration_seconds"`
	ImageTimeoutMS     int  `toml:"image_timeout_ms"`
	SettleDelayMS      int  `toml:"settle_delay_ms"`
	MaxConcurrent      int  `toml:"max_concurrent"`
	ViewportWidth      int  `toml:"viewport_width"`
	ViewportHeight     int  `toml:"viewport_height"`
	DumpHTML           bool `toml:"dump_html"`
}

type BrowserConfig struct {
	Headless  bool   `toml:"headless"`
	ExecPath  string `toml:"exec_path"`
	NoSandbox bool   `toml:"no_sandbox"`
}

type StoreConfig struct {
	DBPath        string `toml:"db_path"`
	RetentionDays int    `toml:"retention_days"`
	PruneSchedule string `toml:"prune_schedule"`
}

type TracingConfig struct {
	ZipkinAddress string `toml:"zipkin_address"`
	ServiceName   string `toml:"service_name"`
}

type ClientConfig struct {
	ServerURL      string `toml:"server_url"`
	OutputDir      string `toml:"output_dir"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:                     ":3000",
			ReadHeaderTimeoutSeconds: 3,
			MaxBodyMB:                25,
		},
		Screenshot: ScreenshotConfig{
			DefaultScale:       2,
			MaxDurationSeconds: 30,
			ImageTimeoutMS:     5000,
			SettleDelayMS:      500,
			MaxConcurrent:      4,
			ViewportWidth:      800,
			ViewportHeight:     1200,
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Store: StoreConfig{
			RetentionDays: 30,
			PruneSchedule: "@hourly",
		},
		Tracing: TracingConfig{
			ServiceName: "mockshot",
		},
		Client: ClientConfig{
			ServerURL:      "http://localhost:3000",
			OutputDir:      ".",
			TimeoutSeconds: 60,
		},
	}
}

// MaxDuration is the ceiling for one capture
func (c ScreenshotConfig) MaxDuration() time.Duration {
	return time.Duration(c.MaxDurationSeconds) * time.Second
}

// ImageTimeout bounds the wait for images to load
func (c ScreenshotConfig) ImageTimeout() time.Duration {
	return time.Duration(c.ImageTimeoutMS) * time.Millisecond
}

// SettleDelay is the pause after assets load
func (c ScreenshotConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// Timeout is the HTTP client timeout
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks values that would otherwise fail at runtime
func (c *Config) Validate() error {
	switch c.Screenshot.DefaultScale {
	case 1, 2, 3:
	default:
		return fmt.Errorf("screenshot.default_scale must be 1, 2 or 3, got %d", c.Screenshot.DefaultScale)
	}
	if c.Screenshot.MaxDurationSeconds <= 0 {
		return errors.New("screenshot.max_duration_seconds must be positive")
	}
	if c.Screenshot.MaxConcurrent <= 0 {
		return errors.New("screenshot.max_concurrent must be positive")
	}
	if c.Screenshot.ViewportWidth <= 0 || c.Screenshot.ViewportHeight <= 0 {
		return errors.New("screenshot viewport must be positive")
	}
	if c.Store.RetentionDays < 0 {
		return errors.New("store.retention_days must not be negative")
	}
	return nil
}

// ApplyEnv overrides file settings from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MOCKSHOT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MOCKSHOT_CHROME_PATH"); v != "" {
		c.Browser.ExecPath = v
	}
	if v := os.Getenv("MOCKSHOT_DB_PATH"); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv("MOCKSHOT_SERVER_URL"); v != "" {
		c.Client.ServerURL = v
	}
	if v := os.Getenv("ZIPKIN_ADDRESS"); v != "" {
		c.Tracing.ZipkinAddress = v
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "mockshot"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the directory for the database and HTML dumps
func CacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "mockshot"), nil
}

// DBPath is the configured database path, or mockshot.db in the cache dir
func (c *Config) DBPath() (string, error) {
	if c.Store.DBPath != "" {
		return c.Store.DBPath, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mockshot.db"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads config from path. Keys missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults when it
// doesn't exist yet. Environment overrides are applied either way.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
