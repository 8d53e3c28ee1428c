package infra

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is a browser-like user agent string to avoid bot detection
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config carries every tunable of the collector. Values load from YAML and
// may be overridden through environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		// MetadataURL is the exchange REST endpoint listing tradable options.
		MetadataURL string `yaml:"metadata_url"`
		// OptionsWSURL is the multiplexed options stream base, before the
		// streams query parameter.
		OptionsWSURL string `yaml:"options_ws_url"`
		// SpotWSURL is the spot trade stream base for underlying prices.
		SpotWSURL string `yaml:"spot_ws_url"`
	} `yaml:"api"`

	Universe struct {
		// Underlyings is the allow-list of base assets to collect (e.g. BTC, ETH).
		Underlyings []string `yaml:"underlyings"`
		// QuoteSuffix is stripped from the instrument's underlying code before
		// the allow-list comparison (e.g. "BTCUSDT" -> "BTC").
		QuoteSuffix string `yaml:"quote_suffix"`
		// GroupSize caps symbols per stream connection (exchange limit).
		GroupSize int `yaml:"group_size"`
	} `yaml:"universe"`

	Schedule struct {
		SnapshotIntervalSec int `yaml:"snapshot_interval_sec"`
		ReconnectDelaySec   int `yaml:"reconnect_delay_sec"`
		// RefreshAtUTC is the daily universe refresh wall-clock time, "HH:MM".
		RefreshAtUTC string `yaml:"refresh_at_utc"`
	} `yaml:"schedule"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.MetadataURL == "" || (!hasPrefix(c.API.MetadataURL, "http://") && !hasPrefix(c.API.MetadataURL, "https://")) {
		return fmt.Errorf("invalid metadata URL: %s", c.API.MetadataURL)
	}
	if c.API.OptionsWSURL == "" || (!hasPrefix(c.API.OptionsWSURL, "ws://") && !hasPrefix(c.API.OptionsWSURL, "wss://")) {
		return fmt.Errorf("invalid options WS URL: %s", c.API.OptionsWSURL)
	}
	if c.API.SpotWSURL == "" || (!hasPrefix(c.API.SpotWSURL, "ws://") && !hasPrefix(c.API.SpotWSURL, "wss://")) {
		return fmt.Errorf("invalid spot WS URL: %s", c.API.SpotWSURL)
	}
	if len(c.Universe.Underlyings) == 0 {
		return fmt.Errorf("at least one underlying is required")
	}
	if c.Universe.GroupSize <= 0 {
		return fmt.Errorf("group size must be positive")
	}
	if c.Schedule.SnapshotIntervalSec <= 0 {
		return fmt.Errorf("snapshot interval must be positive")
	}
	if c.Schedule.ReconnectDelaySec <= 0 {
		return fmt.Errorf("reconnect delay must be positive")
	}
	if _, err := ParseClock(c.Schedule.RefreshAtUTC); err != nil {
		return fmt.Errorf("invalid refresh time %q: %w", c.Schedule.RefreshAtUTC, err)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	return nil
}

// SnapshotInterval returns the snapshot period as a duration.
func (c *Config) SnapshotInterval() time.Duration {
	return time.Duration(c.Schedule.SnapshotIntervalSec) * time.Second
}

// ReconnectDelay returns the fixed stream reconnect delay as a duration.
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.Schedule.ReconnectDelaySec) * time.Second
}

// ParseClock parses an "HH:MM" wall-clock string into hour and minute.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Clock is a time-of-day in UTC.
type Clock struct {
	Hour   int
	Minute int
}

// Next returns the first instant after now that lands on the clock time (UTC).
func (c Clock) Next(now time.Time) time.Time {
	now = now.UTC()
	target := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv overwrites config values from the environment when present.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("OPTIONS_METADATA_URL"); v != "" {
		cfg.API.MetadataURL = v
	}
	if v := os.Getenv("OPTIONS_WS_URL"); v != "" {
		cfg.API.OptionsWSURL = v
	}
	if v := os.Getenv("OPTIONS_SPOT_WS_URL"); v != "" {
		cfg.API.SpotWSURL = v
	}
	if v := os.Getenv("OPTIONS_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
}
