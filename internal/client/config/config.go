package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/views"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
)

const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

var (
	ErrUnknownStorage = errors.New("unknown storage backend")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds runtime settings for the WarrantyKeeper CLI.
type Config struct {
	// Storage selects the kv backend: "sqlite" or "file".
	Storage      string `json:"storage" yaml:"storage" split_words:"true"`
	DatabasePath string `json:"database_path" yaml:"database_path" split_words:"true"`
	DataDir      string `json:"data_dir" yaml:"data_dir" split_words:"true"`

	// ExpiryWindow is the unit of the upcoming window: "days" or "months".
	ExpiryWindow string `json:"expiry_window" yaml:"expiry_window" split_words:"true"`
	UpcomingDays int    `json:"upcoming_days" yaml:"upcoming_days" split_words:"true"`

	LogLevel  string `json:"log_level" yaml:"log_level" split_words:"true"`
	LogFormat string `json:"log_format" yaml:"log_format" split_words:"true"`

	// Timezone is an IANA name; empty means the system zone.
	Timezone string `json:"timezone" yaml:"timezone" split_words:"true"`

	// WatchStorage enables the file backend's external-change watcher.
	WatchStorage bool `json:"watch_storage" yaml:"watch_storage" split_words:"true"`

	// FlushTimeout bounds the final flush on exit.
	FlushTimeout timex.Duration `json:"flush_timeout" yaml:"flush_timeout" split_words:"true"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQLite
	c.DatabasePath = "warranties.db"
	c.DataDir = "data"
	c.ExpiryWindow = views.WindowDays.String()
	c.UpcomingDays = 30
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
	c.Timezone = ""
	c.WatchStorage = true
	c.FlushTimeout = timex.Duration{Duration: 5 * time.Second}
}

// Validate checks values that cannot be rejected while parsing.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}
	if _, err := c.WindowUnit(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.UpcomingDays < 0 {
		return fmt.Errorf("%w: upcoming_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func (c *Config) WindowUnit() (views.WindowUnit, error) {
	return views.ParseWindowUnit(c.ExpiryWindow)
}

// Location resolves Timezone, falling back to time.Local when it is empty.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoadConfig constructs a Config from defaults, the optional config file,
// the environment and the command-line flags in args (usually
// os.Args[1:]). Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
