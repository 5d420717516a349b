package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/views"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, StorageSQLite, c.Storage)
	assert.Equal(t, "warranties.db", c.DatabasePath)
	assert.Equal(t, 30, c.UpcomingDays)
	assert.Equal(t, 5*time.Second, c.FlushTimeout.Duration)
	require.NoError(t, c.Validate())

	unit, err := c.WindowUnit()
	require.NoError(t, err)
	assert.Equal(t, views.WindowDays, unit)

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFile(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "cfg.json", `{"storage":"file","data_dir":"/tmp/wk","flush_timeout":"2s","upcoming_days":45}`)
		cfg := defaults()
		require.NoError(t, parseFile(cfg, []string{"-config", path}))

		want := defaults()
		want.Storage = StorageFile
		want.DataDir = "/tmp/wk"
		want.UpcomingDays = 45
		want.FlushTimeout = timex.Duration{Duration: 2 * time.Second}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "cfg.yaml", "expiry_window: months\ntimezone: Europe/Riga\nflush_timeout: 1500ms\n")
		cfg := defaults()
		require.NoError(t, parseFile(cfg, []string{"-c", path}))

		assert.Equal(t, "months", cfg.ExpiryWindow)
		assert.Equal(t, "Europe/Riga", cfg.Timezone)
		assert.Equal(t, 1500*time.Millisecond, cfg.FlushTimeout.Duration)
		assert.Equal(t, StorageSQLite, cfg.Storage, "absent keys keep defaults")
	})

	t.Run("no file flag", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseFile(cfg, []string{"-s", "file"}))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseFile(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ this is not valid json`)
		require.Error(t, parseFile(defaults(), []string{"-c", path}))
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("WARRANTYKEEPER_STORAGE", "file")
	t.Setenv("WARRANTYKEEPER_UPCOMING_DAYS", "14")
	t.Setenv("WARRANTYKEEPER_WATCH_STORAGE", "false")
	t.Setenv("WARRANTYKEEPER_FLUSH_TIMEOUT", "10s")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, 14, cfg.UpcomingDays)
	assert.False(t, cfg.WatchStorage)
	assert.Equal(t, 10*time.Second, cfg.FlushTimeout.Duration)
	assert.Equal(t, "warranties.db", cfg.DatabasePath, "unset variables keep current values")
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("WARRANTYKEEPER_UPCOMING_DAYS", "soon")
	require.Error(t, parseEnv(defaults()))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(c *Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-s", "file", "-D", "/var/wk", "-w", "months", "-u", "60", "-l", "debug", "-f", "json", "-z", "UTC"},
			want: func(c *Config) {
				c.Storage = StorageFile
				c.DataDir = "/var/wk"
				c.ExpiryWindow = "months"
				c.UpcomingDays = 60
				c.LogLevel = "debug"
				c.LogFormat = "json"
				c.Timezone = "UTC"
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-d", "other.db", "--verbose"},
			want: func(c *Config) { c.DatabasePath = "other.db" },
		},
		{
			name:    "bad number",
			args:    []string{"-u", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := defaults()
			tt.want(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"storage":"file","upcoming_days":10,"log_level":"info"}`)
	t.Setenv("WARRANTYKEEPER_UPCOMING_DAYS", "20")
	t.Setenv("WARRANTYKEEPER_LOG_LEVEL", "error")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.Storage, "file over defaults")
	assert.Equal(t, 20, cfg.UpcomingDays, "env over file")
	assert.Equal(t, "debug", cfg.LogLevel, "flags over env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"unknown storage", func(c *Config) { c.Storage = "s3" }, ErrUnknownStorage},
		{"bad window", func(c *Config) { c.ExpiryWindow = "weeks" }, ErrInvalidConfig},
		{"negative days", func(c *Config) { c.UpcomingDays = -1 }, ErrInvalidConfig},
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, ErrInvalidConfig},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			require.ErrorIs(t, c.Validate(), tt.wantErr)
		})
	}

	_, err := LoadConfig([]string{"-s", "s3"})
	require.ErrorIs(t, err, ErrUnknownStorage)
}
