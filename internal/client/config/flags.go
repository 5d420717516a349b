package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/warrantykeeper/internal/flagx"
)

var knownFlags = []string{"-s", "-d", "-D", "-w", "-u", "-l", "-f", "-z"}

// parseFlags populates Config fields from command-line flags. args is
// filtered with flagx.FilterArgs first so flags owned by other components
// (-c) do not trip the flag set.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("warrantykeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite or file)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.DataDir, "D", cfg.DataDir, "data directory of the file backend")
	fs.StringVar(&cfg.ExpiryWindow, "w", cfg.ExpiryWindow, "upcoming window unit (days or months)")
	fs.IntVar(&cfg.UpcomingDays, "u", cfg.UpcomingDays, "default upcoming window in days")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "time zone")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
