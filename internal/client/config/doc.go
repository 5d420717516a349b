// Package config loads runtime configuration for the WarrantyKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables prefixed with WARRANTYKEEPER_, after loading a
//     .env file from the working directory when one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   storage backend: sqlite or file
//	-d string   SQLite database path
//	-D string   data directory of the file backend
//	-w string   upcoming window unit: days or months
//	-u int      default upcoming window in days
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//	-z string   IANA time zone dates are interpreted in
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "storage": "sqlite",
//	  "database_path": "warranties.db",
//	  "expiry_window": "days",
//	  "upcoming_days": 30,
//	  "flush_timeout": "5s"
//	}
package config
