// Package config loads the engine's only two legitimately external
// settings: the default log level, and an optional override file for the
// static thresholds table (for operators running against a network whose
// physical bounds differ from ISMN's). Both are read from the process
// environment, optionally populated from a ".env" file via godotenv, in
// the manner of the teacher's main.go / internal/config.
package config

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"soilqc/domain/series"
	"soilqc/domain/thresholds"
	"soilqc/internal/apperr"
	"soilqc/internal/obslog"
)

// Config holds the process-level settings resolved at startup.
type Config struct {
	LogLevel               obslog.Level
	ThresholdsOverrideFile string
}

// Load reads LOG_LEVEL and THRESHOLDS_OVERRIDE_FILE from the environment,
// first populating it from a ".env" file if one is present. A missing
// .env file is not an error (the teacher's main.go treats it the same
// way: fall back to whatever is already in the process environment).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:               logLevelFromEnv(),
		ThresholdsOverrideFile: os.Getenv("THRESHOLDS_OVERRIDE_FILE"),
	}
	if cfg.ThresholdsOverrideFile != "" {
		if err := ApplyOverrides(cfg.ThresholdsOverrideFile); err != nil {
			return nil, apperr.Wrap("CONFIG_THRESHOLDS", err, "failed to apply thresholds override file")
		}
	}
	return cfg, nil
}

func logLevelFromEnv() obslog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		return obslog.LevelError
	case "WARN":
		return obslog.LevelWarn
	case "DEBUG":
		return obslog.LevelDebug
	default:
		return obslog.LevelInfo
	}
}

// ApplyOverrides reads a CSV file of "variable,lower,upper" rows and
// replaces the corresponding entries in domain/thresholds. Must run
// before any Run invocation; the table is shared process state.
func ApplyOverrides(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return err
	}
	for _, row := range rows {
		lower, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return err
		}
		upper, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return err
		}
		thresholds.Override(series.Variable(row[0]), thresholds.Bounds{Lower: lower, Upper: upper})
	}
	return nil
}
