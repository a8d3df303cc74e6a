// Package config holds the pipeline configuration and logging setup.
// All thresholds that shape the analytics are carried in an explicit Report
// value threaded into each computation, so tests can run with alternate
// timezones and thresholds.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Defaults match the original report generator.
const (
	DefaultTimezone       = "America/New_York"
	DefaultSessionGap     = 30 * time.Minute
	DefaultBaselineN      = 5
	DefaultMinGamesStable = 10
	DefaultMRMax          = 2500
	DefaultMaxWeeks       = 12
)

// Report is the configuration surface of one pipeline run.
type Report struct {
	Timezone       string
	Location       *time.Location
	SessionGap     time.Duration
	BaselineN      int
	MinGamesStable int
	MRMax          float64
	MaxWeeks       int
}

// Default returns the standard configuration in the default reporting timezone.
func Default() (Report, error) {
	return build(DefaultTimezone, DefaultSessionGap, DefaultBaselineN, DefaultMinGamesStable, DefaultMRMax, DefaultMaxWeeks)
}

// FromEnv builds a Report configuration from SF6_* environment variables,
// falling back to defaults for anything unset.
func FromEnv() (Report, error) {
	tz := envString("SF6_REPORT_TZ", DefaultTimezone)
	gapMin := envInt("SF6_SESSION_GAP_MINUTES", int(DefaultSessionGap/time.Minute))
	baseline := envInt("SF6_BASELINE_N", DefaultBaselineN)
	stable := envInt("SF6_MIN_GAMES_STABLE", DefaultMinGamesStable)
	mrMax := envFloat("SF6_MR_MAX", DefaultMRMax)
	maxWeeks := envInt("SF6_MAX_WEEKS", DefaultMaxWeeks)

	return build(tz, time.Duration(gapMin)*time.Minute, baseline, stable, mrMax, maxWeeks)
}

func build(tz string, gap time.Duration, baseline, stable int, mrMax float64, maxWeeks int) (Report, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Report{}, fmt.Errorf("load reporting timezone %q: %w", tz, err)
	}
	if gap <= 0 {
		return Report{}, fmt.Errorf("session gap must be positive, got %s", gap)
	}
	return Report{
		Timezone:       tz,
		Location:       loc,
		SessionGap:     gap,
		BaselineN:      baseline,
		MinGamesStable: stable,
		MRMax:          mrMax,
		MaxWeeks:       maxWeeks,
	}, nil
}

// SetupEnvironment loads .env if present and configures zerolog output and level.
func SetupEnvironment() {
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	switch strings.ToLower(os.Getenv("LOGLEVEL")) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Report on the .env file only after logging is configured.
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file")
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-integer environment override")
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-numeric environment override")
		return fallback
	}
	return f
}
