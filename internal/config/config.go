// Package config resolves client settings from flags, the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"annadata/internal/backend"
	"annadata/internal/view"
	"annadata/pkg/platform"
)

// Environment variables recognised by the client.
const (
	EnvAPIURL    = "ANNADATA_API_URL"
	EnvTimeout   = "ANNADATA_TIMEOUT"
	EnvLogLevel  = "ANNADATA_LOG_LEVEL"
	EnvLogPretty = "ANNADATA_LOG_PRETTY"
	EnvLogFile   = "ANNADATA_LOG_FILE"
	EnvVariant   = "ANNADATA_VARIANT"
)

// DefaultVariant is the preset used when none is configured.
const DefaultVariant = "classic"

// Config is the resolved client configuration.
type Config struct {
	APIURL    string
	Timeout   time.Duration
	LogLevel  string
	LogPretty bool
	LogFile   string
	Variant   string
	Features  view.Features
}

// Default reads the environment only. Flags uses it for its defaults.
// The timeout is zero unless ANNADATA_TIMEOUT gives a positive number of seconds:
// the client then relies on the transport and the caller's context to fail.
func Default() *Config {
	variant := platform.GetEnv(EnvVariant, DefaultVariant)
	f, err := view.VariantFeatures(variant)
	if err != nil {
		variant = DefaultVariant
	}
	var timeout time.Duration
	if secs := platform.GetEnvInt(EnvTimeout, 0); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}
	return &Config{
		APIURL:    platform.GetEnv(EnvAPIURL, backend.DefaultBaseURL),
		Timeout:   timeout,
		LogLevel:  platform.GetEnv(EnvLogLevel, "info"),
		LogPretty: platform.GetEnvBool(EnvLogPretty, false),
		LogFile:   platform.GetEnv(EnvLogFile, ""),
		Variant:   variant,
		Features:  f,
	}
}

// LoadDotEnv loads the given files (".env" when none) into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Flags are the global client flags. Defaults come from Default, so the
// environment (and a loaded .env) applies when a flag is not given.
func Flags() []cli.Flag {
	def := Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   def.APIURL,
			Usage:   "Analysis service base URL",
			EnvVars: []string{EnvAPIURL},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: def.Timeout,
			Usage: "Per-request timeout; 0 leaves failure detection to the transport",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   def.LogLevel,
			Usage:   "Log level (debug, info, warn, error)",
			EnvVars: []string{EnvLogLevel},
		},
		&cli.BoolFlag{
			Name:  "log-pretty",
			Value: def.LogPretty,
			Usage: "Human readable log output",
		},
		&cli.StringFlag{
			Name:    "log-file",
			Value:   def.LogFile,
			Usage:   "Write logs to this file instead of stderr",
			EnvVars: []string{EnvLogFile},
		},
		&cli.StringFlag{
			Name:    "variant",
			Value:   def.Variant,
			Usage:   "Feature preset (" + strings.Join(view.VariantNames(), ", ") + ")",
			EnvVars: []string{EnvVariant},
		},
		&cli.BoolFlag{Name: "map", Usage: "Enable the regional risk map"},
		&cli.BoolFlag{Name: "nutrition", Usage: "Enable the nutrition grid"},
		&cli.BoolFlag{Name: "score", Usage: "Enable the indicative integrity score"},
		&cli.BoolFlag{Name: "flavors", Usage: "Enable the flavor directory"},
	}
}

// FromContext resolves a Config from parsed flags. Individual feature flags
// override the variant preset only when given.
func FromContext(c *cli.Context) (*Config, error) {
	cfg := &Config{
		APIURL:    strings.TrimRight(c.String("api-url"), "/"),
		Timeout:   c.Duration("timeout"),
		LogLevel:  c.String("log-level"),
		LogPretty: c.Bool("log-pretty"),
		LogFile:   c.String("log-file"),
		Variant:   c.String("variant"),
	}
	if cfg.APIURL == "" {
		return nil, errors.New("api-url must not be empty")
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("timeout must not be negative")
	}

	f, err := view.VariantFeatures(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if c.IsSet("map") {
		f.MapView = c.Bool("map")
	}
	if c.IsSet("nutrition") {
		f.NutritionGrid = c.Bool("nutrition")
	}
	if c.IsSet("score") {
		f.LocalScoreHeuristic = c.Bool("score")
	}
	if c.IsSet("flavors") {
		f.FlavorDirectory = c.Bool("flavors")
	}
	cfg.Features = f
	return cfg, nil
}

// Backend returns the client settings for the analysis service.
func (c *Config) Backend() backend.Config {
	return backend.Config{
		BaseURL: c.APIURL,
		Paths:   backend.DefaultPaths(),
		Timeout: c.Timeout,
	}
}
