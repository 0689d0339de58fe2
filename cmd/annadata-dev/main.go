// Package main runs the fixture analysis backend for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"annadata/internal/config"
	"annadata/internal/devbackend"
	"annadata/pkg/platform"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		platform.LogFatal("failed to load .env", err)
	}

	app := &cli.App{
		Name:    "annadata-dev",
		Usage:   "Serve canned analysis responses from a YAML fixture",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   devbackend.DefaultConfig().Addr,
				Usage:   "Listen address",
				EnvVars: []string{"ANNADATA_DEV_ADDR"},
			},
			&cli.StringFlag{
				Name:    "fixture",
				Usage:   "Fixture YAML file (built-in demo data when empty)",
				EnvVars: []string{"ANNADATA_DEV_FIXTURE"},
			},
			&cli.StringSliceFlag{
				Name:  "cors-origin",
				Value: cli.NewStringSlice("*"),
				Usage: "Allowed CORS origins",
			},
			&cli.StringFlag{
				Name:    "auth-user",
				Usage:   "Require basic auth on the API routes",
				EnvVars: []string{"ANNADATA_DEV_AUTH_USER"},
			},
			&cli.StringFlag{
				Name:    "auth-pass",
				Usage:   "Basic auth password",
				EnvVars: []string{"ANNADATA_DEV_AUTH_PASS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{config.EnvLogLevel},
			},
			&cli.BoolFlag{
				Name:    "log-pretty",
				Value:   true,
				Usage:   "Human readable log output",
				EnvVars: []string{config.EnvLogPretty},
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"), c.Bool("log-pretty"), os.Stderr)

	fx := devbackend.DefaultFixture()
	if path := c.String("fixture"); path != "" {
		loaded, err := devbackend.LoadFixture(path)
		if err != nil {
			return err
		}
		fx = loaded
		logger.Info().Str("fixture", path).Msg("fixture loaded")
	}

	cfg := devbackend.DefaultConfig()
	cfg.Addr = c.String("addr")
	cfg.CORSOrigins = c.StringSlice("cors-origin")
	cfg.AuthUser = c.String("auth-user")
	cfg.AuthPass = c.String("auth-pass")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return devbackend.NewServer(fx, cfg, logger).Run(ctx)
}
