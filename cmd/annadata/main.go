// Annadata - street food price integrity checker
//
// Usage:
//
//	annadata [tui]
//	annadata menu
//	annadata analyze --dish "Dal Rice" --price 40 [--format json]
//	annadata flavors
//	annadata heatmap
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"annadata/internal/backend"
	"annadata/internal/config"
	"annadata/internal/report"
	"annadata/internal/tui"
	"annadata/internal/view"
	apperrors "annadata/pkg/errors"
	"annadata/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitValidation = 2
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "annadata",
		Usage:   "Check a street food price against its honest ingredient cost",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags:   config.Flags(),
		Action:  runTUI,
		Commands: []*cli.Command{
			tuiCommand(),
			menuCommand(),
			analyzeCommand(),
			flavorsCommand(),
			heatmapCommand(),
		},
	}

	err := app.RunContext(ctx, os.Args)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case apperrors.IsValidation(err):
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return ExitValidation
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(report.FormatText),
		Usage:   "Output format (text, json)",
	}
}

// session is the per-command wiring shared by every subcommand.
type session struct {
	cfg    *config.Config
	ctl    *view.Controller
	logger zerolog.Logger
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// newSession resolves config, sets up logging and builds the controller.
// logTo is used when no log file is configured.
func newSession(c *cli.Context, logTo io.Writer, adjust func(*config.Config)) (*session, error) {
	cfg, err := config.FromContext(c)
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}

	s := &session{cfg: cfg}
	out := logTo
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.closer = f
		out = f
	}
	s.logger = platform.InitLogger(cfg.LogLevel, cfg.LogPretty, out)
	s.logger.Debug().
		Str("api_url", cfg.APIURL).
		Str("variant", cfg.Variant).
		Interface("features", cfg.Features).
		Msg("configuration resolved")

	s.ctl = view.NewController(backend.NewClient(cfg.Backend()), view.Options{
		Features: cfg.Features,
		Logger:   &s.logger,
	})
	return s, nil
}

// =============================================================================
// TUI COMMAND
// =============================================================================

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive checker (default)",
		Action: runTUI,
	}
}

func runTUI(c *cli.Context) error {
	// The alt screen owns the terminal; logs go to --log-file or nowhere.
	s, err := newSession(c, io.Discard, nil)
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(c.Context, s.ctl)
}

// =============================================================================
// MENU COMMAND
// =============================================================================

func menuCommand() *cli.Command {
	return &cli.Command{
		Name:   "menu",
		Usage:  "List the dishes the analysis service knows",
		Flags:  []cli.Flag{formatFlag()},
		Action: runMenu,
	}
}

func runMenu(c *cli.Context) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	bootErr := s.ctl.Bootstrap(c.Context)
	if err := report.Menu(os.Stdout, s.ctl.Display(), format); err != nil {
		return err
	}
	return bootErr
}

// =============================================================================
// ANALYZE COMMAND
// =============================================================================

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze one dish at the price you paid",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dish",
				Aliases:  []string{"d"},
				Usage:    "Dish name as listed by the menu command",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "price",
				Aliases:  []string{"p"},
				Usage:    "Price paid in rupees",
				Required: true,
			},
			formatFlag(),
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ctl.Bootstrap(c.Context); err != nil {
		s.logger.Debug().Err(err).Msg("continuing with offline menu")
	}
	_, submitErr := s.ctl.Submit(c.Context, c.String("dish"), c.String("price"))

	if err := report.Analysis(os.Stdout, s.ctl.Display(), format); err != nil {
		return err
	}
	return submitErr
}

// =============================================================================
// FLAVORS / HEATMAP COMMANDS
// =============================================================================

func flavorsCommand() *cli.Command {
	return &cli.Command{
		Name:   "flavors",
		Usage:  "Show the adulterant and safe alternative directory",
		Flags:  []cli.Flag{formatFlag()},
		Action: runFlavors,
	}
}

func runFlavors(c *cli.Context) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr, func(cfg *config.Config) { cfg.Features.FlavorDirectory = true })
	if err != nil {
		return err
	}
	defer s.Close()

	loadErr := s.ctl.Open(c.Context, view.TabFlavors)
	if err := report.Flavors(os.Stdout, s.ctl.Display().Flavors, format); err != nil {
		return err
	}
	return loadErr
}

func heatmapCommand() *cli.Command {
	return &cli.Command{
		Name:   "heatmap",
		Usage:  "Show regional price inflation and adulteration risk",
		Flags:  []cli.Flag{formatFlag()},
		Action: runHeatmap,
	}
}

func runHeatmap(c *cli.Context) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr, func(cfg *config.Config) { cfg.Features.MapView = true })
	if err != nil {
		return err
	}
	defer s.Close()

	loadErr := s.ctl.Open(c.Context, view.TabMap)
	if err := report.Heatmap(os.Stdout, s.ctl.Display().Map, format); err != nil {
		return err
	}
	return loadErr
}
