// Package view drives the integrity checker UI: it owns the state value,
// performs the backend calls and projects state onto a Display.
package view

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"annadata/internal/pricehint"
	"annadata/pkg/api"
	apperrors "annadata/pkg/errors"
	"annadata/pkg/score"
)

// ErrSuperseded is returned by Submit when a newer submission replaced this one.
var ErrSuperseded = errors.New("analysis superseded by a newer submission")

const (
	msgBackendDown  = "Analysis failed. Check that the analysis service is running."
	msgOfflineDish  = "The menu is offline. Restart once the analysis service is reachable."
	msgPickDish     = "Select a dish first."
	msgUnknownDish  = "Select a dish from the menu."
	msgEnterPrice   = "Enter the price you paid."
	msgInvalidPrice = "The price must be a number."
	msgPositive     = "The price must be greater than zero."
)

// Backend is the subset of the analysis service the controller uses.
type Backend interface {
	Menu(ctx context.Context) (api.Menu, error)
	Analyze(ctx context.Context, req api.AnalysisRequest) (*api.AnalysisResult, error)
	Flavors(ctx context.Context) ([]api.FlavorEntry, error)
	Heatmap(ctx context.Context) ([]api.HeatmapPoint, error)
}

// Options configures a Controller.
type Options struct {
	Features Features
	Hints    *pricehint.Store
	// Jitter feeds the high band of the local score; defaults to math/rand.
	Jitter score.Jitter
	Logger *zerolog.Logger
}

// Controller owns the UI state. Backend calls run outside the lock;
// state transitions happen under it.
type Controller struct {
	backend  Backend
	features Features
	hints    *pricehint.Store
	jitter   score.Jitter
	logger   zerolog.Logger

	mu    sync.Mutex
	state State
}

// NewController creates a controller in the initial state.
func NewController(b Backend, opts Options) *Controller {
	c := &Controller{
		backend:  b,
		features: opts.Features,
		hints:    opts.Hints,
		jitter:   opts.Jitter,
		logger:   log.Logger,
		state:    InitialState(),
	}
	if c.hints == nil {
		c.hints = pricehint.NewStore()
	}
	if c.jitter == nil {
		c.jitter = rand.Float64
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	}
	return c
}

// Features returns the configured feature set.
func (c *Controller) Features() Features { return c.features }

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Display renders the current state.
func (c *Controller) Display() Display {
	return Render(c.State(), c.features)
}

// Bootstrap fetches the menu once. Failure leaves the selector offline; it is not retried.
func (c *Controller) Bootstrap(ctx context.Context) error {
	menu, err := c.backend.Menu(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Msg("menu bootstrap failed")
		c.state.Menu = nil
		c.state.MenuStatus = MenuOffline
		c.state.Selected = ""
		c.state.Hint = pricehint.Unknown
		return fmt.Errorf("bootstrap: %w", err)
	}

	c.state.Menu = menu
	if len(menu) == 0 {
		c.state.MenuStatus = MenuEmpty
		c.state.Selected = ""
		c.state.Hint = pricehint.Unknown
		return nil
	}
	c.state.MenuStatus = MenuLive
	c.state.Selected = menu[0]
	c.state.Hint = c.hints.Hint(menu[0])
	c.logger.Debug().Int("dishes", len(menu)).Msg("menu loaded")
	return nil
}

// Select changes the selected dish and its price hint.
func (c *Controller) Select(dish string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.MenuStatus != MenuLive || !c.state.Menu.Contains(dish) {
		return apperrors.NewValidation(apperrors.CodeUnknownDish, msgUnknownDish)
	}
	c.state.Selected = dish
	c.state.Hint = c.hints.Hint(dish)
	return nil
}

// BeginSubmit validates input locally and, if valid, moves to the loading phase.
// Invalid input raises a blocking alert and never reaches the network.
func (c *Controller) BeginSubmit(dish, priceText string) (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	price, err := c.validate(dish, priceText)
	if err != nil {
		var e *apperrors.Error
		errors.As(err, &e)
		c.state.Alert = &Alert{Kind: apperrors.KindValidation, Message: e.Message}
		return Ticket{}, err
	}

	c.state.Generation++
	c.state.Selected = dish
	c.state.Hint = c.hints.Hint(dish)
	c.state.Phase = PhaseLoading
	c.state.Result = nil
	c.state.Score = nil
	c.state.VendorPrice = price
	c.state.Alert = nil

	return Ticket{
		Generation: c.state.Generation,
		Request:    api.AnalysisRequest{DishName: dish, VendorPrice: price},
	}, nil
}

func (c *Controller) validate(dish, priceText string) (decimal.Decimal, error) {
	switch {
	case c.state.MenuStatus != MenuLive:
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeBackendOffline, msgOfflineDish)
	case dish == "":
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeNoDish, msgPickDish)
	case !c.state.Menu.Contains(dish):
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeUnknownDish, msgUnknownDish)
	}

	priceText = strings.TrimSpace(priceText)
	if priceText == "" {
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeMissingPrice, msgEnterPrice)
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeInvalidPrice, msgInvalidPrice)
	}
	if !price.IsPositive() {
		return decimal.Zero, apperrors.NewValidation(apperrors.CodeNonPositivePrice, msgPositive)
	}
	return price, nil
}

// CompleteSubmit applies the outcome of t. It reports false, changing nothing,
// when a newer submission has started since t was issued.
func (c *Controller) CompleteSubmit(t Ticket, res *api.AnalysisResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Generation != c.state.Generation {
		c.logger.Debug().
			Uint64("generation", t.Generation).
			Uint64("current", c.state.Generation).
			Msg("discarding stale analysis")
		return false
	}

	if err != nil || res == nil {
		if err == nil {
			err = errors.New("empty analysis response")
		}
		c.logger.Warn().Err(err).Str("dish", t.Request.DishName).Msg("analysis failed")
		c.state.Phase = PhaseIdle
		c.state.Result = nil
		c.state.Score = nil
		c.state.Alert = &Alert{Kind: apperrors.KindTransport, Message: msgBackendDown}
		return true
	}

	c.state.Phase = PhaseResult
	c.state.Result = res
	c.state.Score = nil
	if c.features.LocalScoreHeuristic {
		if v, band, ok := score.Compute(t.Request.VendorPrice, res.HonestCost, c.jitter); ok {
			c.state.Score = &Score{Value: v, Band: band}
		}
	}
	c.logger.Debug().
		Str("dish", t.Request.DishName).
		Str("status", string(res.Status)).
		Msg("analysis applied")
	return true
}

// Execute performs the backend call for t and applies the outcome.
func (c *Controller) Execute(ctx context.Context, t Ticket) (*api.AnalysisResult, error) {
	res, err := c.backend.Analyze(ctx, t.Request)
	if !c.CompleteSubmit(t, res, err) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Submit validates, calls the backend once and applies the result.
func (c *Controller) Submit(ctx context.Context, dish, priceText string) (*api.AnalysisResult, error) {
	t, err := c.BeginSubmit(dish, priceText)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, t)
}

// DismissAlert clears a pending alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Alert = nil
}

// SwitchTab activates tab and tells the caller which fetch, if any, to run.
// The flavor directory is refetched on every entry; the map only on the first.
func (c *Controller) SwitchTab(tab Tab) (Load, error) {
	if !c.features.HasTab(tab) {
		return LoadNone, fmt.Errorf("unknown tab %q", tab)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ActiveTab = tab
	switch tab {
	case TabFlavors:
		c.state.Flavors.Loading = true
		return LoadFlavors, nil
	case TabMap:
		if c.state.Map.Initialized {
			c.state.Map.Resizes++
			return LoadNone, nil
		}
		c.state.Map.Initialized = true
		c.state.Map.Loading = true
		return LoadHeatmap, nil
	default:
		return LoadNone, nil
	}
}

// Open switches to tab and performs its fetch synchronously.
func (c *Controller) Open(ctx context.Context, tab Tab) error {
	load, err := c.SwitchTab(tab)
	if err != nil {
		return err
	}
	return c.RunLoad(ctx, load)
}

// RunLoad performs a fetch requested by SwitchTab.
func (c *Controller) RunLoad(ctx context.Context, load Load) error {
	switch load {
	case LoadFlavors:
		return c.LoadFlavors(ctx)
	case LoadHeatmap:
		return c.LoadHeatmap(ctx)
	default:
		return nil
	}
}

// LoadFlavors fetches the flavor directory. When fetches overlap only the
// most recently started one is applied.
func (c *Controller) LoadFlavors(ctx context.Context) error {
	c.mu.Lock()
	c.state.Flavors.Generation++
	gen := c.state.Flavors.Generation
	c.state.Flavors.Loading = true
	c.mu.Unlock()

	entries, err := c.backend.Flavors(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.Flavors.Generation {
		c.logger.Debug().Uint64("generation", gen).Msg("discarding stale flavor directory")
		return nil
	}
	c.state.Flavors.Loading = false
	if err != nil {
		c.logger.Warn().Err(err).Msg("flavor directory fetch failed")
		c.state.Flavors.Err = err
		return err
	}
	c.state.Flavors.Entries = entries
	c.state.Flavors.Err = nil
	return nil
}

// LoadHeatmap fetches the map markers. It is only requested on first map entry.
func (c *Controller) LoadHeatmap(ctx context.Context) error {
	points, err := c.backend.Heatmap(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Map.Loading = false
	if err != nil {
		c.logger.Warn().Err(err).Msg("heatmap fetch failed")
		c.state.Map.Err = err
		return err
	}
	c.state.Map.Points = points
	c.state.Map.Err = nil
	return nil
}
