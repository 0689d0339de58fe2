// Package backend is the HTTP client for the analysis service.
package backend

import (
	"context"
	"fmt"
	"time"

	"annadata/pkg/api"
	"annadata/pkg/platform"
)

// DefaultBaseURL is the local development address of the analysis service.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Paths holds the endpoint paths. They differ slightly between backend builds.
type Paths struct {
	Menu    string
	Analyze string
	Flavors string
	Heatmap string
}

// DefaultPaths returns the paths the current backend serves.
func DefaultPaths() Paths {
	return Paths{
		Menu:    "/get-menu",
		Analyze: "/analyze",
		Flavors: "/flavors",
		Heatmap: "/get-heatmap-data",
	}
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Paths   Paths
	// Timeout of zero means the client relies on the transport to fail.
	Timeout time.Duration
}

// Client calls the analysis service. Calls are never retried.
type Client struct {
	http  *platform.HTTPClient
	paths Paths
}

// NewClient creates a client; empty config fields fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	def := DefaultPaths()
	if cfg.Paths.Menu == "" {
		cfg.Paths.Menu = def.Menu
	}
	if cfg.Paths.Analyze == "" {
		cfg.Paths.Analyze = def.Analyze
	}
	if cfg.Paths.Flavors == "" {
		cfg.Paths.Flavors = def.Flavors
	}
	if cfg.Paths.Heatmap == "" {
		cfg.Paths.Heatmap = def.Heatmap
	}
	return &Client{
		http:  platform.NewHTTPClient(cfg.BaseURL, cfg.Timeout),
		paths: cfg.Paths,
	}
}

// Menu fetches the dish names.
func (c *Client) Menu(ctx context.Context) (api.Menu, error) {
	var menu api.Menu
	if err := c.http.GetJSON(ctx, c.paths.Menu, &menu); err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	return menu, nil
}

// Analyze submits a dish and observed price.
func (c *Client) Analyze(ctx context.Context, req api.AnalysisRequest) (*api.AnalysisResult, error) {
	var res api.AnalysisResult
	if err := c.http.PostJSON(ctx, c.paths.Analyze, req, &res); err != nil {
		return nil, fmt.Errorf("analyze %q: %w", req.DishName, err)
	}
	return &res, nil
}

// Flavors fetches the flavor/alternatives directory.
func (c *Client) Flavors(ctx context.Context) ([]api.FlavorEntry, error) {
	var flavors []api.FlavorEntry
	if err := c.http.GetJSON(ctx, c.paths.Flavors, &flavors); err != nil {
		return nil, fmt.Errorf("fetch flavors: %w", err)
	}
	return flavors, nil
}

// Heatmap fetches the regional risk points.
func (c *Client) Heatmap(ctx context.Context) ([]api.HeatmapPoint, error) {
	var points []api.HeatmapPoint
	if err := c.http.GetJSON(ctx, c.paths.Heatmap, &points); err != nil {
		return nil, fmt.Errorf("fetch heatmap: %w", err)
	}
	return points, nil
}
