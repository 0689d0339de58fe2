// Package devbackend serves canned analysis responses for local development and tests.
// It stands in for the analysis service and computes no prices of its own.
package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"annadata/pkg/api"
	"annadata/pkg/platform"
)

// Config holds server configuration
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
	// AuthUser and AuthPass guard the API routes when AuthUser is set.
	AuthUser string
	AuthPass string
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:8000",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 64 * 1024,
		CORSOrigins:    []string{"*"},
	}
}

// Server is the fixture HTTP server.
type Server struct {
	httpServer *http.Server
	fixture    *Fixture
	config     *Config
	logger     zerolog.Logger
}

// NewServer creates a server over fx.
func NewServer(fx *Fixture, config *Config, logger zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if fx == nil {
		fx = DefaultFixture()
	}
	return &Server{
		fixture: fx,
		config:  config,
		logger:  logger,
	}
}

// Handler builds the routed handler with middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(platform.BasicAuth(s.config.AuthUser, s.config.AuthPass))
		r.Get("/get-menu", s.handleMenu)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/flavors", s.handleFlavors)
		r.Get("/get-heatmap-data", s.handleHeatmap)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Int("dishes", len(s.fixture.Dishes)).Msg("fixture backend listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down fixture backend")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("client_request_id", r.Header.Get("X-Request-ID")).
			Dur("latency", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if s.fixture.Fail.Menu {
		s.jsonError(w, http.StatusServiceUnavailable, "menu unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, s.fixture.Menu())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.fixture.Fail.Analyze {
		s.jsonError(w, http.StatusServiceUnavailable, "analysis unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req api.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if !req.VendorPrice.IsPositive() {
		s.jsonError(w, http.StatusBadRequest, "vendor_price must be positive")
		return
	}

	dish, ok := s.fixture.Lookup(req.DishName)
	if !ok {
		s.jsonError(w, http.StatusNotFound, fmt.Sprintf("unknown dish %q", req.DishName))
		return
	}

	s.jsonResponse(w, http.StatusOK, dish.Analyze(req.VendorPrice))
}

func (s *Server) handleFlavors(w http.ResponseWriter, r *http.Request) {
	if s.fixture.Fail.Flavors {
		s.jsonError(w, http.StatusServiceUnavailable, "flavors unavailable")
		return
	}
	flavors := s.fixture.Flavors
	if flavors == nil {
		flavors = []api.FlavorEntry{}
	}
	s.jsonResponse(w, http.StatusOK, flavors)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	if s.fixture.Fail.Heatmap {
		s.jsonError(w, http.StatusServiceUnavailable, "heatmap unavailable")
		return
	}
	points := s.fixture.Heatmap
	if points == nil {
		points = []api.HeatmapPoint{}
	}
	s.jsonResponse(w, http.StatusOK, points)
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, api.ErrorResponse{Error: message})
}
