package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/modules/indicators"
	"github.com/quangtran/advisor/internal/modules/scanner"
	"github.com/quangtran/advisor/internal/modules/scoring"
	"github.com/quangtran/advisor/internal/modules/simulation"
	"github.com/quangtran/advisor/internal/modules/universe"
)

// Config holds server configuration
type Config struct {
	Port    int
	DevMode bool
	Log     zerolog.Logger

	Engine      *indicators.Engine
	Technical   *scoring.TechnicalScorer
	Fundamental *scoring.FundamentalScorer
	Simulator   *simulation.Simulator
	Scanner     *scanner.Scanner
	Store       *universe.HistoryStore
}

// Server exposes the analysis operations over HTTP
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	engine      *indicators.Engine
	technical   *scoring.TechnicalScorer
	fundamental *scoring.FundamentalScorer
	simulator   *simulation.Simulator
	scanner     *scanner.Scanner
	store       *universe.HistoryStore
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		log:         cfg.Log.With().Str("component", "server").Logger(),
		engine:      cfg.Engine,
		technical:   cfg.Technical,
		fundamental: cfg.Fundamental,
		simulator:   cfg.Simulator,
		scanner:     cfg.Scanner,
		store:       cfg.Store,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/analyze/{symbol}", s.handleAnalyze)
		r.Post("/fundamental", s.handleFundamental)
		r.Post("/scan", s.handleScan)
		r.Post("/simulate", s.handleSimulate)
	})
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
