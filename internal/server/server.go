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

	"github.com/alphaforge/forge/internal/modules/advisor"
	"github.com/alphaforge/forge/internal/modules/calendar"
	"github.com/alphaforge/forge/internal/modules/portfolio"
	"github.com/alphaforge/forge/internal/modules/risk"
	"github.com/alphaforge/forge/internal/modules/tasks"
	"github.com/alphaforge/forge/internal/modules/tax"
	"github.com/alphaforge/forge/internal/services/quotes"
)

// Handlers bundles the module handlers mounted on the API
type Handlers struct {
	Portfolio *portfolio.Handler
	Risk      *risk.Handler
	Tax       *tax.Handler
	Advisor   *advisor.Handler
	Calendar  *calendar.Handler
	Tasks     *tasks.Handler
	Quotes    *quotes.Handler
}

// Config holds server configuration
type Config struct {
	Port     int
	DevMode  bool
	Log      zerolog.Logger
	Handlers Handlers
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	handlers Handlers
	started  time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		handlers: cfg.Handlers,
		started:  time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// The dashboard frontend runs on a different origin during development
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		s.handlers.Portfolio.Routes(r)
		s.handlers.Tasks.Routes(r)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/risk", s.handlers.Risk.HandleGetRisk)
			r.Get("/tax", s.handlers.Tax.HandleGetTax)
			r.Get("/advisor", s.handlers.Advisor.HandleGetAnalysis)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/dividends", s.handlers.Calendar.HandleGetDividends)
			r.Get("/earnings", s.handlers.Calendar.HandleGetEarnings)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", s.handlers.Quotes.HandleList)
			r.Post("/sync", s.handlers.Quotes.HandleSync)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
