// Package http implements the JSON API consumed by the Seal Hub web client.
// Handlers are presentation glue only: they decode requests, call the
// application layer, and translate domain errors to status codes. All rules
// about completion, aggregation, ranking, and notification live below.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/application/command"
	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
	"github.com/seal-hub/seal-progress-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Dependencies contains all dependencies required by HTTP handlers.
type Dependencies struct {
	// Command Handlers (CQRS Write Side)
	RegisterUser       *command.RegisterUserHandler
	LoginUser          *command.LoginUserHandler
	CompleteObjective  *command.CompleteObjectiveHandler
	ConsumeEarnedNotif *command.ConsumeEarnedNotificationHandler

	// Query Handlers (CQRS Read Side)
	ListSeals      *query.ListSealsHandler
	GetSeal        *query.GetSealHandler
	GetUserStats   *query.GetUserStatsHandler
	GetLeaderboard *query.GetLeaderboardHandler

	// Sessions
	Sessions user.SessionStore

	// Health check
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Logger
	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server represents the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	router     *http.ServeMux
	logger     *logger.Logger

	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.Default()
	}

	s := &Server{
		config: cfg,
		deps:   deps,
		router: http.NewServeMux(),
		logger: deps.Logger.With(logger.Component("http")),
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.withRecovery(s.withRequestLog(s.router)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// registerRoutes wires the API surface.
func (s *Server) registerRoutes() {
	s.router.HandleFunc("GET /healthz", s.handleHealth)

	s.router.HandleFunc("POST /api/signup", s.handleSignup)
	s.router.HandleFunc("POST /api/login", s.handleLogin)
	s.router.HandleFunc("POST /api/logout", s.withAuth(s.handleLogout))

	s.router.HandleFunc("GET /api/seals", s.withAuth(s.handleListSeals))
	s.router.HandleFunc("GET /api/seals/{slug}", s.withAuth(s.handleGetSeal))
	s.router.HandleFunc("POST /api/objectives/{id}/complete", s.withAuth(s.handleCompleteObjective))
	s.router.HandleFunc("POST /api/seals/{slug}/notification", s.withAuth(s.handleConsumeNotification))
	s.router.HandleFunc("GET /api/me/stats", s.withAuth(s.handleUserStats))
	s.router.HandleFunc("GET /api/leaderboard", s.withAuth(s.handleLeaderboard))
}

// Start begins serving. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.mu.Lock()
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("http server starting", logger.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// IsRunning reports whether the server is accepting requests.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns how long the server has been running, or zero before Start.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}

// Handler exposes the routed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.withRecovery(s.withRequestLog(s.router))
}
