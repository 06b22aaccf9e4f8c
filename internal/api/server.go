// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Authorization is applied here, at mount time: the auth routes run under
the identity-only policy (a verified credential may not have a profile
yet), while every resource route runs under the full policy that also
resolves the application user.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/SillyCatto/boibritto-sub001/internal/blog"
	"github.com/SillyCatto/boibritto-sub001/internal/collection"
	"github.com/SillyCatto/boibritto-sub001/internal/discussion"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/config"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/middleware"
	"github.com/SillyCatto/boibritto-sub001/internal/readinglist"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// User handles signup/login and profile routes.
	User *user.Handler

	// ReadingList handles the personal reading tracker.
	ReadingList *readinglist.Handler

	// Collection handles curated volume collections.
	Collection *collection.Handler

	// Blog handles long-form posts and serialized chapters.
	Blog *blog.Handler

	// Discussion handles community threads and comments.
	Discussion *discussion.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.UserResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.DebugMode(cfg))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {

		// Auth routes: proven credential, profile optional.
		api.Group(func(authRoutes chi.Router) {
			authRoutes.Use(middleware.AttachIdentity(verifier))
			authRoutes.Mount("/auth", h.User.AuthRoutes())
		})

		// Resource routes: proven credential AND registered profile.
		api.Group(func(resourceRoutes chi.Router) {
			resourceRoutes.Use(middleware.VerifyUser(verifier, resolver))
			resourceRoutes.Mount("/users", h.User.Routes())
			resourceRoutes.Mount("/reading-list", h.ReadingList.Routes())
			resourceRoutes.Mount("/collections", h.Collection.Routes())
			resourceRoutes.Mount("/blogs", h.Blog.Routes())
			resourceRoutes.Mount("/chapters", h.Blog.ChapterRoutes())
			resourceRoutes.Mount("/discussions", h.Discussion.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
