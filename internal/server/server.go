package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aria-creative/vitrine/internal/handler"
	"github.com/aria-creative/vitrine/internal/mailer"
	"github.com/aria-creative/vitrine/internal/model"
	"github.com/aria-creative/vitrine/internal/server/middleware"
	"github.com/aria-creative/vitrine/internal/service"
	"github.com/aria-creative/vitrine/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigin      string
	Dev             bool
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            3001,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigin:      "http://localhost:8081",
	}
}

// Server is the top-level HTTP server. It owns the chi router, the store,
// the auth service, and the mail dispatcher.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	mailer     mailer.Mailer
	httpServer *http.Server
	logger     *slog.Logger
	startedAt  time.Time
}

// New creates a Server with all routes and middleware wired, ready to
// listen.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, m mailer.Mailer, logger *slog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		store:     st,
		authSvc:   authSvc,
		mailer:    m,
		logger:    logger,
		startedAt: time.Now(),
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	authHandler := handler.NewAuthHandler(s.authSvc, s.logger, s.cfg.Dev)
	contactHandler := handler.NewContactHandler(s.store, s.mailer, s.logger, s.cfg.Dev)
	projectHandler := handler.NewProjectHandler(s.store, s.logger, s.cfg.Dev)

	requireAdmin := middleware.Authenticate(s.authSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.RateLimit(middleware.LoginLimit, middleware.LoginWindow)).
				Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/verify", authHandler.Verify)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/logout", authHandler.Logout)
				r.Get("/profile", authHandler.Profile)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(middleware.RateLimit(middleware.ContactLimit, middleware.ContactWindow)).
				Post("/", contactHandler.Submit)

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", contactHandler.List)
				r.Get("/stats", contactHandler.Stats)
				r.Get("/mail-test", contactHandler.MailTest)
				r.Get("/{id}", contactHandler.Get)
				r.Put("/{id}/status", contactHandler.SetStatus)
				r.Delete("/{id}", contactHandler.Delete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.ListPublic)
			r.With(requireAdmin).Get("/admin", projectHandler.ListAll)
			r.Get("/{id}", projectHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", projectHandler.Create)
				r.Put("/{id}", projectHandler.Update)
				r.Post("/{id}/status", projectHandler.SetStatus)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"API route not found"}`))
	})

	s.router = r
}

// handleHealth is the liveness probe: process uptime, a timestamp, and a
// database ping. A failing ping degrades the answer to 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "OK"
	httpStatus := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check: database unreachable", "error", err)
		status = "DEGRADED"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(model.Response{
		Success: httpStatus == http.StatusOK,
		Data: map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(s.startedAt).Seconds(),
		},
	})
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
