// Package server exposes the widget resolution engine to the dashboard
// shell over HTTP: chat-driven widget generation, widget CRUD, and
// render-time binding resolution.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// Generator is the gateway surface the server depends on.
type Generator interface {
	Generate(ctx context.Context, userText string) (widget.Config, error)
}

// Config holds server dependencies.
type Config struct {
	Registry  *schema.Registry
	Generator Generator
	Port      int
	Logger    *slog.Logger
}

// Server is the HTTP API for the dashboard shell.
type Server struct {
	reg    *schema.Registry
	gen    Generator
	store  *Store
	logger *slog.Logger
	port   int
}

// New creates a server with an empty widget store.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		reg:    cfg.Registry,
		gen:    cfg.Generator,
		store:  NewStore(),
		logger: logger,
		port:   cfg.Port,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/schema", s.handleSchema)

		r.Route("/widgets", func(r chi.Router) {
			r.Get("/", s.handleListWidgets)
			r.Get("/{id}", s.handleGetWidget)
			r.Delete("/{id}", s.handleDeleteWidget)
			r.Patch("/{id}/style", s.handleSetStyle)
			r.Get("/{id}/bindings", s.handleBindings)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("vitalflux widget service listening", "port", s.port, "datasource", s.reg.Source())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
