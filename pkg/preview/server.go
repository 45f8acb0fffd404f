// Package preview serves a KML document's rendered outputs over HTTP so
// scenes can be reviewed in a browser while the document is being styled.
// File-backed sources are re-read per request, so edits show up on refresh.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-kmlscene/internal/metrics"
	"github.com/goliatone/go-kmlscene/pkg/orchestrator"
)

const defaultShutdownTimeout = 7 * time.Second

// Server exposes preview routes for one document. Populate the exported
// fields and call Start; validation happens there so construction stays a
// plain struct literal.
type Server struct {
	Router *chi.Mux
	Addr   string
	Logger *log.Logger

	// Generator runs every render. A zero orchestrator.New() works for
	// documents carrying their own styles.
	Generator *orchestrator.Orchestrator

	// Request identifies the previewed document (Source or Document) plus
	// any defaults such as a preset name. Routes override the renderer.
	Request orchestrator.Request

	// ShutdownTimeout caps graceful shutdown; zero means 7s.
	ShutdownTimeout time.Duration

	handler    *Handler
	shutdownCh chan os.Signal
}

func (s *Server) addr() string {
	if s.Addr == "" {
		return ":8080"
	}
	if strings.Contains(s.Addr, ":") {
		return s.Addr
	}
	return fmt.Sprintf(":%s", s.Addr)
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return s.ShutdownTimeout
}

func (s *Server) validate() error {
	if s.Router == nil {
		return errors.New("preview: router is nil")
	}
	if s.Logger == nil {
		return errors.New("preview: logger is nil")
	}
	if s.Generator == nil {
		return errors.New("preview: generator is nil")
	}
	if s.Request.Source == nil && s.Request.Document == nil {
		return errors.New("preview: request needs a source or document")
	}
	return nil
}

func (s *Server) init() {
	s.handler = NewHandler(s.Logger, s.Generator, s.Request)
	s.setRoutes()

	s.shutdownCh = make(chan os.Signal, 1)
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
}

func (s *Server) setRoutes() {
	s.Router.Get("/scene.json", s.handler.HandleSceneJSON())
	s.Router.Get("/scene.geojson", s.handler.HandleGeoJSON())
	s.Router.Get("/report", s.handler.HandleReport())
	s.Router.Get("/features/{id}/balloon", s.handler.HandleBalloon())
	s.Router.Get("/healthz", s.handler.HandleHealth())
	s.Router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

// Routes validates the configuration and returns the initialised router.
// Tests and embedders mount it directly; Start uses it before listening.
func (s *Server) Routes() (http.Handler, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.handler == nil {
		s.init()
	}
	return s.Router, nil
}

func (s *Server) listenAndServe() error {
	httpServer := &http.Server{
		Addr:    s.addr(),
		Handler: s.Router,
	}

	startCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startCh <- fmt.Errorf("preview: start server: %w", err)
		}
	}()

	s.Logger.Printf("preview listening on %s", s.addr())

	// Wait for either a shutdown signal or a startup failure.
	select {
	case err := <-startCh:
		return err
	case <-s.shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("preview: shutdown server: %w", err)
		}
	}

	return nil
}

// Start validates the server, mounts the routes, and serves until SIGINT or
// SIGTERM arrives, then shuts down gracefully within ShutdownTimeout.
func (s *Server) Start() error {
	if _, err := s.Routes(); err != nil {
		return err
	}
	return s.listenAndServe()
}
