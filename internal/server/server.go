// Package server serves the dashboard over HTTP: a JSON API and a single
// HTML page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/logging"
	"github.com/marcus/missioncontrol/internal/scheduler"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Options configures a Server.
type Options struct {
	Addr string
	// Refresh regenerates the shared session on a cron schedule; empty disables it.
	Refresh string
	// Defaults is applied when a request carries no filter parameters.
	Defaults filter.Selection
	// Theme selects the page palette: "light" or "dark".
	Theme string
	// RequestTimeout bounds each request; zero means 30s.
	RequestTimeout time.Duration
}

// Server holds the current session and serves views of it.
type Server struct {
	svc    *dashboard.Service
	opts   Options
	logger *logging.Logger
	sched  *scheduler.Scheduler

	mu      sync.RWMutex
	session *tasks.Session
}

// New creates a server with a freshly generated session.
func New(svc *dashboard.Service, opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	s := &Server{
		svc:     svc,
		opts:    opts,
		logger:  logging.Component("server"),
		session: svc.Refresh(),
	}

	if opts.Refresh != "" {
		s.sched = scheduler.New()
		if err := s.sched.SetCron(opts.Refresh); err != nil {
			return nil, fmt.Errorf("refresh schedule: %w", err)
		}
		s.sched.AddJob(func(context.Context) {
			sess := s.Regenerate()
			s.logger.Infof("scheduled refresh: session %s", sess.ID)
		})
	}
	return s, nil
}

// Session returns the shared session.
func (s *Server) Session() *tasks.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Regenerate replaces the shared session.
func (s *Server) Regenerate() *tasks.Session {
	sess := s.svc.Refresh()
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return sess
}

// Handler returns the router with middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handlePage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.sched != nil {
		if err := s.sched.Start(ctx); err != nil {
			return fmt.Errorf("starting refresh scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Zerolog().Info().Str("addr", s.opts.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// selectionFromQuery reads owner and status parameters. status may repeat or
// hold a comma separated list. A request without either uses the defaults.
func (s *Server) selectionFromQuery(r *http.Request) (filter.Selection, error) {
	q := r.URL.Query()
	_, hasOwner := q["owner"]
	_, hasStatus := q["status"]
	if !hasOwner && !hasStatus {
		return s.opts.Defaults, nil
	}
	return filter.ParseSelection(q.Get("owner"), q["status"])
}

// sessionFromQuery returns the session for an explicit seed parameter, or
// the shared session.
func (s *Server) sessionFromQuery(r *http.Request) (*tasks.Session, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return s.Session(), nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || seed == 0 {
		return nil, fmt.Errorf("invalid seed %q", raw)
	}
	return s.svc.SessionFor(seed), nil
}

func (s *Server) viewFor(r *http.Request) (dashboard.View, error) {
	sel, err := s.selectionFromQuery(r)
	if err != nil {
		return dashboard.View{}, err
	}
	sess, err := s.sessionFromQuery(r)
	if err != nil {
		return dashboard.View{}, err
	}
	return s.svc.View(sess, sel), nil
}
