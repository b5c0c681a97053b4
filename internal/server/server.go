// Package server exposes the metrics engine as a read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/recovr/internal/config"
	"github.com/julianstephens/recovr/internal/dates"
	apperrors "github.com/julianstephens/recovr/internal/errors"
	"github.com/julianstephens/recovr/internal/logger"
	"github.com/julianstephens/recovr/internal/metrics"
	"github.com/julianstephens/recovr/internal/storage"
	"github.com/julianstephens/recovr/internal/streak"
)

const shutdownTimeout = 10 * time.Second

// Server serves derived metrics. Every request reads a fresh snapshot from
// the store; nothing derived is cached.
type Server struct {
	store  storage.Provider
	engine config.Engine
	router *chi.Mux
}

// New creates a Server over an already loaded store.
func New(store storage.Provider, engine config.Engine) *Server {
	s := &Server{store: store, engine: engine, router: chi.NewRouter()}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)
	s.router.Use(requestLog)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Get("/milestones", s.handleMilestones)
		r.Get("/savings", s.handleSavings)
		r.Get("/wellness", s.handleWellness)
		r.Get("/streak", s.handleStreak)
		r.Get("/profile/completion", s.handleCompletion)
	})

	return s
}

// ServeHTTP implements http.Handler so a Server can be used directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is cancelled. While running, the
// lockfile at lockPath holds the bound port and this process id.
func (s *Server) Run(ctx context.Context, addr, lockPath string) error {
	if lock, err := CheckLockfile(lockPath); err == nil {
		return fmt.Errorf("server already running on port %d (pid %d)", lock.Port, lock.PID)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	if err := WriteLockfile(lockPath, port); err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if err := RemoveLockfile(lockPath); err != nil {
			logger.Warn("Failed to remove lockfile", "path", lockPath, "error", err)
		}
	}()

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, snap)
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"as_of":      snap.AsOf,
		"sobriety":   snap.Sobriety,
		"milestones": snap.Milestones,
	})
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"as_of":   snap.AsOf,
		"savings": snap.Finance,
	})
}

func (s *Server) handleWellness(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"as_of":    snap.AsOf,
		"wellness": snap.Wellness,
	})
}

// handleStreak accepts an optional event=morning|evening|any override.
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	event := s.engine.StreakEvent
	if raw := r.URL.Query().Get("event"); raw != "" {
		parsed, err := streak.ParseEvent(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		event = parsed
	}

	in, ok := s.input(w, r)
	if !ok {
		return
	}
	info := streak.Compute(streak.EventDays(in.CheckIns, event, in.AsOf.Location()), in.AsOf)
	JSON(w, http.StatusOK, map[string]any{
		"as_of":  dates.Key(in.AsOf),
		"event":  event,
		"streak": info,
	})
}

func (s *Server) handleCompletion(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, snap.ProfileCompletion)
}

func (s *Server) input(w http.ResponseWriter, r *http.Request) (metrics.Input, bool) {
	in, err := metrics.Load(s.store, r.URL.Query().Get("asOf"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDate) {
			Error(w, http.StatusBadRequest, err.Error())
			return metrics.Input{}, false
		}
		logger.Error("Failed to load metrics input", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load data")
		return metrics.Input{}, false
	}
	return in, true
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (metrics.Snapshot, bool) {
	in, ok := s.input(w, r)
	if !ok {
		return metrics.Snapshot{}, false
	}
	return metrics.Compute(in, s.engine), true
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Warn("Failed to encode response", "error", err)
		}
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	})
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
