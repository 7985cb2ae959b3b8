// File: internal/infra/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/config"
)

// Server exposes the ops surface: liveness and Prometheus metrics. It never
// serves user traffic; the bot speaks through Telegram long polling.
type Server struct {
	cfg    *config.Config
	logger *zerolog.Logger
	server *http.Server
}

func NewServer(cfg *config.Config, logger *zerolog.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Admin.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info().Int("port", s.cfg.Admin.Port).Msg("ops server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
