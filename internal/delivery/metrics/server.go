package metrics_server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"personal-site-service/internal/logger"
)

// Server exposes the Prometheus scrape endpoint on its own listener so
// the API port stays free of operational traffic.
type Server struct {
	server  *http.Server
	address string
	port    int
	log     *logger.Logger
}

func NewMetricsServer(address string, port int, log *logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", address, port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		address: address,
		port:    port,
		log:     log,
	}
}

func (s *Server) Run() error {
	s.log.Info("Starting metrics server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
