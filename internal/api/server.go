package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ignite/pagecraft/internal/config"
)

// Server is the HTTP front of the API. Generation requests stay open for
// the simulated latency, so the write timeout comes from config.
type Server struct {
	http *http.Server
}

// NewServer wires the routes and listens on the configured host and port.
func NewServer(cfg config.ServerConfig, h *Handlers) *Server {
	return &Server{http: &http.Server{
		Addr:              net.JoinHostPort(cfg.GetHost(), strconv.Itoa(cfg.Port)),
		Handler:           SetupRoutes(h, cfg.AllowedOrigins),
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       2 * time.Minute,
	}}
}

func (s *Server) Addr() string                       { return s.http.Addr }
func (s *Server) Handler() http.Handler              { return s.http.Handler }
func (s *Server) ListenAndServe() error              { return s.http.ListenAndServe() }
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }
