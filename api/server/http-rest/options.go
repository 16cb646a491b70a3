package http_rest

import (
	"time"

	"github.com/gorilla/mux"
)

// Option for configuring the http-rest server.
type Option func(s *Server) error

// WithRouter sets the router serving the API routes.
func WithRouter(r *mux.Router) Option {
	return func(s *Server) error {
		s.cfg.router = r
		return nil
	}
}

// WithHTTPAddr sets the host:port the server listens on.
func WithHTTPAddr(addr string) Option {
	return func(s *Server) error {
		s.cfg.httpAddr = addr
		return nil
	}
}

// WithAllowedOrigins sets the origins allowed by the cors middleware.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) error {
		s.cfg.allowedOrigins = origins
		return nil
	}
}

// WithTimeout bounds the time spent serving one request.
func WithTimeout(duration time.Duration) Option {
	return func(s *Server) error {
		s.cfg.timeout = duration
		return nil
	}
}
