// Package http_rest runs the HTTP listener of the dAPI server JSON API.
package http_rest

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/oraclelabs/dapi-server/api/server"
	"github.com/oraclelabs/dapi-server/runtime"
	"github.com/pkg/errors"
)

var _ runtime.Service = (*Server)(nil)

const shutdownGracePeriod = 2 * time.Second

type config struct {
	httpAddr       string
	allowedOrigins []string
	router         *mux.Router
	timeout        time.Duration
}

// Server serves the dAPI routes of a router behind the request id, cors and
// request timeout middleware.
type Server struct {
	ctx    context.Context
	cfg    *config
	server *http.Server

	lock       sync.RWMutex
	serveError error
}

// New builds a server from opts. WithRouter is required.
func New(ctx context.Context, opts ...Option) (*Server, error) {
	s := &Server{
		ctx: ctx,
		cfg: &config{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.cfg.router == nil {
		return nil, errors.New("router option not configured")
	}

	var handler http.Handler = s.cfg.router
	if s.cfg.timeout > 0 {
		handler = http.TimeoutHandler(handler, s.cfg.timeout, "request timed out")
	}
	handler = server.CorsHandler(s.cfg.allowedOrigins)(handler)
	s.server = &http.Server{
		Addr:              s.cfg.httpAddr,
		Handler:           server.RequestIDHandler(handler),
		ReadHeaderTimeout: time.Second,
	}
	return s, nil
}

// Handler returns the wrapped handler, for serving without a listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in the background. A bind or
// serve failure is reported by Status.
func (s *Server) Start() {
	listener, err := net.Listen("tcp", s.cfg.httpAddr)
	if err != nil {
		s.setServeError(errors.Wrapf(err, "could not listen on %s", s.cfg.httpAddr))
		return
	}
	log.WithField("address", listener.Addr().String()).Info("Starting HTTP server")
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.setServeError(err)
		}
	}()
}

func (s *Server) setServeError(err error) {
	s.lock.Lock()
	s.serveError = err
	s.lock.Unlock()
	log.WithError(err).Error("HTTP server failed")
}

// Status returns the error that stopped the listener, if any.
func (s *Server) Status() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.serveError
}

// Stop shuts the listener down, giving open requests a short grace period.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(s.ctx, shutdownGracePeriod)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return errors.Wrap(err, "could not shut down HTTP server")
		}
		log.Warn("Open HTTP connections terminated")
	}
	return nil
}
