// Package rpc serves the dAPI server operations over HTTP with JSON bodies.
package rpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kevinms/leakybucket-go"
	"github.com/oraclelabs/dapi-server/api/server"
	httprest "github.com/oraclelabs/dapi-server/api/server/http-rest"
	"github.com/oraclelabs/dapi-server/dapi-server/dapi"
	"github.com/oraclelabs/dapi-server/runtime"
	"github.com/pkg/errors"
)

var _ runtime.Service = (*Service)(nil)

// Config options for the HTTP API.
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
	Timeout        time.Duration
	// WriteRate is the number of write requests a caller may issue per second
	// once WriteBurst is exhausted. Zero disables rate limiting.
	WriteRate  float64
	WriteBurst int64
	Server     *dapi.Server
}

// Service defining the HTTP API of a dAPI server.
type Service struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     *Config
	limiter *leakybucket.Collector
	server  *httprest.Server
}

// NewService creates a new instance of the HTTP API service.
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Server == nil {
		return nil, errors.New("no dAPI server configured")
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	if cfg.WriteRate > 0 {
		burst := cfg.WriteBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = leakybucket.NewCollector(cfg.WriteRate, burst, true)
	}
	srv, err := httprest.New(ctx,
		httprest.WithRouter(s.Router()),
		httprest.WithHTTPAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		httprest.WithAllowedOrigins(cfg.AllowedOrigins),
		httprest.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "could not create HTTP server")
	}
	s.server = srv
	return s, nil
}

// Router returns the routes of the API.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/dapi/v1").Subrouter()

	api.HandleFunc("/beacons/signed", s.limit(s.UpdateBeaconWithSignedData)).Methods(http.MethodPost)
	api.HandleFunc("/dapis/beacons", s.limit(s.UpdateDapiWithBeacons)).Methods(http.MethodPost)
	api.HandleFunc("/dapis/signed", s.limit(s.UpdateDapiWithSignedData)).Methods(http.MethodPost)
	api.HandleFunc("/names", s.limit(s.SetName)).Methods(http.MethodPost)
	api.HandleFunc("/roles/grant", s.limit(s.GrantRole)).Methods(http.MethodPost)
	api.HandleFunc("/roles/revoke", s.limit(s.RevokeRole)).Methods(http.MethodPost)
	api.HandleFunc("/roles/renounce", s.limit(s.RenounceRole)).Methods(http.MethodPost)
	api.HandleFunc("/whitelist/expiration", s.limit(s.SetWhitelistExpiration)).Methods(http.MethodPost)
	api.HandleFunc("/whitelist/extend", s.limit(s.ExtendWhitelistExpiration)).Methods(http.MethodPost)
	api.HandleFunc("/whitelist/indefinite", s.limit(s.SetIndefiniteWhitelistStatus)).Methods(http.MethodPost)
	api.HandleFunc("/whitelist/revoke", s.limit(s.RevokeIndefiniteWhitelistStatus)).Methods(http.MethodPost)

	api.HandleFunc("/ids/beacon", s.BeaconID).Methods(http.MethodGet)
	api.Handle("/ids/dapi", server.NormalizeQueryValuesHandler(http.HandlerFunc(s.DapiID))).Methods(http.MethodGet)
	api.HandleFunc("/datapoints/{id}", s.ReadWithDataPointID).Methods(http.MethodGet)
	api.HandleFunc("/names/{name}", s.NameToDataFeedID).Methods(http.MethodGet)
	api.HandleFunc("/names/{name}/datapoint", s.ReadWithName).Methods(http.MethodGet)
	api.HandleFunc("/roles/well-known", s.WellKnownRoles).Methods(http.MethodGet)
	api.HandleFunc("/roles/{role}/{who}", s.HasRole).Methods(http.MethodGet)
	api.HandleFunc("/readers/{feed}/{reader}", s.ReaderCanReadDataFeed).Methods(http.MethodGet)
	api.HandleFunc("/whitelist/{feed}/{reader}", s.WhitelistStatus).Methods(http.MethodGet)
	return r
}

// Handler returns the wrapped handler served on the API address.
func (s *Service) Handler() http.Handler {
	return s.server.Handler()
}

// Start the HTTP API.
func (s *Service) Start() {
	s.server.Start()
}

// Stop the HTTP API.
func (s *Service) Stop() error {
	defer s.cancel()
	return s.server.Stop()
}

// Status returns an error if the listener failed or the database cannot serve reads.
func (s *Service) Status() error {
	if err := s.server.Status(); err != nil {
		return err
	}
	return s.cfg.Server.Status()
}
