// Package runtime manages the lifecycle of the long running services of a
// dAPI server node: the HTTP API, MQTT ingestion and monitoring.
package runtime

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "registry")

// Service is a long running component of the node.
type Service interface {
	// Start launches the service. It may block until the service is serving.
	Start()
	// Stop releases everything the service holds.
	Stop() error
	// Status returns nil while the service is healthy.
	Status() error
}

// ServiceRegistry holds at most one service per concrete type, in
// registration order.
type ServiceRegistry struct {
	services     map[reflect.Type]Service
	serviceTypes []reflect.Type
}

// NewServiceRegistry returns an empty registry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}
}

// RegisterService adds service. Registering a second service of the same
// type is an error.
func (s *ServiceRegistry) RegisterService(service Service) error {
	kind := reflect.TypeOf(service)
	if _, ok := s.services[kind]; ok {
		return fmt.Errorf("service already exists: %v", kind)
	}
	s.services[kind] = service
	s.serviceTypes = append(s.serviceTypes, kind)
	return nil
}

// StartAll starts every service on its own goroutine, in registration order.
func (s *ServiceRegistry) StartAll() {
	log.Debugf("Starting %d services: %v", len(s.serviceTypes), s.serviceTypes)
	for _, kind := range s.serviceTypes {
		go s.services[kind].Start()
	}
}

// StopAll stops the services in reverse registration order, so a service is
// stopped before the services registered ahead of it. Failures are logged.
func (s *ServiceRegistry) StopAll() {
	for i := len(s.serviceTypes) - 1; i >= 0; i-- {
		kind := s.serviceTypes[i]
		if err := s.services[kind].Stop(); err != nil {
			log.WithError(err).WithField("service", kind.String()).Error("Could not stop service")
		}
	}
}

// Statuses returns the Status of every registered service by type.
func (s *ServiceRegistry) Statuses() map[reflect.Type]error {
	statuses := make(map[reflect.Type]error, len(s.serviceTypes))
	for _, kind := range s.serviceTypes {
		statuses[kind] = s.services[kind].Status()
	}
	return statuses
}

// Healthy returns an error naming every unhealthy service, or nil.
func (s *ServiceRegistry) Healthy() error {
	var failures []string
	for kind, err := range s.Statuses() {
		if err != nil {
			failures = append(failures, fmt.Sprintf("%v: %v", kind, err))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	sort.Strings(failures)
	return fmt.Errorf("unhealthy services: %s", strings.Join(failures, "; "))
}
