package runtime

import (
	"errors"
	"reflect"
	"testing"

	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

type mockService struct {
	status error
}
type secondMockService struct {
	status error
}

func (_ *mockService) Start() {
}

func (_ *mockService) Stop() error {
	return nil
}

func (m *mockService) Status() error {
	return m.status
}

func (_ *secondMockService) Start() {
}

func (_ *secondMockService) Stop() error {
	return nil
}

func (s *secondMockService) Status() error {
	return s.status
}

func TestRegisterService_Twice(t *testing.T) {
	registry := &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}

	m := &mockService{}
	require.NoError(t, registry.RegisterService(m), "Failed to register first service")

	// Checks if first service was indeed registered.
	require.Equal(t, 1, len(registry.serviceTypes))
	assert.ErrorContains(t, "service already exists", registry.RegisterService(m))
}

func TestRegisterService_Different(t *testing.T) {
	registry := &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}

	m := &mockService{}
	s := &secondMockService{}
	require.NoError(t, registry.RegisterService(m), "Failed to register first service")
	require.NoError(t, registry.RegisterService(s), "Failed to register second service")

	require.Equal(t, 2, len(registry.serviceTypes))

	_, exists := registry.services[reflect.TypeOf(m)]
	assert.Equal(t, true, exists, "service of type %v not registered", reflect.TypeOf(m))

	_, exists = registry.services[reflect.TypeOf(s)]
	assert.Equal(t, true, exists, "service of type %v not registered", reflect.TypeOf(s))
}

func TestServiceStatus_OK(t *testing.T) {
	registry := &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}

	m := &mockService{}
	require.NoError(t, registry.RegisterService(m), "Failed to register first service")

	s := &secondMockService{}
	require.NoError(t, registry.RegisterService(s), "Failed to register first service")

	m.status = errors.New("database closed")
	s.status = errors.New("listener closed")

	statuses := registry.Statuses()

	assert.ErrorContains(t, "database closed", statuses[reflect.TypeOf(m)])
	assert.ErrorContains(t, "listener closed", statuses[reflect.TypeOf(s)])
}

func TestHealthy(t *testing.T) {
	registry := NewServiceRegistry()
	m := &mockService{}
	s := &secondMockService{}
	require.NoError(t, registry.RegisterService(m))
	require.NoError(t, registry.RegisterService(s))
	require.NoError(t, registry.Healthy())

	s.status = errors.New("listener closed")
	m.status = errors.New("database closed")
	err := registry.Healthy()
	assert.ErrorContains(t, "*runtime.mockService: database closed; *runtime.secondMockService: listener closed", err)
}

type stoppingService struct {
	mockService
	stopped *[]string
	name    string
}

func (s *stoppingService) Stop() error {
	*s.stopped = append(*s.stopped, s.name)
	return nil
}

type otherStoppingService struct {
	stoppingService
}

func TestStopAll_ReverseOrder(t *testing.T) {
	var stopped []string
	registry := NewServiceRegistry()
	require.NoError(t, registry.RegisterService(&stoppingService{stopped: &stopped, name: "db"}))
	require.NoError(t, registry.RegisterService(&otherStoppingService{stoppingService{stopped: &stopped, name: "rpc"}}))
	registry.StopAll()
	assert.DeepEqual(t, []string{"rpc", "db"}, stopped)
}
