package params

import (
	"sync"

	"github.com/mohae/deepcopy"
)

var (
	dapiConfig     = MainnetConfig()
	dapiConfigLock sync.RWMutex
)

// DapiConfig retrieves the dAPI server config.
func DapiConfig() *DapiServerConfig {
	dapiConfigLock.RLock()
	defer dapiConfigLock.RUnlock()
	return dapiConfig
}

// OverrideDapiConfig by replacing the config. The preferred pattern is to
// call DapiConfig(), change the specific parameters, and then call
// OverrideDapiConfig(c). Any subsequent calls to params.DapiConfig() will
// return this new configuration.
func OverrideDapiConfig(c *DapiServerConfig) {
	dapiConfigLock.Lock()
	defer dapiConfigLock.Unlock()
	dapiConfig = c
}

// SetupTestConfigCleanup preserves configurations allowing to modify them within tests without any
// restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t interface{ Cleanup(func()) }) {
	prev := DapiConfig().Copy()
	t.Cleanup(func() {
		OverrideDapiConfig(prev)
	})
}

// Copy returns a copy of the config object.
func (c *DapiServerConfig) Copy() *DapiServerConfig {
	config, ok := deepcopy.Copy(*c).(DapiServerConfig)
	if !ok {
		config = *c
	}
	return &config
}
