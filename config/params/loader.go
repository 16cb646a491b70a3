package params

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// UnmarshalConfigFile reads a YAML file and layers its values on top of the
// mainnet defaults.
func UnmarshalConfigFile(path string) (*DapiServerConfig, error) {
	yamlFile, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	conf := MainnetConfig().Copy()
	conf.ConfigName = ""
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		return nil, errors.Wrap(err, "failed to parse config yaml file")
	}
	if conf.ConfigName == "" {
		conf.ConfigName = "custom"
	}
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// LoadDapiConfigFile loads the config file and applies it as the active
// configuration.
func LoadDapiConfigFile(path string) error {
	conf, err := UnmarshalConfigFile(path)
	if err != nil {
		return err
	}
	log.Debugf("Config file values: %+v", conf)
	OverrideDapiConfig(conf)
	return nil
}

func (c *DapiServerConfig) validate() error {
	if c.MinBeaconsPerDapi < 1 {
		return errors.Errorf("MIN_BEACONS_PER_DAPI must be positive, got %d", c.MinBeaconsPerDapi)
	}
	if c.EncodedValueLength != 32 {
		return errors.Errorf("ENCODED_VALUE_LENGTH must be 32, got %d", c.EncodedValueLength)
	}
	if c.MaxTimestampAge == 0 || c.MaxTimestampDrift == 0 {
		return errors.New("timestamp window bounds must be positive")
	}
	if c.DatapointCacheSize < 0 {
		return errors.Errorf("DATAPOINT_CACHE_SIZE must not be negative, got %d", c.DatapointCacheSize)
	}
	return nil
}
