// Package params defines important constants that are essential to the dAPI server.
package params

import (
	"time"
)

// DapiServerConfig contains the constant configs of a dAPI server.
type DapiServerConfig struct {
	ConfigName string `yaml:"CONFIG_NAME"` // ConfigName for allowing an easy human-readable way of knowing what config is being used.

	// Signed update acceptance window, in seconds relative to the local clock.
	MaxTimestampAge   uint64 `yaml:"MAX_TIMESTAMP_AGE"`   // MaxTimestampAge is how far in the past a signed timestamp may lie.
	MaxTimestampDrift uint64 `yaml:"MAX_TIMESTAMP_DRIFT"` // MaxTimestampDrift is how far in the future a signed timestamp may lie.

	// Aggregation.
	MinBeaconsPerDapi int `yaml:"MIN_BEACONS_PER_DAPI"` // MinBeaconsPerDapi is the smallest beacon set a dAPI may be aggregated from.
	EncodedValueLength int `yaml:"ENCODED_VALUE_LENGTH"` // EncodedValueLength is the ABI width of a signed integer value.

	// Role descriptions hashed into the well-known role identifiers.
	AdminRoleDescription                       string `yaml:"ADMIN_ROLE_DESCRIPTION"`
	UnlimitedReaderRoleDescription             string `yaml:"UNLIMITED_READER_ROLE_DESCRIPTION"`
	NameSetterRoleDescription                  string `yaml:"NAME_SETTER_ROLE_DESCRIPTION"`
	WhitelistExpirationExtenderRoleDescription string `yaml:"WHITELIST_EXPIRATION_EXTENDER_ROLE_DESCRIPTION"`
	WhitelistExpirationSetterRoleDescription   string `yaml:"WHITELIST_EXPIRATION_SETTER_ROLE_DESCRIPTION"`
	IndefiniteWhitelisterRoleDescription       string `yaml:"INDEFINITE_WHITELISTER_ROLE_DESCRIPTION"`

	// Storage.
	DatabaseFileName   string        // DatabaseFileName is the bolt file created inside the data directory.
	DatapointCacheSize int           `yaml:"DATAPOINT_CACHE_SIZE"` // DatapointCacheSize is the number of decoded datapoints kept in memory.
	BoltTimeout        time.Duration // BoltTimeout bounds how long opening the database waits for the file lock.
	BackupsDirName     string        // BackupsDirName is the directory backups are written to inside the data directory.
}

// MainnetConfig returns the configuration used by production deployments.
func MainnetConfig() *DapiServerConfig {
	return mainnetDapiConfig
}

var mainnetDapiConfig = &DapiServerConfig{
	ConfigName: "mainnet",

	MaxTimestampAge:   3600,
	MaxTimestampDrift: 900,

	MinBeaconsPerDapi:  2,
	EncodedValueLength: 32,

	AdminRoleDescription:                       "DapiServer admin",
	UnlimitedReaderRoleDescription:             "Unlimited reader",
	NameSetterRoleDescription:                  "Name setter",
	WhitelistExpirationExtenderRoleDescription: "Whitelist expiration extender",
	WhitelistExpirationSetterRoleDescription:   "Whitelist expiration setter",
	IndefiniteWhitelisterRoleDescription:       "Indefinite whitelister",

	DatabaseFileName:   "dapiserver.db",
	DatapointCacheSize: 4096,
	BoltTimeout:        1 * time.Second,
	BackupsDirName:     "backups",
}

// MinimalConfig returns a configuration with a small cache, used by tests.
func MinimalConfig() *DapiServerConfig {
	cfg := MainnetConfig().Copy()
	cfg.ConfigName = "minimal"
	cfg.DatapointCacheSize = 16
	return cfg
}
