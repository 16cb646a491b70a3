// Package flags defines the command line flags of the dapi-server binary.
package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	// ManagerFlag is the principal holding every role.
	ManagerFlag = &cli.StringFlag{
		Name: "manager",
		Usage: "Principal of the manager. 0x prefixed hex of up to 32 bytes, or an account name. " +
			"The manager implicitly holds every role.",
	}
	// HTTPHostFlag is the host the JSON API listens on.
	HTTPHostFlag = &cli.StringFlag{
		Name:  "http-host",
		Usage: "Host on which the HTTP JSON API listens",
		Value: "127.0.0.1",
	}
	// HTTPPortFlag is the port the JSON API listens on.
	HTTPPortFlag = &cli.IntFlag{
		Name:  "http-port",
		Usage: "Port on which the HTTP JSON API listens",
		Value: 3500,
	}
	// HTTPTimeoutFlag bounds the time spent on one API request.
	HTTPTimeoutFlag = &cli.DurationFlag{
		Name:  "http-timeout",
		Usage: "Maximum duration of one HTTP API request",
		Value: 30 * time.Second,
	}
	// HTTPCorsDomainFlag lists the origins allowed to call the API.
	HTTPCorsDomainFlag = &cli.StringFlag{
		Name:  "http-corsdomain",
		Usage: "Comma separated list of domains from which to accept cross origin requests",
		Value: "http://localhost:4200,http://127.0.0.1:4200",
	}
	// WriteRateLimitFlag is the sustained rate of write requests per caller.
	WriteRateLimitFlag = &cli.Float64Flag{
		Name:  "write-rate-limit",
		Usage: "Write requests per second accepted from one caller once the burst is spent. 0 disables rate limiting.",
		Value: 20,
	}
	// WriteBurstLimitFlag is the number of write requests a caller may send at once.
	WriteBurstLimitFlag = &cli.IntFlag{
		Name:  "write-burst-limit",
		Usage: "Write requests accepted from one caller in a burst",
		Value: 100,
	}
	// MonitoringPortFlag defines the http port used to serve prometheus metrics.
	MonitoringPortFlag = &cli.IntFlag{
		Name:  "monitoring-port",
		Usage: "Port used to listening and respond metrics for prometheus.",
		Value: 8080,
	}
	// MQTTBrokerFlag enables ingestion of signed updates from an MQTT broker.
	MQTTBrokerFlag = &cli.StringFlag{
		Name:  "mqtt-broker",
		Usage: "MQTT broker to ingest signed updates from, e.g. tcp://127.0.0.1:1883. Ingestion is disabled when empty.",
	}
	// MQTTClientIDFlag is the client id presented to the broker.
	MQTTClientIDFlag = &cli.StringFlag{
		Name:  "mqtt-client-id",
		Usage: "Client id presented to the MQTT broker",
		Value: "dapi-server",
	}
	// MQTTTopicPrefixFlag prefixes the ingestion topics.
	MQTTTopicPrefixFlag = &cli.StringFlag{
		Name:  "mqtt-topic-prefix",
		Usage: "Prefix of the <prefix>/beacons/+/signed and <prefix>/dapis/signed topics",
		Value: "dapi",
	}
	// MQTTQoSFlag is the quality of service of the ingestion subscriptions.
	MQTTQoSFlag = &cli.IntFlag{
		Name:  "mqtt-qos",
		Usage: "MQTT quality of service level of the subscriptions (0, 1 or 2)",
		Value: 1,
	}
	// BackupIntervalFlag schedules periodic database backups.
	BackupIntervalFlag = &cli.DurationFlag{
		Name:  "backup-interval",
		Usage: "Interval between periodic database backups. 0 disables periodic backups.",
	}
	// DatapointCacheSizeFlag overrides the number of datapoints cached in memory.
	DatapointCacheSizeFlag = &cli.IntFlag{
		Name:  "datapoint-cache-size",
		Usage: "Number of decoded datapoints kept in memory. Defaults to the config value.",
	}
)
