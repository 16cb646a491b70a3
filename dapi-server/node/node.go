// Package node is the main service which launches a dAPI server and manages
// the lifecycle of all its associated services at runtime, such as the HTTP
// API, MQTT ingestion and prometheus monitoring.
package node

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/oraclelabs/dapi-server/async"
	"github.com/oraclelabs/dapi-server/cmd"
	"github.com/oraclelabs/dapi-server/cmd/dapi-server/flags"
	"github.com/oraclelabs/dapi-server/dapi-server/dapi"
	"github.com/oraclelabs/dapi-server/dapi-server/db"
	"github.com/oraclelabs/dapi-server/dapi-server/db/kv"
	"github.com/oraclelabs/dapi-server/dapi-server/ingest"
	"github.com/oraclelabs/dapi-server/dapi-server/rpc"
	"github.com/oraclelabs/dapi-server/monitoring/backup"
	"github.com/oraclelabs/dapi-server/monitoring/prometheus"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/runtime"
	"github.com/oraclelabs/dapi-server/runtime/version"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// DapiNode defines a struct that handles the services running a dAPI server.
// It handles the lifecycle of the entire system and registers services to a
// service registry.
type DapiNode struct {
	cliCtx   *cli.Context
	ctx      context.Context
	cancel   context.CancelFunc
	lock     sync.RWMutex
	services *runtime.ServiceRegistry
	stop     chan struct{} // Channel to wait for termination notifications.
	db       db.Database
	server   *dapi.Server
}

// New creates a new node instance, sets up configuration options, and registers
// every required service to the node.
func New(cliCtx *cli.Context) (*DapiNode, error) {
	if err := tracing.Setup(
		"dapi-server", // Service name.
		cliCtx.String(cmd.TracingProcessNameFlag.Name),
		cliCtx.String(cmd.TracingEndpointFlag.Name),
		cliCtx.Float64(cmd.TraceSampleFractionFlag.Name),
		cliCtx.Bool(cmd.EnableTracingFlag.Name),
	); err != nil {
		return nil, err
	}
	if err := cmd.ConfigureDapiServer(cliCtx); err != nil {
		return nil, err
	}
	manager, err := managerPrincipal(cliCtx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cliCtx.Context)
	n := &DapiNode{
		cliCtx:   cliCtx,
		ctx:      ctx,
		cancel:   cancel,
		services: runtime.NewServiceRegistry(),
		stop:     make(chan struct{}),
	}

	if err := n.startDB(cliCtx); err != nil {
		cancel()
		return nil, err
	}
	n.server, err = dapi.NewServer(&dapi.Config{
		Database: n.db,
		Manager:  manager,
	})
	if err != nil {
		n.closeDB()
		cancel()
		return nil, errors.Wrap(err, "could not create dAPI server")
	}

	if err := n.registerServices(cliCtx); err != nil {
		n.closeDB()
		cancel()
		return nil, err
	}
	return n, nil
}

func (n *DapiNode) registerServices(cliCtx *cli.Context) error {
	if err := n.registerRPCService(cliCtx); err != nil {
		return err
	}
	if cliCtx.String(flags.MQTTBrokerFlag.Name) != "" {
		if err := n.registerIngestService(cliCtx); err != nil {
			return err
		}
	}
	if !cliCtx.Bool(cmd.DisableMonitoringFlag.Name) {
		if err := n.registerPrometheusService(cliCtx); err != nil {
			return err
		}
	}
	return nil
}

// Start the node and kicks off every registered service.
func (n *DapiNode) Start() {
	n.lock.Lock()

	log.WithFields(logrus.Fields{
		"version": version.Version(),
		"manager": n.cliCtx.String(flags.ManagerFlag.Name),
	}).Info("Starting dAPI server")

	n.services.StartAll()
	n.scheduleBackups(n.cliCtx)

	stop := n.stop
	n.lock.Unlock()

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		<-sigc
		log.Info("Got interrupt, shutting down...")
		go n.Close()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.WithField("times", i-1).Info("Already shutting down, interrupt more to panic")
			}
		}
		panic("Panic closing the dAPI server")
	}()

	// Wait for stop channel to be closed.
	<-stop
}

// Close handles graceful shutdown of the system.
func (n *DapiNode) Close() {
	n.lock.Lock()
	defer n.lock.Unlock()

	log.Info("Stopping dAPI server")
	n.services.StopAll()
	n.cancel()
	n.closeDB()
	close(n.stop)
}

func (n *DapiNode) closeDB() {
	if err := n.db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}

func (n *DapiNode) startDB(cliCtx *cli.Context) error {
	dbPath := cliCtx.String(cmd.DataDirFlag.Name)
	clearDB := cliCtx.Bool(cmd.ClearDB.Name)
	forceClearDB := cliCtx.Bool(cmd.ForceClearDB.Name)
	kvConfig := &kv.Config{
		InitialMMapSize:    cliCtx.Int(cmd.BoltMMapInitialSizeFlag.Name),
		DatapointCacheSize: cliCtx.Int(flags.DatapointCacheSizeFlag.Name),
	}

	log.WithField("databasePath", dbPath).Info("Checking DB")

	d, err := db.NewDB(n.ctx, dbPath, kvConfig)
	if err != nil {
		return errors.Wrap(err, "could not open database")
	}
	clearDBConfirmed := false
	if clearDB && !forceClearDB {
		actionText := "This will delete your dAPI server database stored in your data directory. " +
			"Your database backups will not be removed - do you want to proceed? (Y/N)"
		deniedText := "Database will not be deleted. No changes have been made."
		clearDBConfirmed, err = cmd.ConfirmAction(actionText, deniedText)
		if err != nil {
			return err
		}
	}
	if clearDBConfirmed || forceClearDB {
		log.Warning("Removing database")
		if err := d.Close(); err != nil {
			return errors.Wrap(err, "could not close db prior to clearing")
		}
		if err := d.ClearDB(); err != nil {
			return errors.Wrap(err, "could not clear database")
		}
		d, err = db.NewDB(n.ctx, dbPath, kvConfig)
		if err != nil {
			return errors.Wrap(err, "could not create new database")
		}
	}

	n.db = d
	return nil
}

func (n *DapiNode) registerRPCService(cliCtx *cli.Context) error {
	var origins []string
	for _, o := range strings.Split(cliCtx.String(flags.HTTPCorsDomainFlag.Name), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	svc, err := rpc.NewService(n.ctx, &rpc.Config{
		Host:           cliCtx.String(flags.HTTPHostFlag.Name),
		Port:           cliCtx.Int(flags.HTTPPortFlag.Name),
		AllowedOrigins: origins,
		Timeout:        cliCtx.Duration(flags.HTTPTimeoutFlag.Name),
		WriteRate:      cliCtx.Float64(flags.WriteRateLimitFlag.Name),
		WriteBurst:     int64(cliCtx.Int(flags.WriteBurstLimitFlag.Name)),
		Server:         n.server,
	})
	if err != nil {
		return errors.Wrap(err, "could not create HTTP API")
	}
	return n.services.RegisterService(svc)
}

func (n *DapiNode) registerIngestService(cliCtx *cli.Context) error {
	qos := cliCtx.Int(flags.MQTTQoSFlag.Name)
	if qos < 0 || qos > 2 {
		return fmt.Errorf("invalid --%s %d", flags.MQTTQoSFlag.Name, qos)
	}
	svc, err := ingest.NewService(n.ctx, &ingest.Config{
		Broker:      cliCtx.String(flags.MQTTBrokerFlag.Name),
		ClientID:    cliCtx.String(flags.MQTTClientIDFlag.Name),
		TopicPrefix: cliCtx.String(flags.MQTTTopicPrefixFlag.Name),
		QoS:         byte(qos),
		Submitter:   n.server,
	})
	if err != nil {
		return errors.Wrap(err, "could not create MQTT ingestion")
	}
	return n.services.RegisterService(svc)
}

func (n *DapiNode) registerPrometheusService(cliCtx *cli.Context) error {
	var additionalHandlers []prometheus.Handler
	if cliCtx.Bool(cmd.EnableBackupWebhookFlag.Name) {
		additionalHandlers = append(
			additionalHandlers,
			prometheus.Handler{
				Path:    "/db/backup",
				Handler: backup.Handler(n.db, cliCtx.String(cmd.BackupWebhookOutputDir.Name)),
			},
		)
	}
	logrus.AddHook(prometheus.NewLogrusCollector())
	service := prometheus.NewService(
		fmt.Sprintf("%s:%d", cliCtx.String(cmd.MonitoringHostFlag.Name), cliCtx.Int(flags.MonitoringPortFlag.Name)),
		n.services,
		additionalHandlers...,
	)
	return n.services.RegisterService(service)
}

func (n *DapiNode) scheduleBackups(cliCtx *cli.Context) {
	interval := cliCtx.Duration(flags.BackupIntervalFlag.Name)
	if interval <= 0 {
		return
	}
	outputDir := cliCtx.String(cmd.BackupWebhookOutputDir.Name)
	log.WithField("interval", interval).Info("Scheduling periodic database backups")
	async.RunEvery(n.ctx, interval, func() {
		if err := n.db.Backup(n.ctx, outputDir, false); err != nil {
			log.WithError(err).Error("Periodic database backup failed")
		}
		if err := n.services.Healthy(); err != nil {
			log.WithError(err).Warn("Service health check failed")
		}
	})
}

func managerPrincipal(cliCtx *cli.Context) ([32]byte, error) {
	raw := cliCtx.String(flags.ManagerFlag.Name)
	if raw == "" {
		return [32]byte{}, fmt.Errorf("--%s is required", flags.ManagerFlag.Name)
	}
	manager, err := primitives.PrincipalFromString(raw)
	if err != nil {
		return [32]byte{}, errors.Wrapf(err, "invalid --%s", flags.ManagerFlag.Name)
	}
	return manager, nil
}

// Database returns the database of the node.
func (n *DapiNode) Database() db.Database {
	return n.db
}

// Server returns the dAPI server of the node.
func (n *DapiNode) Server() *dapi.Server {
	return n.server
}
