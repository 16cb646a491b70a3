// Package kv defines a bolt-db, key-value store implementation
// of the Database interface defined by a dAPI server.
package kv

import (
	"context"
	"os"
	"path"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	prombolt "github.com/prysmaticlabs/prombbolt"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

var _ iface.Database = (*Store)(nil)

// Store defines an implementation of the dAPI server Database interface
// using BoltDB as the underlying persistent kv-store.
type Store struct {
	db             *bolt.DB
	databasePath   string
	datapointCache *lru.Cache
	collector      prometheus.Collector
	// cacheLock orders read-through cache fills against commits. lastWriteTx
	// is the id of the latest committed transaction that wrote datapoints.
	cacheLock   sync.Mutex
	lastWriteTx int
}

// Config for the bolt db kv store.
type Config struct {
	InitialMMapSize int
	// DatapointCacheSize overrides the configured cache size when positive.
	DatapointCacheSize int
}

// NewKVStore initializes a new boltDB key-value store at the directory
// path specified, creates the kv-buckets based on the schema, and stores
// an open connection db object as a property of the Store struct.
func NewKVStore(ctx context.Context, dirPath string, config *Config) (*Store, error) {
	if config == nil {
		config = &Config{}
	}
	cfg := params.DapiConfig()
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return nil, err
	}
	datafile := path.Join(dirPath, cfg.DatabaseFileName)
	boltDB, err := bolt.Open(
		datafile,
		0600,
		&bolt.Options{
			Timeout:         cfg.BoltTimeout,
			InitialMmapSize: config.InitialMMapSize,
		},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}

	kv := &Store{
		db:           boltDB,
		databasePath: dirPath,
	}
	cacheSize := cfg.DatapointCacheSize
	if config.DatapointCacheSize > 0 {
		cacheSize = config.DatapointCacheSize
	}
	if cacheSize > 0 {
		kv.datapointCache, err = lru.New(cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "could not create datapoint cache")
		}
	}

	if err := kv.db.Update(func(tx *bolt.Tx) error {
		return createBuckets(
			tx,
			datapointsBucket,
			namesBucket,
			rolesBucket,
			whitelistBucket,
			whitelistSettersBucket,
		)
	}); err != nil {
		return nil, err
	}

	kv.collector = prombolt.New("boltDB", boltDB, datapointsBucket, whitelistBucket)
	if err := prometheus.Register(kv.collector); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			return nil, errors.Wrap(err, "could not register bolt collector")
		}
		kv.collector = nil
	}
	log.WithField("path", datafile).Debug("Opened database")
	return kv, nil
}

// View runs fn inside a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(tx iface.ReadOnlyTx) error) error {
	_, span := trace.StartSpan(ctx, "DapiDB.View")
	defer span.End()
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&transaction{tx: tx, store: s})
	})
}

// Update runs fn inside a read-write transaction. Datapoints written by fn
// enter the read cache only after the transaction commits.
func (s *Store) Update(ctx context.Context, fn func(tx iface.Tx) error) error {
	_, span := trace.StartSpan(ctx, "DapiDB.Update")
	defer span.End()
	var (
		written map[[32]byte]*primitives.Datapoint
		txID    int
	)
	if err := s.db.Update(func(tx *bolt.Tx) error {
		t := &transaction{tx: tx, store: s, writable: true}
		if err := fn(t); err != nil {
			return err
		}
		written = t.written
		txID = tx.ID()
		return nil
	}); err != nil {
		return err
	}
	if s.datapointCache != nil && len(written) > 0 {
		s.cacheLock.Lock()
		s.lastWriteTx = txID
		for id, dp := range written {
			s.datapointCache.Add(id, dp)
		}
		s.cacheLock.Unlock()
	}
	return nil
}

// cacheDatapoint fills the cache from a read-only transaction. Snapshots
// older than the last datapoint commit may hold values that commit replaced,
// so they never fill the cache.
func (s *Store) cacheDatapoint(snapshotTx int, id [32]byte, dp *primitives.Datapoint) {
	s.cacheLock.Lock()
	defer s.cacheLock.Unlock()
	if snapshotTx < s.lastWriteTx {
		return
	}
	s.datapointCache.ContainsOrAdd(id, dp)
}

// ClearDB removes the previously stored database in the data directory.
func (s *Store) ClearDB() error {
	if s.datapointCache != nil {
		s.datapointCache.Purge()
	}
	datafile := path.Join(s.databasePath, params.DapiConfig().DatabaseFileName)
	if _, err := os.Stat(datafile); os.IsNotExist(err) {
		return nil
	}
	s.unregisterCollector()
	return os.Remove(datafile)
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	s.unregisterCollector()
	return s.db.Close()
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

// Size returns the db size in bytes.
func (s *Store) Size() (int64, error) {
	var size int64
	err := s.db.View(func(tx *bolt.Tx) error {
		size = tx.Size()
		return nil
	})
	return size, err
}

func (s *Store) unregisterCollector() {
	if s.collector != nil {
		prometheus.Unregister(s.collector)
		s.collector = nil
	}
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return err
		}
	}
	return nil
}
