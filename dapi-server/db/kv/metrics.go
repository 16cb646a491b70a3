package kv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datapointCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dapidb_datapoint_cache_hit",
		Help: "The number of datapoint reads served from the cache.",
	})
	datapointCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dapidb_datapoint_cache_miss",
		Help: "The number of datapoint reads that went to disk.",
	})
	backupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dapidb_backups_created_total",
		Help: "The number of database backups written.",
	})
)
