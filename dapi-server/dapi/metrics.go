package dapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	beaconUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dapi_beacon_updates_total",
		Help: "Signed beacon updates processed, by outcome.",
	}, []string{"result"})
	dapiUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dapi_dapi_updates_total",
		Help: "dAPI aggregations processed, by outcome.",
	}, []string{"result"})
	reads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dapi_reads_total",
		Help: "Authorized datapoint reads, by outcome.",
	}, []string{"result"})
	aggregatedBeacons = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dapi_aggregated_beacons",
		Help:    "Number of beacons aggregated per dAPI update.",
		Buckets: prometheus.LinearBuckets(2, 2, 10),
	})
)

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return KindOf(err).String()
}
