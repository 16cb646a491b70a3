package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ingest_messages_total",
	Help: "MQTT messages processed, by topic kind and outcome.",
}, []string{"topic", "result"})
