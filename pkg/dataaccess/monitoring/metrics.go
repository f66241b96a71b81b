package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreLatency is the duration of store calls.
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_store_latency",
			Help: "Duration of store calls",
		},
		[]string{"backend", "op", "namespace"},
	)

	// StoreTotalRequests is the total number of store calls.
	StoreTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_store_total_requests",
			Help: "Total number of store calls",
		},
		[]string{"backend", "op", "namespace"},
	)

	// IntegrityRepairs is the number of stored records that were repaired on read.
	IntegrityRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_integrity_repairs_total",
			Help: "Total number of records repaired on read",
		},
		[]string{"namespace"},
	)

	// CorruptRecords is the number of stored records that could not be decoded.
	CorruptRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_corrupt_records_total",
			Help: "Total number of records that could not be decoded",
		},
		[]string{"namespace"},
	)
)
