package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recordstore",
		Subsystem: "host",
		Name:      "invocations_total",
		Help:      "Total host invocations",
	}, []string{"method", "status"})

	InvocationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "recordstore",
		Subsystem: "host",
		Name:      "invocation_duration_seconds",
		Help:      "Host invocation duration, persistence included",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	}, []string{"method"})

	Initialized = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "recordstore",
		Subsystem: "host",
		Name:      "initialized",
		Help:      "Whether the store has been initialized (1=yes, 0=no)",
	})

	RecordsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "recordstore",
		Subsystem: "store",
		Name:      "records_total",
		Help:      "Records currently stored",
	})

	NextID = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "recordstore",
		Subsystem: "store",
		Name:      "next_id",
		Help:      "Identifier the next created record will receive",
	})

	WALWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recordstore",
		Subsystem: "wal",
		Name:      "writes_total",
		Help:      "Total WAL writes",
	})

	WALWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "recordstore",
		Subsystem: "wal",
		Name:      "write_duration_seconds",
		Help:      "WAL write duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})

	SnapshotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recordstore",
		Subsystem: "wal",
		Name:      "snapshots_total",
		Help:      "Total state snapshots written",
	})

	SnapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "recordstore",
		Subsystem: "wal",
		Name:      "snapshot_size_bytes",
		Help:      "Size of last snapshot in bytes",
	})

	SnapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "recordstore",
		Subsystem: "wal",
		Name:      "snapshot_duration_seconds",
		Help:      "Time to write a snapshot",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15),
	})

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recordstore",
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total gRPC requests",
	}, []string{"service", "method", "code"})

	GRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "recordstore",
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "gRPC request duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"service", "method"})
)
