package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "partlog"

var (
	MessagesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "messages_total",
			Help:      "Total messages completed by the writer per result.",
		},
		[]string{"topic", "result"},
	)
	BatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "batch_messages",
			Help:      "Messages per put request.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"topic"},
	)
	SendRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "send_retries_total",
			Help:      "Total put request retries.",
		},
		[]string{"topic"},
	)
	BufferedBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "writer",
			Name:      "buffered_bytes",
			Help:      "Bytes buffered and in flight per topic/partition.",
		},
		[]string{"topic", "partition"},
	)
	MessagesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "messages_total",
			Help:      "Total messages delivered to processors per result.",
		},
		[]string{"topic", "result"},
	)
	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "fetch_errors_total",
			Help:      "Total failed fetch requests.",
		},
		[]string{"topic"},
	)
	CommittedOffset = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reader",
			Name:      "committed_offset",
			Help:      "Last committed offset per topic/partition.",
		},
		[]string{"topic", "partition"},
	)
	RebalancesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "rebalances_total",
			Help:      "Total assignment changes per group.",
		},
		[]string{"group"},
	)
	AssignedPartitions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "assigned_partitions",
			Help:      "Partitions owned by this member per group.",
		},
		[]string{"group"},
	)
)

func init() {
	prometheus.MustRegister(
		MessagesSentTotal,
		BatchSize,
		SendRetriesTotal,
		BufferedBytes,
		MessagesProcessedTotal,
		FetchErrorsTotal,
		CommittedOffset,
		RebalancesTotal,
		AssignedPartitions,
	)
}

func Partition(id int32) string {
	return strconv.FormatInt(int64(id), 10)
}
