package chat

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_connected_clients",
		Help: "Number of members currently held by the registry",
	})

	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Total events processed by type",
	}, []string{"type"})

	EventProcessingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_event_processing_seconds",
		Help:    "Time spent inside the registry critical section per event type",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})

	WriteFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_write_failures_total",
		Help: "Broadcast writes that failed and marked the recipient inactive",
	})

	InvariantViolationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_invariant_violations_total",
		Help: "Duplicate session inserts and removals of unknown sessions",
	})
)

func init() {
	prometheus.MustRegister(ConnectedClients)
	prometheus.MustRegister(MessagesTotal)
	prometheus.MustRegister(EventProcessingDuration)
	prometheus.MustRegister(WriteFailuresTotal)
	prometheus.MustRegister(InvariantViolationsTotal)
}
