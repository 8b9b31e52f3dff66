package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AggregatorCalls The total number of successful aggregator calls (counter)
	AggregatorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "aggregator_calls_total",
			Help:      "The total number of successful aggregator calls",
		},
		[]string{"endpoint"},
	)

	// AggregatorCallsFailed total number of failed aggregator calls (counter)
	AggregatorCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "aggregator_calls_failed_total",
			Help:      "The total number of failed aggregator calls",
		},
		[]string{"endpoint"},
	)

	// AggregatorCallDuration aggregator call latency (histogram)
	AggregatorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "flights",
			Name:      "aggregator_call_duration_seconds",
			Help:      "Aggregator call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// SearchesTotal number of search batches produced
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "searches_total",
			Help:      "The total number of search batches produced",
		},
	)

	// ConfirmationsPartial confirmations that succeeded without fare rules
	ConfirmationsPartial = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "confirmations_partial_total",
			Help:      "Confirmations that succeeded with fare rules unavailable",
		},
	)

	// TicketsIssued tickets issued, by supplier family path
	TicketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "tickets_issued_total",
			Help:      "Tickets issued, by supplier family path",
		},
		[]string{"family"},
	)

	// TicketsFailed ticket attempts that failed, by supplier family path
	TicketsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flights",
			Name:      "tickets_failed_total",
			Help:      "Ticket attempts that failed, by supplier family path",
		},
		[]string{"family"},
	)

	// MessagesProcessed The total number of processed messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed total number of message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration message handling latency (histogram)
	MessagesProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "messages",
			Name:      "processing_duration_seconds",
			Help:      "Message handling latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic", "handler"},
	)
)
