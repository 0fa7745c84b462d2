// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubot_messages_processed_total",
			Help: "Total number of chat messages processed, by channel and route",
		},
		[]string{"channel", "route"},
	)

	MessageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubot_message_failures_total",
			Help: "Total number of degraded message-processing operations",
		},
		[]string{"channel", "error_code"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "edubot_message_duration_seconds",
			Help: "Duration of message processing in seconds",
		},
		[]string{"channel"},
	)

	DocumentsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubot_documents_analyzed_total",
			Help: "Total number of documents analyzed, by type and outcome",
		},
		[]string{"document_type", "outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubot_notifications_sent_total",
			Help: "Total number of completion notifications sent, by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubot_cache_requests_total",
			Help: "Application-record cache lookups, by result",
		},
		[]string{"result"},
	)
)
