// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_store_operations_total",
		Help: "Total number of store write operations",
	}, []string{"operation"})

	storeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_store_operation_duration_seconds",
		Help:    "Duration of store write operations",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005},
	}, []string{"operation"})

	chatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_chat_replies_total",
		Help: "Total number of bot replies by matched intent",
	}, []string{"intent"})

	contactMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_contact_messages_total",
		Help: "Total number of accepted contact form submissions",
	})

	websocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_chat_websocket_connections",
		Help: "Number of open chat websocket connections",
	})
)

// ObserveHTTPRequest records one served request. route is the matched route
// pattern, not the raw path.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveStoreOperation records a store write that started at start.
func ObserveStoreOperation(operation string, start time.Time) {
	storeOperations.WithLabelValues(operation).Inc()
	storeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordChatReply counts a generated bot reply.
func RecordChatReply(intent string) {
	chatReplies.WithLabelValues(intent).Inc()
}

// RecordContactMessage counts an accepted contact submission.
func RecordContactMessage() {
	contactMessages.Inc()
}

// WebsocketOpened and WebsocketClosed track live websocket connections.
func WebsocketOpened() { websocketConnections.Inc() }

func WebsocketClosed() { websocketConnections.Dec() }

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
