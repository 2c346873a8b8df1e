package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	WebSocketConnectionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	RoomsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_rooms_active",
			Help: "Rooms with at least one connection on this instance",
		},
	)

	EnvelopesRelayedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_envelopes_relayed_total",
			Help: "Envelopes forwarded from the bus to a WebSocket connection",
		},
	)

	EnvelopesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_envelopes_dropped_total",
			Help: "Malformed bus payloads skipped by the relay",
		},
	)
)
