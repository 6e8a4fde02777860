// Package monitoring exposes Prometheus metrics for the chat machine
// and the HTTP surface. Collectors register themselves on the default
// registry; the server serves them on /metrics.
package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatTurns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Inbound chat messages processed",
		},
	)

	flowsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_flows_completed_total",
			Help: "Terminated flows by kind and outcome",
		},
		[]string{"flow", "status"},
	)

	openSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_open_sessions",
			Help: "Sessions currently open in the registry",
		},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method and status code",
		},
		[]string{"method", "status"},
	)
)

// ChatTurn counts one inbound chat message.
func ChatTurn() {
	chatTurns.Inc()
}

// FlowCompleted counts a flow reaching a terminal, successful or not.
func FlowCompleted(flow, status string) {
	flowsCompleted.WithLabelValues(flow, status).Inc()
}

// OpenSessions records the current size of the session registry.
func OpenSessions(n int) {
	openSessions.Set(float64(n))
}

// HTTPRequest counts one served request.
func HTTPRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
