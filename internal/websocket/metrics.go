package websocket

import "github.com/prometheus/client_golang/prometheus"

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "callcenter_ws_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	wsEventsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "callcenter_ws_events_delivered_total",
			Help: "Total sync events delivered to websocket clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(wsConnections, wsEventsDelivered)
}

func incConnections() {
	wsConnections.Inc()
}

func decConnections() {
	wsConnections.Dec()
}

func addDelivered(count int) {
	wsEventsDelivered.Add(float64(count))
}
