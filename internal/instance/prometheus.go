package instance

import "github.com/prometheus/client_golang/prometheus"

type Prometheus interface {
	Register(r prometheus.Registerer)

	RelayedUpdates() prometheus.Counter
	ServedPulls() prometheus.Counter
	RelayErrors() prometheus.Counter
	ActiveConsumers() prometheus.Gauge
}
