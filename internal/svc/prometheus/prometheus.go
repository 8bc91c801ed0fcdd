package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirokodev/presence-relay/internal/instance"
)

type Options struct {
	Labels prometheus.Labels
}

func New(o Options) instance.Prometheus {
	return &Instance{
		relayedUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "presence_relay_updates_total",
			Help:        "Number of presence updates pushed through the relay",
			ConstLabels: o.Labels,
		}),
		servedPulls: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "presence_relay_pulls_total",
			Help:        "Number of getPresence requests served with a snapshot",
			ConstLabels: o.Labels,
		}),
		relayErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "presence_relay_errors_total",
			Help:        "Number of error events emitted to consumers",
			ConstLabels: o.Labels,
		}),
		activeConsumers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "presence_relay_active_consumers",
			Help:        "Number of currently connected downstream consumers",
			ConstLabels: o.Labels,
		}),
	}
}

type Instance struct {
	relayedUpdates  prometheus.Counter
	servedPulls     prometheus.Counter
	relayErrors     prometheus.Counter
	activeConsumers prometheus.Gauge
}

func (m *Instance) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.relayedUpdates,
		m.servedPulls,
		m.relayErrors,
		m.activeConsumers,
	)
}

func (m *Instance) RelayedUpdates() prometheus.Counter {
	return m.relayedUpdates
}

func (m *Instance) ServedPulls() prometheus.Counter {
	return m.servedPulls
}

func (m *Instance) RelayErrors() prometheus.Counter {
	return m.relayErrors
}

func (m *Instance) ActiveConsumers() prometheus.Gauge {
	return m.activeConsumers
}
