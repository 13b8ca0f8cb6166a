package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the application. Each instance
// owns its registry so tests can build as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	RecordWrites *prometheus.CounterVec
	Logins       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reseller_record_writes_total",
			Help: "Business record writes by entity and action",
		}, []string{"entity", "action"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reseller_logins_total",
			Help: "Admin login attempts by outcome",
		}, []string{"outcome"}),
	}
}

// RecordWrite counts one create/update/delete. Safe on a nil receiver.
func (m *Metrics) RecordWrite(entity, action string) {
	if m == nil {
		return
	}
	m.RecordWrites.WithLabelValues(entity, action).Inc()
}

func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
