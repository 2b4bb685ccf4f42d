package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comalice/calcx"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"omitempty,lowercase"`
	// Addr is where the REPL serves /metrics, e.g. ":9090". Empty disables serving.
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Metrics counts calculator activity. It implements calcx.Observer.
// A disabled instance accepts observations and records nothing.
type Metrics struct {
	actions     *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	errors      prometheus.Counter

	registry *prometheus.Registry
	last     calcx.Snapshot
	lastOp   calcx.Operator
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{}, nil
	}

	ns := cfg.Namespace
	if ns == "" {
		ns = "calcx"
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "actions_total",
				Help:      "Actions dispatched to the engine, by kind",
			},
			[]string{"kind"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "evaluations_total",
				Help:      "Binary operations evaluated, by operator",
			},
			[]string{"operator"},
		),
		errors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "errors_total",
				Help:      "Times the engine entered the error state",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.actions, m.evaluations, m.errors} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Enabled() bool {
	return m.registry != nil
}

// Observe records one dispatched action. Evaluations are inferred from the
// change between consecutive snapshots: equals leaving operand mode, or an
// operator chosen while typing the second operand.
func (m *Metrics) Observe(a calcx.Action, snap calcx.Snapshot) {
	if !m.Enabled() {
		return
	}
	m.actions.WithLabelValues(a.Kind.String()).Inc()

	prev := m.last
	if prev.Mode == calcx.ModeOperand {
		evaluated := (a.Kind == calcx.KindEquals || a.Kind == calcx.KindOperator) &&
			snap.Mode != calcx.ModeOperand
		if evaluated {
			m.evaluations.WithLabelValues(m.lastOp.ASCII()).Inc()
		}
	}
	if snap.Failed() && !prev.Failed() {
		m.errors.Inc()
	}

	switch {
	case a.Kind == calcx.KindOperator && !snap.Failed():
		m.lastOp = a.Operator
	case snap.Mode == calcx.ModeEntering || snap.Failed():
		m.lastOp = calcx.OpNone
	}
	m.last = snap
}

// Registry exposes the underlying registry, nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ActionsCounter returns the action counter for one kind label. On a
// disabled instance the counter is detached from any registry.
func (m *Metrics) ActionsCounter(kind string) prometheus.Counter {
	if !m.Enabled() {
		return detachedCounter()
	}
	return m.actions.WithLabelValues(kind)
}

// EvaluationsCounter returns the evaluation counter for one operator label.
func (m *Metrics) EvaluationsCounter(op string) prometheus.Counter {
	if !m.Enabled() {
		return detachedCounter()
	}
	return m.evaluations.WithLabelValues(op)
}

func (m *Metrics) ErrorsCounter() prometheus.Counter {
	if !m.Enabled() {
		return detachedCounter()
	}
	return m.errors
}

func detachedCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "discarded_total"})
}
