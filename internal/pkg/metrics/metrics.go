// Package metrics exposes Prometheus instruments for the order lifecycle.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"orders/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orders"

// Command outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Transition kinds.
const (
	KindStatus  = "status"
	KindPayment = "payment"
)

// OrderMetrics groups the lifecycle instruments. A nil *OrderMetrics records nothing,
// which keeps handlers usable without a registry.
type OrderMetrics struct {
	Commands    *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	DurationMS  *prometheus.HistogramVec
}

// NewOrderMetrics creates the instruments and registers them on reg.
// It panics if they are already registered there.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Order commands handled, by outcome.",
	}, []string{"command", "outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Committed status and payment status transitions.",
	}, []string{"kind", "from", "to"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_ms",
		Help:      "Order command latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"command"})

	reg.MustRegister(commands, transitions, duration)
	return &OrderMetrics{Commands: commands, Transitions: transitions, DurationMS: duration}
}

// ObserveCommand records one handled command. Rule violations and unknown orders
// count as rejected, any other error as error.
func (m *OrderMetrics) ObserveCommand(command string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, Outcome(err)).Inc()
	m.DurationMS.WithLabelValues(command).Observe(float64(time.Since(start).Milliseconds()))
}

// ObserveTransition records one committed transition.
func (m *OrderMetrics) ObserveTransition(kind, from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(kind, from, to).Inc()
}

// Outcome classifies a command result.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errs.IsRuleViolation(err), errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
