package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once                sync.Once
	gateDecisions       *prom.CounterVec
	fingerprintDuration prom.Histogram
	runDuration         *prom.HistogramVec
	runOutcomes         *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.gateDecisions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "spabuild",
			Name:      "gate_decisions_total",
			Help:      "Build gate decisions by outcome",
		}, []string{"decision"})
		pr.fingerprintDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "spabuild",
			Name:      "fingerprint_duration_seconds",
			Help:      "Time spent fingerprinting the output directory",
			Buckets:   prom.DefBuckets,
		})
		pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "spabuild",
			Name:      "run_duration_seconds",
			Help:      "Duration of a dispatched command",
			Buckets:   prom.DefBuckets,
		}, []string{"command"})
		pr.runOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "spabuild",
			Name:      "run_outcomes_total",
			Help:      "Dispatched commands by final status",
		}, []string{"command", "outcome"})
		reg.MustRegister(pr.gateDecisions, pr.fingerprintDuration, pr.runDuration, pr.runOutcomes)
	})
	return pr
}

func (p *PrometheusRecorder) IncGateDecision(decision DecisionLabel) {
	if p == nil || p.gateDecisions == nil {
		return
	}
	p.gateDecisions.WithLabelValues(string(decision)).Inc()
}

func (p *PrometheusRecorder) ObserveFingerprintDuration(d time.Duration) {
	if p == nil || p.fingerprintDuration == nil {
		return
	}
	p.fingerprintDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(command string, outcome OutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(command, string(outcome)).Inc()
}

// WriteTextfile writes every metric in g to path in the text exposition
// format, replacing the file atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
