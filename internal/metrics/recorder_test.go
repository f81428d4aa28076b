package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncGateDecision(DecisionDisabled)
	r.ObserveFingerprintDuration(time.Second)
	r.ObserveRunDuration("serve", time.Second)
	r.IncRunOutcome("serve", OutcomeFailed)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.IncGateDecision(DecisionSkip)
	p.ObserveRunDuration("build", time.Millisecond)
}
