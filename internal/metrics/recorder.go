package metrics

import "time"

// DecisionLabel enumerates build gate decisions.
type DecisionLabel string

const (
	DecisionSkip     DecisionLabel = "skip"
	DecisionProceed  DecisionLabel = "proceed"
	DecisionDisabled DecisionLabel = "disabled"
)

// OutcomeLabel enumerates the final status of a command.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeSkipped OutcomeLabel = "skipped"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder is the minimal interface used by the gate and the dispatcher.
type Recorder interface {
	IncGateDecision(decision DecisionLabel)
	ObserveFingerprintDuration(d time.Duration)
	ObserveRunDuration(command string, d time.Duration)
	IncRunOutcome(command string, outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncGateDecision(DecisionLabel)            {}
func (NoopRecorder) ObserveFingerprintDuration(time.Duration) {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string, OutcomeLabel)       {}
