package gate

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/engine"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/fingerprint"
	"git.home.luguber.info/inful/spabuild/internal/fsutil"
	"git.home.luguber.info/inful/spabuild/internal/logfields"
	"git.home.luguber.info/inful/spabuild/internal/metrics"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

// FlagName is the argument holding the tri-state hash-check flag.
const FlagName = "srchash"

// State is a step of the gate's state machine.
type State string

const (
	StateIdle           State = "idle"
	StateConfigResolved State = "config_resolved"
	StateFingerprinted  State = "fingerprinted"
	StateSkip           State = "skip"
	StateProceed        State = "proceed"
	StateDone           State = "done"
)

// Decision is the result of Check.
type Decision struct {
	// State is the last state reached.
	State State
	// Trail lists every state visited, in order.
	Trail []State
	// Disabled is true when the gate did not engage.
	Disabled bool
	// Skip is true when the build must not run.
	Skip bool

	OutputPath string
	Old        string
	New        string
}

func (d *Decision) enter(s State) {
	d.State = s
	d.Trail = append(d.Trail, s)
}

// Label returns the metrics label for the decision.
func (d Decision) Label() metrics.DecisionLabel {
	switch {
	case d.Disabled:
		return metrics.DecisionDisabled
	case d.Skip:
		return metrics.DecisionSkip
	default:
		return metrics.DecisionProceed
	}
}

// Gate is the build-skip cache.
type Gate struct {
	fs       billy.Filesystem
	fp       *fingerprint.Fingerprinter
	store    fingerprint.Store
	recorder metrics.Recorder
	logger   *slog.Logger
}

// New creates a gate.
func New(fs billy.Filesystem, fp *fingerprint.Fingerprinter, store fingerprint.Store) *Gate {
	return &Gate{
		fs:       fs,
		fp:       fp,
		store:    store,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (g *Gate) WithRecorder(r metrics.Recorder) *Gate {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithLogger sets a custom logger.
func (g *Gate) WithLogger(logger *slog.Logger) *Gate {
	g.logger = logger
	return g
}

// Enabled reports whether the hash-check flag was given for a build.
func Enabled(command string, a args.Arguments) bool {
	_, ok := a.Flag(FlagName)
	return command == "build" && ok
}

// Check runs the state machine. When the gate engages it sets clean=false
// in a, since from then on the gate owns clearing the output directory.
// On proceed the output directory has been emptied and the new fingerprint
// stored; on skip nothing was touched.
func (g *Gate) Check(ctx context.Context, pctx project.Context, svc engine.Service, mode string, a args.Arguments) (Decision, error) {
	var d Decision
	d.enter(StateIdle)

	skipWhenEqual, ok := a.Flag(FlagName)
	if !ok {
		d.Disabled = true
		g.recorder.IncGateDecision(d.Label())
		return d, nil
	}

	resolved, err := svc.Init(ctx, mode)
	if err != nil {
		return d, err
	}
	d.enter(StateConfigResolved)

	if resolved.OutputPath == "" {
		g.logger.Debug("No output path configured, hash check bypassed", logfields.Mode(mode))
		d.Disabled = true
		g.recorder.IncGateDecision(d.Label())
		return d, nil
	}
	out := filepath.Clean(resolved.OutputPath)
	if err := pctx.CheckOutputDir(out); err != nil {
		return d, err
	}
	d.OutputPath = out

	a.Set("clean", false)

	start := time.Now()
	d.New, err = g.fp.Compute(out)
	g.recorder.ObserveFingerprintDuration(time.Since(start))
	if err != nil {
		return d, errors.FileSystemError("fingerprint", out, err)
	}

	indexExists, err := fsutil.PathExists(g.fs, filepath.Join(out, resolved.IndexPath))
	if err != nil {
		return d, errors.FileSystemError("stat", out, err)
	}
	if indexExists {
		if d.Old, err = g.store.Read(out); err != nil {
			return d, errors.FileSystemError("read", g.store.Path(out), err)
		}
	}
	d.enter(StateFingerprinted)

	g.logger.Debug("Fingerprinted output directory",
		logfields.OutputDir(out),
		logfields.Fingerprint(d.New),
		slog.String("previous", d.Old),
		slog.Bool("index_exists", indexExists))

	if d.Old == d.New && skipWhenEqual {
		d.Skip = true
		d.enter(StateSkip)
		g.logger.Info("Output is up to date", logfields.OutputDir(out), logfields.Decision(string(d.Label())))
		g.recorder.IncGateDecision(d.Label())
		return d, nil
	}

	d.enter(StateProceed)
	if err := fsutil.EmptyDir(g.fs, out); err != nil {
		return d, errors.FileSystemError("empty", out, err)
	}
	if err := g.store.Write(out, d.New); err != nil {
		return d, errors.FileSystemError("write", g.store.Path(out), err)
	}
	d.enter(StateDone)

	g.logger.Info("Output is stale, rebuilding", logfields.OutputDir(out), logfields.Decision(string(d.Label())))
	g.recorder.IncGateDecision(d.Label())
	return d, nil
}

// Commit refreshes the stored fingerprint after a successful build so the
// next check compares against what the build produced.
func (g *Gate) Commit(d Decision) error {
	if d.Disabled || d.Skip || d.OutputPath == "" {
		return nil
	}
	fp, err := g.fp.Compute(d.OutputPath)
	if err != nil {
		return errors.FileSystemError("fingerprint", d.OutputPath, err)
	}
	if err := g.store.Write(d.OutputPath, fp); err != nil {
		return errors.FileSystemError("write", g.store.Path(d.OutputPath), err)
	}
	g.logger.Debug("Recorded output fingerprint", logfields.OutputDir(d.OutputPath), logfields.Fingerprint(fp))
	return nil
}
