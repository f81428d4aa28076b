package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/gookit/color"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/config"
	"git.home.luguber.info/inful/spabuild/internal/engine"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/fingerprint"
	"git.home.luguber.info/inful/spabuild/internal/fsutil"
	"git.home.luguber.info/inful/spabuild/internal/gate"
	"git.home.luguber.info/inful/spabuild/internal/logfields"
	"git.home.luguber.info/inful/spabuild/internal/metrics"
	"git.home.luguber.info/inful/spabuild/internal/plugin"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

// DisallowedOptions are flags that are silently switched off with a warning.
var DisallowedOptions = []string{"modern"}

// UpToDateMessage is printed when the gate skips a build.
const UpToDateMessage = "Compiled files are already up-to-date"

// ServiceFactory builds the engine service for one invocation.
type ServiceFactory func(pctx project.Context, plugins []plugin.Plugin, proj *config.Project) engine.Service

// Request is one CLI invocation.
type Request struct {
	// Root is the project directory. Empty means the working directory.
	Root    string
	Command string
	// Entry is the explicit entry file, if any.
	Entry string
	Args  args.Arguments
	// RawArgs is the unparsed argument vector, handed to the engine as-is.
	RawArgs []string
	// Project overrides loading the configuration file from Root.
	Project *config.Project
}

// Outcome summarises a finished invocation.
type Outcome struct {
	RunID    string
	Command  string
	Mode     string
	Entry    string
	Skipped  bool
	Decision gate.Decision
	Rejected []string
}

// Dispatcher runs requests. It holds no per-request state.
type Dispatcher struct {
	fs         billy.Filesystem
	out        io.Writer
	logger     *slog.Logger
	recorder   metrics.Recorder
	registry   *plugin.Registry
	newService ServiceFactory
	disallowed []string
}

// New creates a dispatcher running the configured engine executable.
func New() *Dispatcher {
	return &Dispatcher{
		fs:         fsutil.OS(),
		out:        os.Stdout,
		logger:     slog.Default(),
		recorder:   metrics.NoopRecorder{},
		registry:   plugin.NewDefaultRegistry(),
		newService: ExecServiceFactory(os.Stdout, os.Stderr),
		disallowed: DisallowedOptions,
	}
}

// WithFilesystem sets the filesystem used for entry probing and the gate.
func (d *Dispatcher) WithFilesystem(fs billy.Filesystem) *Dispatcher {
	d.fs = fs
	return d
}

// WithOutput sets where user-facing notices go.
func (d *Dispatcher) WithOutput(w io.Writer) *Dispatcher {
	d.out = w
	return d
}

// WithLogger sets a custom logger.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	d.logger = logger
	return d
}

// WithRecorder sets the metrics recorder.
func (d *Dispatcher) WithRecorder(r metrics.Recorder) *Dispatcher {
	if r != nil {
		d.recorder = r
	}
	return d
}

// WithRegistry sets the registry for project-declared plugins.
func (d *Dispatcher) WithRegistry(r *plugin.Registry) *Dispatcher {
	d.registry = r
	return d
}

// WithServiceFactory replaces the engine service constructor.
func (d *Dispatcher) WithServiceFactory(f ServiceFactory) *Dispatcher {
	d.newService = f
	return d
}

// ExecServiceFactory returns a factory for engine.ExecService configured
// from the project's engine settings.
func ExecServiceFactory(stdout, stderr io.Writer) ServiceFactory {
	return func(pctx project.Context, plugins []plugin.Plugin, proj *config.Project) engine.Service {
		return engine.NewExecService(pctx, plugin.Appliers(plugins), engine.Settings{
			Command: proj.Engine.Command,
			Modes:   proj.Engine.Modes,
			Env:     proj.Engine.Env,
		}).WithOutput(stdout, stderr)
	}
}

// Dispatch runs req to completion. A skipped build is a successful outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	outcome := &Outcome{RunID: uuid.NewString(), Command: req.Command}
	logger := d.logger.With(logfields.RunID(outcome.RunID), logfields.Command(req.Command))

	err := d.dispatch(ctx, req, outcome, logger)

	d.recorder.ObserveRunDuration(req.Command, time.Since(start))
	switch {
	case err != nil:
		d.recorder.IncRunOutcome(req.Command, metrics.OutcomeFailed)
	case outcome.Skipped:
		d.recorder.IncRunOutcome(req.Command, metrics.OutcomeSkipped)
	default:
		d.recorder.IncRunOutcome(req.Command, metrics.OutcomeSuccess)
	}
	logger.Debug("Dispatch finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())), slog.Bool("skipped", outcome.Skipped))
	return outcome, err
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request, outcome *Outcome, logger *slog.Logger) error {
	a := req.Args
	if a == nil {
		a = args.New(req.Command)
	}

	outcome.Rejected = a.Reject(d.disallowed)
	for _, name := range outcome.Rejected {
		_, _ = fmt.Fprintln(d.out, color.Red.Sprintf("Option --%s is not available.", name))
		logger.Warn("Disabled unsupported option", logfields.Option(name))
	}

	root := req.Root
	if root == "" {
		root = "."
	}
	pctx, err := project.NewContext(root, "", false)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	proj := req.Project
	if proj == nil {
		if proj, err = config.Load(pctx.Root); err != nil {
			return err
		}
	}

	entry, err := project.NewEntryResolver(d.fs, pctx.Root, proj.EntryCandidates).
		WithLogger(logger).
		Resolve(req.Entry)
	if err != nil {
		return err
	}
	outcome.Entry = entry

	isLibrary := project.IsLibraryTarget(a.String("target"))
	pctx = project.Context{Root: pctx.Root, Entry: entry, IsLibrary: isLibrary}
	if isLibrary {
		a.Set("entry", entry)
	}

	plugins, err := plugin.NewComposer(d.registry).WithLogger(logger).Compose(pctx, a, proj)
	if err != nil {
		return err
	}
	svc := d.newService(pctx, plugins, proj)

	outcome.Mode = engine.EffectiveMode(svc, req.Command, a)
	logger = logger.With(logfields.Mode(outcome.Mode), logfields.Entry(entry))

	var g *gate.Gate
	if gate.Enabled(req.Command, a) {
		g, err = d.newGate(proj, logger)
		if err != nil {
			return err
		}
		outcome.Decision, err = g.Check(ctx, pctx, svc, outcome.Mode, a)
		if err != nil {
			return err
		}
		if outcome.Decision.Skip {
			outcome.Skipped = true
			_, _ = fmt.Fprintln(d.out, color.Green.Sprint(UpToDateMessage))
			return nil
		}
	} else {
		outcome.Decision = gate.Decision{State: gate.StateIdle, Trail: []gate.State{gate.StateIdle}, Disabled: true}
		if req.Command == "build" {
			d.recorder.IncGateDecision(metrics.DecisionDisabled)
		}
	}

	logger.Debug("Running engine", slog.Int("plugins", len(plugins)))
	if err := svc.Run(ctx, req.Command, a, req.RawArgs); err != nil {
		return err
	}

	if g != nil {
		return g.Commit(outcome.Decision)
	}
	return nil
}

func (d *Dispatcher) newGate(proj *config.Project, logger *slog.Logger) (*gate.Gate, error) {
	fp, err := fingerprint.New(d.fs, proj.Cache.SideFile, proj.Cache.Exclude)
	if err != nil {
		return nil, errors.ConfigInvalid("cache.exclude", err.Error())
	}
	store := fingerprint.Store{FS: d.fs, Name: proj.Cache.SideFile}
	return gate.New(d.fs, fp, store).WithRecorder(d.recorder).WithLogger(logger), nil
}
