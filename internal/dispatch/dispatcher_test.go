package dispatch

import (
	"bytes"
	"context"
	stdErrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/config"
	"git.home.luguber.info/inful/spabuild/internal/engine"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/gate"
	"git.home.luguber.info/inful/spabuild/internal/metrics"
	"git.home.luguber.info/inful/spabuild/internal/plugin"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

// fakeEngine resolves its configuration through the real plugins and
// "builds" by writing a deterministic output tree.
type fakeEngine struct {
	pctx     project.Context
	appliers []engine.Applier
	runs     []string
	lastArgs args.Arguments
}

func (f *fakeEngine) DefaultMode(command string) string {
	return config.DefaultModes()[command]
}

func (f *fakeEngine) Init(_ context.Context, mode string) (*engine.Resolved, error) {
	cfg := &engine.Config{Mode: mode, Root: f.pctx.Root}
	for _, a := range f.appliers {
		if err := a.Apply(cfg); err != nil {
			return nil, err
		}
	}
	return &engine.Resolved{OutputPath: f.pctx.Resolve(cfg.OutputDir), IndexPath: cfg.IndexPath, Config: cfg}, nil
}

func (f *fakeEngine) Run(ctx context.Context, command string, a args.Arguments, _ []string) error {
	f.runs = append(f.runs, command)
	f.lastArgs = a
	if command != "build" {
		return nil
	}
	res, err := f.Init(ctx, engine.EffectiveMode(f, command, a))
	if err != nil {
		return err
	}
	if v, ok := a.Flag("clean"); !ok || v {
		if err := os.RemoveAll(res.OutputPath); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Join(res.OutputPath, "js"), 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(res.OutputPath, res.IndexPath), []byte("<html>"), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(res.OutputPath, "js", "app.js"), []byte("app"), 0o600)
}

type harness struct {
	root   string
	out    *bytes.Buffer
	engine *fakeEngine
	d      *Dispatcher
	proj   *config.Project
}

func newHarness(t *testing.T, files ...string) *harness {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("// entry"), 0o600))
	}
	proj, err := config.Parse(nil)
	require.NoError(t, err)

	h := &harness{root: root, out: &bytes.Buffer{}, proj: proj}
	h.d = New().WithOutput(h.out).WithServiceFactory(func(pctx project.Context, plugins []plugin.Plugin, _ *config.Project) engine.Service {
		h.engine = &fakeEngine{pctx: pctx, appliers: plugin.Appliers(plugins)}
		return h.engine
	})
	return h
}

func (h *harness) build(t *testing.T, srchash *bool) (*Outcome, error) {
	t.Helper()
	a := args.New("build")
	if srchash != nil {
		a.Set(gate.FlagName, *srchash)
	}
	return h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "build", Args: a, Project: h.proj})
}

func (h *harness) sideFile() string {
	return filepath.Join(h.root, "dist", config.DefaultSideFile)
}

func ptr(b bool) *bool { return &b }

func TestDispatch_FreshProjectProceeds(t *testing.T) {
	h := newHarness(t, "src/main.js")

	outcome, err := h.build(t, ptr(true))
	require.NoError(t, err)
	assert.False(t, outcome.Skipped)
	assert.Equal(t, "src/main.js", outcome.Entry)
	assert.Equal(t, "production", outcome.Mode)
	assert.Equal(t, []string{"build"}, h.engine.runs)
	assert.FileExists(t, h.sideFile())
	assert.FileExists(t, filepath.Join(h.root, "dist", "index.html"))
	assert.NotEmpty(t, outcome.RunID)
}

func TestDispatch_SecondBuildIsSkipped(t *testing.T) {
	h := newHarness(t, "src/main.js")

	_, err := h.build(t, ptr(true))
	require.NoError(t, err)

	h.out.Reset()
	outcome, err := h.build(t, ptr(true))
	require.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.Contains(t, h.out.String(), UpToDateMessage)
	assert.Empty(t, h.engine.runs, "engine must not run on skip")
}

func TestDispatch_FalseFlagAlwaysRebuilds(t *testing.T) {
	h := newHarness(t, "src/main.js")

	_, err := h.build(t, ptr(false))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(h.sideFile(), []byte("stale"), 0o600))

	outcome, err := h.build(t, ptr(false))
	require.NoError(t, err)
	assert.False(t, outcome.Skipped)
	assert.Equal(t, []string{"build"}, h.engine.runs)

	data, err := os.ReadFile(h.sideFile())
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestDispatch_UnsetFlagWritesNoSideFile(t *testing.T) {
	h := newHarness(t, "src/main.js")

	outcome, err := h.build(t, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Decision.Disabled)
	assert.NoFileExists(t, h.sideFile())
	assert.False(t, h.engine.lastArgs.Has("clean"))
}

type countingRecorder struct {
	metrics.NoopRecorder
	decisions map[metrics.DecisionLabel]int
}

func (r *countingRecorder) IncGateDecision(d metrics.DecisionLabel) {
	if r.decisions == nil {
		r.decisions = map[metrics.DecisionLabel]int{}
	}
	r.decisions[d]++
}

func TestDispatch_UnsetFlagCountsDisabledDecision(t *testing.T) {
	h := newHarness(t, "src/main.js")
	rec := &countingRecorder{}
	h.d.WithRecorder(rec)

	_, err := h.build(t, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.decisions[metrics.DecisionDisabled])

	_, err = h.build(t, ptr(true))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.decisions[metrics.DecisionDisabled])
	assert.Equal(t, 1, rec.decisions[metrics.DecisionProceed])

	_, err = h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "serve", Args: args.New("serve"), Project: h.proj})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.decisions[metrics.DecisionDisabled], "only builds carry a gate decision")
}

func TestDispatch_OutputIsRoot(t *testing.T) {
	h := newHarness(t, "src/main.js")
	h.proj.Options.OutputDir = "."

	_, err := h.build(t, ptr(true))
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrOutputIsRoot))
	assert.Equal(t, errors.ExitConfig, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.FileExists(t, filepath.Join(h.root, "src", "main.js"))
	assert.NoFileExists(t, filepath.Join(h.root, config.DefaultSideFile))
	assert.Empty(t, h.engine.runs)
}

func TestDispatch_NoEntry(t *testing.T) {
	h := newHarness(t)

	_, err := h.build(t, nil)
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrEntryNotFound))

	var buf bytes.Buffer
	code := errors.NewCLIErrorAdapter(false, nil).WithOutput(&buf).Report(err)
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Failed to locate entry file in")
}

func TestDispatch_RejectsModern(t *testing.T) {
	h := newHarness(t, "main.js")
	a := args.New("build")
	a.Set("modern", true)

	outcome, err := h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "build", Args: a, Project: h.proj})
	require.NoError(t, err)
	assert.Equal(t, []string{"modern"}, outcome.Rejected)
	assert.Contains(t, h.out.String(), "Option --modern is not available.")
	assert.Equal(t, false, h.engine.lastArgs["modern"])
}

func TestDispatch_RejectsModernOnServeAndInspect(t *testing.T) {
	for _, command := range []string{"serve", "inspect"} {
		t.Run(command, func(t *testing.T) {
			h := newHarness(t, "main.js")
			a := args.New(command)
			a.Set("modern", true)

			outcome, err := h.d.Dispatch(context.Background(), Request{Root: h.root, Command: command, Args: a, Project: h.proj})
			require.NoError(t, err)
			assert.Equal(t, []string{"modern"}, outcome.Rejected)
			assert.Contains(t, h.out.String(), "Option --modern is not available.")
			assert.Equal(t, []string{command}, h.engine.runs)
		})
	}
}

func TestDispatch_LibraryTargetInjectsEntry(t *testing.T) {
	h := newHarness(t, "src/App.vue")
	a := args.New("build")
	a.Set("target", "lib")

	_, err := h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "build", Args: a, Project: h.proj})
	require.NoError(t, err)
	assert.Equal(t, "src/App.vue", h.engine.lastArgs.String("entry"))
	assert.True(t, h.engine.pctx.IsLibrary)

	a = args.New("build")
	a.Set("target", "app")
	_, err = h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "build", Args: a, Project: h.proj})
	require.NoError(t, err)
	assert.False(t, h.engine.lastArgs.Has("entry"))
}

func TestDispatch_ModeSelection(t *testing.T) {
	h := newHarness(t, "src/main.js")

	a := args.New("build")
	a.Set("watch", true)
	outcome, err := h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "build", Args: a, Project: h.proj})
	require.NoError(t, err)
	assert.Equal(t, "development", outcome.Mode)

	outcome, err = h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "serve", Project: h.proj})
	require.NoError(t, err)
	assert.Equal(t, "development", outcome.Mode)
	assert.Equal(t, []string{"serve"}, h.engine.runs)
}

func TestDispatch_ExplicitEntryMustExist(t *testing.T) {
	h := newHarness(t, "src/main.js")

	_, err := h.d.Dispatch(context.Background(), Request{Root: h.root, Command: "serve", Entry: "src/other.js", Project: h.proj})
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrEntryMissing))
}
