package engine

import (
	"bytes"
	"context"
	stdErrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

type fakeApplier struct {
	id    string
	apply func(cfg *Config)
}

func (f fakeApplier) ID() string { return f.id }

func (f fakeApplier) Apply(cfg *Config) error {
	if f.apply != nil {
		f.apply(cfg)
	}
	return nil
}

func newTestService(t *testing.T, root string, command []string, appliers ...Applier) (*ExecService, *bytes.Buffer) {
	t.Helper()
	pctx, err := project.NewContext(root, "src/main.js", false)
	require.NoError(t, err)
	var out bytes.Buffer
	svc := NewExecService(pctx, appliers, Settings{
		Command: command,
		Modes:   map[string]string{"build": "production", "serve": "development", "inspect": "development"},
	}).WithOutput(&out, &out).WithWorkspaceBase(t.TempDir())
	return svc, &out
}

func TestExecService_InitAppliesInOrder(t *testing.T) {
	root := t.TempDir()
	svc, _ := newTestService(t, root, []string{"true"},
		fakeApplier{id: "options", apply: func(c *Config) { c.OutputDir = "out" }},
		fakeApplier{id: "global", apply: func(c *Config) {
			if c.OutputDir == "" {
				c.OutputDir = "dist"
			}
			c.IndexPath = "index.html"
		}},
	)

	res, err := svc.Init(context.Background(), "production")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out"), res.OutputPath)
	assert.Equal(t, "index.html", res.IndexPath)
	assert.Equal(t, []string{"options", "global"}, res.Config.Plugins)
	assert.Equal(t, "production", res.Config.Mode)
}

func TestExecService_InitWithoutOutputDir(t *testing.T) {
	svc, _ := newTestService(t, t.TempDir(), []string{"true"})
	res, err := svc.Init(context.Background(), "development")
	require.NoError(t, err)
	assert.Empty(t, res.OutputPath)
}

func TestExecService_InitIsFresh(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, t.TempDir(), []string{"true"},
		fakeApplier{id: "count", apply: func(c *Config) {
			calls++
			c.Plugins = append(c.Plugins, "seen")
		}},
	)
	first, err := svc.Init(context.Background(), "production")
	require.NoError(t, err)
	second, err := svc.Init(context.Background(), "production")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, first.Config.Plugins, second.Config.Plugins)
}

func TestExecService_InspectPrintsYAML(t *testing.T) {
	svc, out := newTestService(t, t.TempDir(), []string{"true"},
		fakeApplier{id: "options", apply: func(c *Config) {
			c.OutputDir = "dist"
			c.Args = map[string]any{"mode": "x"}
		}},
	)
	err := svc.Run(context.Background(), "inspect", args.New("inspect"), nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "outputDir: dist")
	assert.Contains(t, out.String(), "mode: development")
	assert.NotContains(t, out.String(), "args:")
}

func TestExecService_BuildRunsEngine(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	root := t.TempDir()
	script := `echo "$@"; echo "mode=$SPABUILD_MODE"; test -f "$SPABUILD_CONFIG" && echo config-ok`
	svc, out := newTestService(t, root, []string{sh, "-c", script, "engine"},
		fakeApplier{id: "options", apply: func(c *Config) { c.OutputDir = "dist" }},
	)

	a := args.New("build")
	err = svc.Run(context.Background(), "build", a, []string{"build", "--", "--extra"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "build --mode production --extra")
	assert.Contains(t, out.String(), "mode=production")
	assert.Contains(t, out.String(), "config-ok")

	out.Reset()
	a.Set("clean", false)
	require.NoError(t, svc.Run(context.Background(), "build", a, nil))
	assert.Contains(t, out.String(), "build --mode production --no-clean")
}

func TestExecService_BuildCleansUnlessDisabled(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	root := t.TempDir()
	stale := filepath.Join(root, "dist", "stale.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o750))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o600))

	svc, _ := newTestService(t, root, []string{sh, "-c", "exit 0"},
		fakeApplier{id: "options", apply: func(c *Config) { c.OutputDir = "dist" }},
	)

	a := args.New("build")
	a.Set("clean", false)
	require.NoError(t, svc.Run(context.Background(), "build", a, nil))
	assert.FileExists(t, stale)

	require.NoError(t, svc.Run(context.Background(), "build", args.New("build"), nil))
	assert.NoFileExists(t, stale)
}

func TestExecService_BuildRefusesOutputAtOrAboveRoot(t *testing.T) {
	for _, dir := range []string{".", "..", "./"} {
		t.Run(dir, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "app")
			src := filepath.Join(root, "src", "main.js")
			require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o750))
			require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

			svc, out := newTestService(t, root, []string{"true"},
				fakeApplier{id: "options", apply: func(c *Config) { c.OutputDir = dir }},
			)
			err := svc.Run(context.Background(), "build", args.New("build"), nil)
			require.Error(t, err)
			assert.True(t, stdErrors.Is(err, errors.ErrOutputIsRoot))
			assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
			assert.FileExists(t, src)
			assert.Empty(t, out.String(), "engine must not run")
		})
	}
}

func TestExecService_EngineFailure(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	svc, _ := newTestService(t, t.TempDir(), []string{sh, "-c", "exit 3"})
	err = svc.Run(context.Background(), "serve", args.New("serve"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryBuild))
}

func TestEffectiveMode(t *testing.T) {
	svc, _ := newTestService(t, t.TempDir(), []string{"true"})

	assert.Equal(t, "production", EffectiveMode(svc, "build", args.New("build")))
	assert.Equal(t, "development", EffectiveMode(svc, "serve", args.New("serve")))

	watch := args.New("build")
	watch.Set("watch", true)
	assert.Equal(t, "development", EffectiveMode(svc, "build", watch))

	explicit := args.New("build")
	explicit.Set("mode", "staging")
	explicit.Set("watch", true)
	assert.Equal(t, "staging", EffectiveMode(svc, "build", explicit))
}

func TestPassthrough(t *testing.T) {
	assert.Nil(t, passthrough([]string{"build", "--mode", "x"}))
	assert.Equal(t, []string{"a", "--", "b"}, passthrough([]string{"build", "--", "a", "--", "b"}))
	assert.True(t, strings.HasPrefix(strings.Join(passthrough([]string{"--", "x"}), ""), "x"))
}
