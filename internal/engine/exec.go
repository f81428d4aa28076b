package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/fsutil"
	"git.home.luguber.info/inful/spabuild/internal/logfields"
	"git.home.luguber.info/inful/spabuild/internal/project"
	"git.home.luguber.info/inful/spabuild/internal/workspace"
)

// Environment variables handed to the engine process.
const (
	EnvConfig    = "SPABUILD_CONFIG"
	EnvMode      = "SPABUILD_MODE"
	EnvOutputDir = "SPABUILD_OUTPUT_DIR"
	EnvEntry     = "SPABUILD_ENTRY"
)

// Settings describes how to invoke the engine executable.
type Settings struct {
	// Command is the executable followed by leading arguments.
	Command []string
	// Modes maps command names to default modes.
	Modes map[string]string
	// Env is appended to the process environment.
	Env map[string]string
}

// ExecService runs an external engine executable.
type ExecService struct {
	project  project.Context
	plugins  []Applier
	settings Settings

	fs            billy.Filesystem
	workspaceBase string
	stdout        io.Writer
	stderr        io.Writer
	logger        *slog.Logger
}

// NewExecService creates a service applying plugins in order on every Init.
func NewExecService(pctx project.Context, plugins []Applier, settings Settings) *ExecService {
	return &ExecService{
		project:  pctx,
		plugins:  plugins,
		settings: settings,
		fs:       fsutil.OS(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   slog.Default(),
	}
}

// WithFilesystem overrides the filesystem used for output cleaning.
func (s *ExecService) WithFilesystem(fs billy.Filesystem) *ExecService {
	s.fs = fs
	return s
}

// WithOutput redirects the engine's stdout and stderr.
func (s *ExecService) WithOutput(stdout, stderr io.Writer) *ExecService {
	s.stdout, s.stderr = stdout, stderr
	return s
}

// WithWorkspaceBase sets where per-run workspaces are created.
func (s *ExecService) WithWorkspaceBase(dir string) *ExecService {
	s.workspaceBase = dir
	return s
}

// WithLogger sets a custom logger.
func (s *ExecService) WithLogger(logger *slog.Logger) *ExecService {
	s.logger = logger
	return s
}

// DefaultMode implements Service.
func (s *ExecService) DefaultMode(command string) string {
	return s.settings.Modes[command]
}

// Init implements Service.
func (s *ExecService) Init(_ context.Context, mode string) (*Resolved, error) {
	cfg := &Config{
		Mode: mode,
		Root: s.project.Root,
	}
	for _, p := range s.plugins {
		if err := p.Apply(cfg); err != nil {
			return nil, errors.InternalError("plugin failed", err).WithContext("plugin", p.ID())
		}
		cfg.Plugins = append(cfg.Plugins, p.ID())
		s.logger.Debug("Applied plugin", logfields.Plugin(p.ID()))
	}

	resolved := &Resolved{IndexPath: cfg.IndexPath, Config: cfg}
	if cfg.OutputDir != "" {
		resolved.OutputPath = s.project.Resolve(cfg.OutputDir)
	}
	return resolved, nil
}

// Run implements Service.
func (s *ExecService) Run(ctx context.Context, command string, a args.Arguments, rawArgs []string) error {
	mode := EffectiveMode(s, command, a)
	resolved, err := s.Init(ctx, mode)
	if err != nil {
		return err
	}

	if command == "inspect" {
		return s.inspect(resolved.Config, a.Bool("verbose"))
	}

	if command == "build" && resolved.OutputPath != "" {
		if err := s.project.CheckOutputDir(resolved.OutputPath); err != nil {
			return err
		}
	}

	if command == "build" && resolved.OutputPath != "" && shouldClean(a) {
		s.logger.Debug("Cleaning output directory", logfields.OutputDir(resolved.OutputPath))
		if err := util.RemoveAll(s.fs, resolved.OutputPath); err != nil {
			return errors.FileSystemError("clean", resolved.OutputPath, err)
		}
	}

	return s.exec(ctx, command, mode, resolved, shouldClean(a), passthrough(rawArgs))
}

func (s *ExecService) exec(ctx context.Context, command, mode string, resolved *Resolved, cleanRequested bool, extra []string) error {
	ws := workspace.NewManager(s.workspaceBase)
	if err := ws.Create(); err != nil {
		return errors.FileSystemError("workspace", s.workspaceBase, err)
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			s.logger.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()

	data, err := json.MarshalIndent(resolved.Config, "", "  ")
	if err != nil {
		return errors.InternalError("failed to encode engine config", err)
	}
	cfgPath, err := ws.WriteFile("engine-config.json", data)
	if err != nil {
		return errors.FileSystemError("write", ws.GetPath(), err)
	}

	argv := append([]string{}, s.settings.Command[1:]...)
	argv = append(argv, command, "--mode", mode)
	if command == "build" && !cleanRequested {
		argv = append(argv, "--no-clean")
	}
	argv = append(argv, extra...)

	// #nosec G204 -- the engine command comes from project configuration
	cmd := exec.CommandContext(ctx, s.settings.Command[0], argv...)
	cmd.Dir = s.project.Root
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	cmd.Env = append(os.Environ(), s.environ(cfgPath, mode, resolved)...)

	s.logger.Info("Running build engine",
		logfields.Command(command),
		logfields.Mode(mode),
		slog.String("executable", s.settings.Command[0]))

	if err := cmd.Run(); err != nil {
		return errors.BuildFailed(command, err)
	}
	return nil
}

func (s *ExecService) environ(cfgPath, mode string, resolved *Resolved) []string {
	env := []string{
		EnvConfig + "=" + cfgPath,
		EnvMode + "=" + mode,
		EnvOutputDir + "=" + resolved.OutputPath,
		EnvEntry + "=" + s.project.EntryPath(),
	}
	if mode == "production" || mode == "development" || mode == "test" {
		env = append(env, "NODE_ENV="+mode)
	}

	keys := make([]string, 0, len(s.settings.Env)+len(resolved.Config.Env))
	merged := make(map[string]string)
	for k, v := range s.settings.Env {
		merged[k] = v
	}
	for k, v := range resolved.Config.Env {
		merged[k] = v
	}
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+merged[k])
	}
	return env
}

func (s *ExecService) inspect(cfg *Config, verbose bool) error {
	out := *cfg
	if !verbose {
		out.Args = nil
	}
	enc := yaml.NewEncoder(s.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// shouldClean reports whether a build should remove its output directory
// first. Cleaning is on unless clean was explicitly set to false.
func shouldClean(a args.Arguments) bool {
	if v, ok := a.Flag("clean"); ok {
		return v
	}
	return true
}

// passthrough returns the tokens after the first "--" separator.
func passthrough(rawArgs []string) []string {
	for i, tok := range rawArgs {
		if tok == "--" {
			return append([]string{}, rawArgs[i+1:]...)
		}
	}
	return nil
}
