package plugin

import (
	"maps"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/config"
	"git.home.luguber.info/inful/spabuild/internal/engine"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

// Built-in plugin identifiers.
const (
	IDOptions = "options"
	IDBabel   = "babel"
	IDESLint  = "eslint"
	IDGlobal  = "global"
)

const (
	defaultPreset = "@vue/app"
	targetApp     = "app"
	modeProd      = "production"
)

// NewOptionsPlugin carries the resolved entry, the build target and the
// full argument set into the configuration. overrides are the options the
// project pins in its configuration file; command-line --dest still wins.
func NewOptionsPlugin(pctx project.Context, a args.Arguments, overrides config.Options) Plugin {
	snapshot := map[string]any(a.Clone())
	return New(IDOptions, KindOptions, func(cfg *engine.Config) error {
		cfg.Entry = pctx.Entry
		cfg.Target = a.String("target")
		if cfg.Target == "" {
			cfg.Target = targetApp
		}
		cfg.SourceMap = cfg.Mode != modeProd

		if overrides.OutputDir != "" {
			cfg.OutputDir = overrides.OutputDir
		}
		if overrides.IndexPath != "" {
			cfg.IndexPath = overrides.IndexPath
		}
		if overrides.PublicPath != "" {
			cfg.PublicPath = overrides.PublicPath
		}
		if overrides.AssetsDir != "" {
			cfg.AssetsDir = overrides.AssetsDir
		}
		if overrides.SourceMap != nil {
			cfg.SourceMap = *overrides.SourceMap
		}
		if overrides.LintOnSave != nil {
			cfg.Lint = &engine.LintOptions{OnSave: *overrides.LintOnSave}
		}
		if len(overrides.Extra) > 0 {
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any, len(overrides.Extra))
			}
			maps.Copy(cfg.Extra, overrides.Extra)
		}

		if dest := a.String("dest"); dest != "" {
			cfg.OutputDir = dest
		}
		cfg.Args = snapshot
		return nil
	})
}

// NewBabelPlugin enables the transpile stage.
func NewBabelPlugin() Plugin {
	return New(IDBabel, KindFramework, func(cfg *engine.Config) error {
		t := &engine.TranspileOptions{Enabled: true, Preset: defaultPreset}
		if !project.IsLibraryTarget(cfg.Target) {
			t.Targets = []string{"defaults"}
		}
		cfg.Transpile = t
		return nil
	})
}

// NewESLintPlugin enables the lint stage. Lint-on-save never runs for
// production builds.
func NewESLintPlugin() Plugin {
	return New(IDESLint, KindFramework, func(cfg *engine.Config) error {
		if cfg.Lint == nil {
			cfg.Lint = &engine.LintOptions{OnSave: true}
		}
		cfg.Lint.Enabled = true
		if cfg.Mode == modeProd {
			cfg.Lint.OnSave = false
		}
		return nil
	})
}

// NewGlobalPlugin fills in every setting earlier plugins left empty, and
// the library and report settings derived from the arguments.
func NewGlobalPlugin(pctx project.Context, a args.Arguments) Plugin {
	return New(IDGlobal, KindGlobal, func(cfg *engine.Config) error {
		if cfg.OutputDir == "" {
			cfg.OutputDir = config.DefaultOutputDir
		}
		if cfg.IndexPath == "" {
			cfg.IndexPath = config.DefaultIndexPath
		}
		if cfg.PublicPath == "" {
			cfg.PublicPath = config.DefaultPublicPath
		}

		if pctx.IsLibrary {
			name := a.String("name")
			if name == "" {
				name = libraryName(pctx.Entry)
			}
			cfg.Library = &engine.LibraryOptions{
				Name:    name,
				Target:  cfg.Target,
				Formats: libraryFormats(cfg.Target),
			}
		}

		if a.Bool("report") || a.Bool("report-json") {
			cfg.Report = &engine.ReportOptions{
				HTML: a.Bool("report"),
				JSON: a.Bool("report-json"),
			}
		}
		cfg.Watch = a.Bool("watch")
		return nil
	})
}

func libraryName(entry string) string {
	base := filepath.Base(entry)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func libraryFormats(target string) []string {
	switch target {
	case "wc", "wc-async":
		return []string{"web-component"}
	default:
		return []string{"commonjs", "umd", "umd-min"}
	}
}
