// Package config loads the optional per-project configuration file (spabuild.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/spabuild/internal/errors"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "spabuild.yaml"

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = "1"

// Project represents the project-level configuration.
type Project struct {
	Version string `yaml:"version"`

	// EntryCandidates overrides the entry search order when non-empty.
	EntryCandidates []string `yaml:"entry_candidates,omitempty"`

	// Options are the project's overrides applied by the options plugin.
	Options Options `yaml:"options,omitempty"`

	Engine EngineConfig `yaml:"engine,omitempty"`
	Cache  CacheConfig  `yaml:"cache,omitempty"`

	// Plugins are appended after every built-in plugin, in declaration order.
	Plugins []PluginSpec `yaml:"plugins,omitempty"`
}

// Options holds build options the project may pin.
type Options struct {
	OutputDir  string         `yaml:"output_dir,omitempty"`
	IndexPath  string         `yaml:"index_path,omitempty"`
	PublicPath string         `yaml:"public_path,omitempty"`
	AssetsDir  string         `yaml:"assets_dir,omitempty"`
	LintOnSave *bool          `yaml:"lint_on_save,omitempty"`
	SourceMap  *bool          `yaml:"source_map,omitempty"`
	Extra      map[string]any `yaml:"extra,omitempty"`
}

// EngineConfig describes how to invoke the underlying build engine.
type EngineConfig struct {
	// Command is the engine executable followed by any leading arguments.
	Command []string `yaml:"command,omitempty"`
	// Modes maps a command name to its default mode.
	Modes map[string]string `yaml:"modes,omitempty"`
	// Env is added to the engine's environment.
	Env map[string]string `yaml:"env,omitempty"`
}

// CacheConfig configures the build-skip cache.
type CacheConfig struct {
	// SideFile is the fingerprint file name inside the output directory.
	SideFile string `yaml:"side_file,omitempty"`
	// Exclude lists glob patterns (relative to the output directory) left out of the fingerprint.
	Exclude []string `yaml:"exclude,omitempty"`
}

// PluginSpec declares a project plugin.
type PluginSpec struct {
	ID      string         `yaml:"id"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Load reads root/spabuild.yaml. A missing file yields the defaults.
// Environment files in root are loaded first so ${VAR} references resolve.
func Load(root string) (*Project, error) {
	loadEnvFiles(root)

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		data = nil
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid project configuration").
			WithContext("path", path)
	}
	return cfg, nil
}

// Parse decodes configuration bytes and applies normalization, defaults and validation.
// Empty input yields the defaults.
func Parse(data []byte) (*Project, error) {
	cfg := &Project{}
	if err := decode(data, cfg); err != nil {
		return nil, err
	}

	// Normalization pass (trim, case-fold ids and modes)
	Normalize(cfg)
	// Apply defaults (after normalization so canonical values drive defaults)
	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Project) error {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)
	}
	return nil
}

// Init writes an example configuration file into root and returns its path.
func Init(root string, force bool) (string, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return path, fmt.Errorf("failed to marshal example config: %w", err)
	}
	// #nosec G306 -- project config is not sensitive
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// Example returns the configuration written by Init.
func Example() *Project {
	return &Project{
		Version: CurrentVersion,
		Options: Options{
			OutputDir:  DefaultOutputDir,
			IndexPath:  DefaultIndexPath,
			PublicPath: DefaultPublicPath,
		},
		Engine: EngineConfig{
			Command: append([]string{}, DefaultEngineCommand...),
			Modes:   DefaultModes(),
		},
		Cache: CacheConfig{SideFile: DefaultSideFile},
		Plugins: []PluginSpec{
			{ID: "define", Options: map[string]any{"APP_VERSION": "${APP_VERSION}"}},
		},
	}
}
