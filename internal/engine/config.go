package engine

// Config is the build configuration assembled by the ordered plugin list
// and handed to the engine.
type Config struct {
	Mode   string `json:"mode" yaml:"mode"`
	Root   string `json:"root" yaml:"root"`
	Entry  string `json:"entry" yaml:"entry"`
	Target string `json:"target" yaml:"target"`

	OutputDir  string `json:"outputDir" yaml:"outputDir"`
	IndexPath  string `json:"indexPath" yaml:"indexPath"`
	PublicPath string `json:"publicPath" yaml:"publicPath"`
	AssetsDir  string `json:"assetsDir,omitempty" yaml:"assetsDir,omitempty"`
	SourceMap  bool   `json:"sourceMap" yaml:"sourceMap"`

	Transpile *TranspileOptions `json:"transpile,omitempty" yaml:"transpile,omitempty"`
	Lint      *LintOptions      `json:"lint,omitempty" yaml:"lint,omitempty"`
	Library   *LibraryOptions   `json:"library,omitempty" yaml:"library,omitempty"`
	Report    *ReportOptions    `json:"report,omitempty" yaml:"report,omitempty"`

	Define  map[string]string `json:"define,omitempty" yaml:"define,omitempty"`
	Alias   map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Watch   bool              `json:"watch,omitempty" yaml:"watch,omitempty"`
	Extra   map[string]any    `json:"extra,omitempty" yaml:"extra,omitempty"`
	Args    map[string]any    `json:"args,omitempty" yaml:"args,omitempty"`
	Plugins []string          `json:"plugins" yaml:"plugins"`

	// PluginOptions holds options of project plugins the core has no typed support for.
	PluginOptions map[string]map[string]any `json:"pluginOptions,omitempty" yaml:"pluginOptions,omitempty"`
}

// TranspileOptions configures the transpile stage.
type TranspileOptions struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Preset  string   `json:"preset" yaml:"preset"`
	Targets []string `json:"targets,omitempty" yaml:"targets,omitempty"`
}

// LintOptions configures the lint stage.
type LintOptions struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	OnSave  bool `json:"onSave" yaml:"onSave"`
}

// LibraryOptions is set for library targets.
type LibraryOptions struct {
	Name    string   `json:"name" yaml:"name"`
	Target  string   `json:"target" yaml:"target"`
	Formats []string `json:"formats" yaml:"formats"`
}

// ReportOptions selects bundle reports.
type ReportOptions struct {
	HTML bool `json:"html" yaml:"html"`
	JSON bool `json:"json" yaml:"json"`
}
