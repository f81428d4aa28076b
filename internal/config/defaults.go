package config

const (
	DefaultOutputDir  = "dist"
	DefaultIndexPath  = "index.html"
	DefaultPublicPath = "/"
	DefaultSideFile   = ".srchash"
)

// DefaultEngineCommand is used when the project does not configure one.
var DefaultEngineCommand = []string{"npx", "vue-cli-service"}

// DefaultModes returns the per-command default modes.
func DefaultModes() map[string]string {
	return map[string]string{
		"build":   "production",
		"serve":   "development",
		"inspect": "development",
	}
}

// applyDefaults fills engine and cache settings. Build options stay empty:
// the global plugin owns their defaults.
func applyDefaults(cfg *Project) {
	if len(cfg.Engine.Command) == 0 {
		cfg.Engine.Command = append([]string{}, DefaultEngineCommand...)
	}
	modes := DefaultModes()
	for k, v := range cfg.Engine.Modes {
		modes[k] = v
	}
	cfg.Engine.Modes = modes

	if cfg.Cache.SideFile == "" {
		cfg.Cache.SideFile = DefaultSideFile
	}
}
