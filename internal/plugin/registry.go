package plugin

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"git.home.luguber.info/inful/spabuild/internal/config"
	"git.home.luguber.info/inful/spabuild/internal/engine"
)

// Factory builds a project plugin from its declaration.
type Factory func(spec config.PluginSpec) (Plugin, error)

// Registry maps project plugin ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for id.
// Returns an error if a factory for id already exists.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" {
		return fmt.Errorf("plugin id is required")
	}
	if f == nil {
		return fmt.Errorf("cannot register nil factory for %s", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("plugin %s already registered", id)
	}
	r.factories[id] = f
	return nil
}

// Has checks if a factory for id exists.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build creates the plugin declared by spec. Ids without a factory yield a
// generic plugin that records the options under Config.PluginOptions.
func (r *Registry) Build(spec config.PluginSpec) (Plugin, error) {
	r.mu.RLock()
	f, ok := r.factories[spec.ID]
	r.mu.RUnlock()

	if !ok {
		return genericPlugin(spec), nil
	}
	p, err := f(spec)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", spec.ID, err)
	}
	return p, nil
}

// NewDefaultRegistry returns a registry with the built-in project plugins:
// define, alias and env.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("define", stringMapFactory(func(cfg *engine.Config) *map[string]string { return &cfg.Define }))
	_ = r.Register("alias", stringMapFactory(func(cfg *engine.Config) *map[string]string { return &cfg.Alias }))
	_ = r.Register("env", stringMapFactory(func(cfg *engine.Config) *map[string]string { return &cfg.Env }))
	return r
}

// stringMapFactory builds plugins merging their options into one of the
// configuration's string maps. Later declarations overwrite earlier keys.
func stringMapFactory(field func(cfg *engine.Config) *map[string]string) Factory {
	return func(spec config.PluginSpec) (Plugin, error) {
		values := make(map[string]string, len(spec.Options))
		for k, v := range spec.Options {
			switch v.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("option %q must be a scalar", k)
			}
			values[k] = fmt.Sprint(v)
		}
		return New(spec.ID, KindProject, func(cfg *engine.Config) error {
			m := field(cfg)
			if *m == nil {
				*m = make(map[string]string, len(values))
			}
			maps.Copy(*m, values)
			return nil
		}), nil
	}
}

func genericPlugin(spec config.PluginSpec) Plugin {
	opts := maps.Clone(spec.Options)
	if opts == nil {
		opts = map[string]any{}
	}
	return New(spec.ID, KindProject, func(cfg *engine.Config) error {
		if cfg.PluginOptions == nil {
			cfg.PluginOptions = make(map[string]map[string]any)
		}
		cfg.PluginOptions[spec.ID] = opts
		return nil
	})
}
