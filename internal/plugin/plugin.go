// Package plugin builds the ordered list of configuration plugins applied
// to the engine configuration.
package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/spabuild/internal/engine"
)

// Plugin mutates the engine configuration. The position of a plugin in the
// composed list is its application order.
type Plugin interface {
	// ID is the plugin identifier. IDs are not unique within a list.
	ID() string

	// Kind reports which stage the plugin belongs to.
	Kind() Kind

	// Apply mutates cfg.
	Apply(cfg *engine.Config) error
}

// ApplyFunc adapts a function to the Apply half of Plugin.
type ApplyFunc func(cfg *engine.Config) error

type funcPlugin struct {
	id    string
	kind  Kind
	apply ApplyFunc
}

// New returns a plugin with the given identity backed by fn.
func New(id string, kind Kind, fn ApplyFunc) Plugin {
	return &funcPlugin{id: id, kind: kind, apply: fn}
}

func (p *funcPlugin) ID() string { return p.id }

func (p *funcPlugin) Kind() Kind { return p.kind }

func (p *funcPlugin) Apply(cfg *engine.Config) error {
	if p.apply == nil {
		return nil
	}
	return p.apply(cfg)
}

// Descriptor is the printable identity of a plugin.
type Descriptor struct {
	ID   string `json:"id" yaml:"id"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// String returns a human-readable representation of the descriptor.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.ID, d.Kind)
}

// Describe lists the identities of plugins in order.
func Describe(plugins []Plugin) []Descriptor {
	out := make([]Descriptor, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, Descriptor{ID: p.ID(), Kind: p.Kind()})
	}
	return out
}

// Appliers converts plugins to the engine's Applier interface.
func Appliers(plugins []Plugin) []engine.Applier {
	out := make([]engine.Applier, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, p)
	}
	return out
}
