package engine

import (
	"context"

	"git.home.luguber.info/inful/spabuild/internal/args"
)

// Service is the contract the dispatcher relies on.
type Service interface {
	// DefaultMode returns the mode used for command when none is requested.
	DefaultMode(command string) string

	// Init resolves the build configuration for mode.
	Init(ctx context.Context, mode string) (*Resolved, error)

	// Run executes command. Implementations derive the mode the same way
	// EffectiveMode does.
	Run(ctx context.Context, command string, a args.Arguments, rawArgs []string) error
}

// Applier mutates a Config. Plugins satisfy it.
type Applier interface {
	ID() string
	Apply(cfg *Config) error
}

// Resolved is the outcome of Init.
type Resolved struct {
	// OutputPath is the absolute output directory; empty when the configuration declares none.
	OutputPath string
	// IndexPath is the primary artifact, relative to OutputPath.
	IndexPath string
	// Config is the fully applied configuration.
	Config *Config
}

// EffectiveMode picks the mode for a command: an explicit --mode wins, a
// watching build runs in development, otherwise the service default applies.
func EffectiveMode(svc Service, command string, a args.Arguments) string {
	if m := a.String("mode"); m != "" {
		return m
	}
	if command == "build" && a.Bool("watch") {
		return "development"
	}
	return svc.DefaultMode(command)
}
