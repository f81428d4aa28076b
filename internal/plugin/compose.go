package plugin

import (
	"log/slog"

	"git.home.luguber.info/inful/spabuild/internal/args"
	"git.home.luguber.info/inful/spabuild/internal/config"
	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/logfields"
	"git.home.luguber.info/inful/spabuild/internal/project"
)

// Composer builds the per-invocation plugin list.
type Composer struct {
	registry *Registry
	logger   *slog.Logger
}

// NewComposer creates a Composer. A nil registry selects the default one.
func NewComposer(reg *Registry) *Composer {
	if reg == nil {
		reg = NewDefaultRegistry()
	}
	return &Composer{registry: reg, logger: slog.Default()}
}

// WithLogger sets a custom logger.
func (c *Composer) WithLogger(logger *slog.Logger) *Composer {
	c.logger = logger
	return c
}

// Compose returns the ordered plugin list: options, babel, eslint, global,
// then every project-declared plugin in declaration order. Nothing is
// deduplicated. proj and reg may be nil.
func Compose(pctx project.Context, a args.Arguments, proj *config.Project, reg *Registry) ([]Plugin, error) {
	return NewComposer(reg).Compose(pctx, a, proj)
}

// Compose returns the ordered plugin list for one invocation. proj may be nil.
func (c *Composer) Compose(pctx project.Context, a args.Arguments, proj *config.Project) ([]Plugin, error) {
	var overrides config.Options
	var declared []config.PluginSpec
	if proj != nil {
		overrides = proj.Options
		declared = proj.Plugins
	}

	plugins := make([]Plugin, 0, 4+len(declared))
	plugins = append(plugins,
		NewOptionsPlugin(pctx, a, overrides),
		NewBabelPlugin(),
		NewESLintPlugin(),
		NewGlobalPlugin(pctx, a),
	)

	for i, spec := range declared {
		if spec.ID == "" {
			return nil, errors.ConfigInvalid("plugins", "plugin has no id").WithContext("index", i)
		}
		p, err := c.registry.Build(spec)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid project plugin").
				WithContext("plugin", spec.ID)
		}
		plugins = append(plugins, p)
	}

	for _, p := range plugins {
		c.logger.Debug("Composed plugin", logfields.Plugin(p.ID()), logfields.PluginKind(string(p.Kind())))
	}
	return plugins, nil
}
