package config

import (
	"fmt"
	"path"
	"strings"

	"git.home.luguber.info/inful/spabuild/internal/errors"
)

// Validate checks the configuration for values the build cannot work with.
func Validate(cfg *Project) error {
	if ip := cfg.Options.IndexPath; ip != "" {
		if path.IsAbs(ip) || ip == ".." || strings.HasPrefix(ip, "../") {
			return errors.ConfigInvalid("options.index_path", "must be relative to the output directory")
		}
	}

	if cfg.Cache.SideFile == "." || cfg.Cache.SideFile == ".." || strings.ContainsAny(cfg.Cache.SideFile, `/\`) {
		return errors.ConfigInvalid("cache.side_file", "must be a plain file name")
	}

	if len(cfg.Engine.Command) == 0 || strings.TrimSpace(cfg.Engine.Command[0]) == "" {
		return errors.ConfigInvalid("engine.command", "must name an executable")
	}

	for i, p := range cfg.Plugins {
		if p.ID == "" {
			return errors.ConfigInvalid("plugins", fmt.Sprintf("plugin #%d has no id", i+1))
		}
	}

	for _, c := range cfg.EntryCandidates {
		if c == "" || c == "." {
			return errors.ConfigInvalid("entry_candidates", "empty candidate")
		}
	}
	return nil
}
