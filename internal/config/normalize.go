package config

import (
	"path"
	"strings"
)

// Normalize trims and canonicalises user supplied values in place.
func Normalize(cfg *Project) {
	cfg.Options.OutputDir = strings.TrimSpace(cfg.Options.OutputDir)
	if ip := strings.TrimSpace(cfg.Options.IndexPath); ip != "" {
		cfg.Options.IndexPath = path.Clean(strings.ReplaceAll(ip, "\\", "/"))
	}

	for i := range cfg.Plugins {
		cfg.Plugins[i].ID = strings.ToLower(strings.TrimSpace(cfg.Plugins[i].ID))
	}

	for k, v := range cfg.Engine.Modes {
		cfg.Engine.Modes[k] = strings.ToLower(strings.TrimSpace(v))
	}

	for i, c := range cfg.EntryCandidates {
		if c = strings.TrimSpace(c); c != "" {
			c = path.Clean(c)
		}
		cfg.EntryCandidates[i] = c
	}

	cfg.Cache.SideFile = strings.TrimSpace(cfg.Cache.SideFile)
}
