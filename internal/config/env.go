package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; the process environment and earlier files win.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads root/.env and root/.env.local when present.
// Existing process environment variables are not overwritten.
func loadEnvFiles(root string) {
	for _, name := range envFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}
