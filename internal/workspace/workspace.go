package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/spabuild/internal/logfields"
)

// Manager handles a single ephemeral workspace directory.
type Manager struct {
	baseDir string
	tempDir string
}

// NewManager creates a workspace manager rooted at baseDir (os.TempDir when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create creates a fresh timestamped workspace directory.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base: %w", err)
	}
	timestamp := time.Now().Format("20060102-150405")
	dir, err := os.MkdirTemp(m.baseDir, fmt.Sprintf("spabuild-%s-*", timestamp))
	if err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	m.tempDir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.tempDir
}

// WriteFile writes data to name inside the workspace and returns its path.
func (m *Manager) WriteFile(name string, data []byte) (string, error) {
	if m.tempDir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	p := filepath.Join(m.tempDir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write workspace file: %w", err)
	}
	return p, nil
}

// Cleanup removes the workspace directory
func (m *Manager) Cleanup() error {
	if m.tempDir == "" {
		return nil
	}

	if err := os.RemoveAll(m.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}

	slog.Debug("Cleaned up workspace", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}
