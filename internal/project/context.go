// Package project holds the per-invocation project context and entry file discovery.
package project

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/spabuild/internal/errors"
)

// Context describes the project a single invocation operates on.
// It is created once by the dispatcher and passed by value; it is never mutated.
type Context struct {
	// Root is the absolute, cleaned project root directory.
	Root string
	// Entry is the entry file, relative to Root unless given as an absolute path.
	Entry string
	// IsLibrary is true for any explicit build target other than "app".
	IsLibrary bool
}

// NewContext builds a Context. A relative root is resolved against the
// process working directory exactly once, here.
func NewContext(root, entry string, isLibrary bool) (Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Context{}, err
	}
	return Context{Root: filepath.Clean(abs), Entry: entry, IsLibrary: isLibrary}, nil
}

// EntryPath returns the absolute path of the entry file.
func (c Context) EntryPath() string {
	return resolve(c.Root, c.Entry)
}

// Resolve joins p onto the project root unless p is already absolute.
func (c Context) Resolve(p string) string {
	return resolve(c.Root, p)
}

// CheckOutputDir rejects an output directory that is the project root or
// one of its ancestors. Cleaning such a directory would remove the sources.
func (c Context) CheckOutputDir(out string) error {
	root := filepath.Clean(c.Root)
	out = filepath.Clean(c.Resolve(out))
	if out == root {
		return errors.OutputIsRoot(c.Root)
	}
	rel, err := filepath.Rel(out, root)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.OutputIsRoot(c.Root).WithContext("output_dir", out)
	}
	return nil
}

// IsLibraryTarget reports whether target selects a library build.
func IsLibraryTarget(target string) bool {
	return target != "" && target != "app"
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
