// Package fsutil provides the filesystem primitives the build gate and the
// engine share, on top of go-billy so they run against memfs in tests.
package fsutil

import (
	stdErrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// OS returns a filesystem addressing the host with absolute paths.
func OS() billy.Filesystem {
	return osfs.New(string(filepath.Separator))
}

// PathExists reports whether p exists (file or directory).
func PathExists(fsys billy.Basic, p string) (bool, error) {
	_, err := fsys.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case stdErrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", p, err)
	}
}

// EmptyDir removes every entry below dir. The directory is created when missing.
func EmptyDir(fsys billy.Filesystem, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return fsys.MkdirAll(dir, 0o755)
		}
		return fmt.Errorf("read dir %q: %w", dir, err)
	}
	for _, e := range entries {
		if err := util.RemoveAll(fsys, fsys.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove %q: %w", e.Name(), err)
		}
	}
	return nil
}

// ReadFile reads a whole file.
func ReadFile(fsys billy.Basic, p string) ([]byte, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// WriteFile replaces p with data.
func WriteFile(fsys billy.Basic, p string, data []byte) error {
	return util.WriteFile(fsys, p, data, 0o644)
}
