package fingerprint

import (
	stdErrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/spabuild/internal/fsutil"
)

// Store reads and writes the fingerprint side-file.
type Store struct {
	FS   billy.Filesystem
	Name string
}

// Path returns the side-file path inside dir.
func (s Store) Path(dir string) string {
	return filepath.Join(dir, s.Name)
}

// Read returns the stored fingerprint, or "" when there is none.
func (s Store) Read(dir string) (string, error) {
	data, err := fsutil.ReadFile(s.FS, s.Path(dir))
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Write replaces the stored fingerprint.
func (s Store) Write(dir, fingerprint string) error {
	return fsutil.WriteFile(s.FS, s.Path(dir), []byte(fingerprint))
}
