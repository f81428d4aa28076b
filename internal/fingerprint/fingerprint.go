package fingerprint

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"lukechampine.com/blake3"

	"git.home.luguber.info/inful/spabuild/internal/fsutil"
)

// Fingerprinter computes the digest of every regular file beneath a directory.
type Fingerprinter struct {
	FS billy.Filesystem
	// SideFile is skipped at the top level of the tree.
	SideFile string
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the tree root.
	Exclude []string
}

// New returns a Fingerprinter. Invalid exclude patterns are reported here
// rather than silently never matching.
func New(fs billy.Filesystem, sideFile string, exclude []string) (*Fingerprinter, error) {
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Fingerprinter{FS: fs, SideFile: sideFile, Exclude: exclude}, nil
}

// Compute returns the hex blake3-256 digest of the tree at dir. Files are
// visited in sorted path order and each is fed as its length-prefixed
// relative path followed by its length-prefixed content. A missing dir
// yields the digest of the empty tree.
func (f *Fingerprinter) Compute(dir string) (string, error) {
	files, err := f.collect(dir)
	if err != nil {
		return "", err
	}

	h := blake3.New(32, nil)
	for _, rel := range files {
		if err := f.feed(h, dir, rel); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (f *Fingerprinter) collect(dir string) ([]string, error) {
	exists, err := fsutil.PathExists(f.FS, dir)
	if err != nil || !exists {
		return nil, err
	}

	var files []string
	err = util.Walk(f.FS, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if f.excluded(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && rel != f.SideFile {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func (f *Fingerprinter) excluded(rel string) bool {
	for _, p := range f.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (f *Fingerprinter) feed(h hash.Hash, dir, rel string) error {
	writeLen(h, uint64(len(rel)))
	_, _ = io.WriteString(h, rel)

	file, err := f.FS.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer func() { _ = file.Close() }()

	info, err := f.FS.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}
	writeLen(h, uint64(info.Size()))
	if _, err := io.Copy(h, file); err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}
	return nil
}

func writeLen(w io.Writer, n uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	_, _ = w.Write(buf[:])
}
