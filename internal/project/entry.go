package project

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/spabuild/internal/errors"
	"git.home.luguber.info/inful/spabuild/internal/logfields"
)

// EntryCandidates is the entry search order: conventional source locations
// first, then the same names at the project root.
var EntryCandidates = []string{
	"src/main.js",
	"src/index.js",
	"src/App.vue",
	"src/app.vue",
	"main.js",
	"index.js",
	"App.vue",
	"app.vue",
}

// EntryResolver locates the entry file of a project.
type EntryResolver struct {
	fsys       billy.Filesystem
	root       string
	candidates []string
	logger     *slog.Logger
}

// NewEntryResolver creates a resolver probing candidates under root.
// An empty candidate list selects EntryCandidates.
func NewEntryResolver(fsys billy.Filesystem, root string, candidates []string) *EntryResolver {
	if len(candidates) == 0 {
		candidates = EntryCandidates
	}
	return &EntryResolver{
		fsys:       fsys,
		root:       root,
		candidates: candidates,
		logger:     slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (r *EntryResolver) WithLogger(logger *slog.Logger) *EntryResolver {
	r.logger = logger
	return r
}

// Candidates returns the search order in use.
func (r *EntryResolver) Candidates() []string {
	return r.candidates
}

// Resolve returns explicit when it exists, otherwise the first existing candidate.
func (r *EntryResolver) Resolve(explicit string) (string, error) {
	if explicit != "" {
		ok, err := r.exists(explicit)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.EntryMissing(explicit)
		}
		r.logger.Debug("Using explicit entry", logfields.Entry(explicit))
		return explicit, nil
	}

	for _, candidate := range r.candidates {
		ok, err := r.exists(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			r.logger.Debug("Resolved entry", logfields.Entry(candidate))
			return candidate, nil
		}
	}

	return "", errors.EntryNotFound(r.root, r.candidates)
}

func (r *EntryResolver) exists(rel string) (bool, error) {
	p := resolve(r.root, rel)
	fi, err := r.fsys.Stat(p)
	switch {
	case err == nil:
		return !fi.IsDir(), nil
	case stdErrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.FileSystemError("stat", p, fmt.Errorf("stat entry: %w", err))
	}
}
