package scanner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// errStopped ends a walk once the consumer stops iterating.
var errStopped = errors.New("discovery stopped")

// FileScanner implements domain.FileDiscoverer and domain.FileOpener by
// walking the local filesystem.
type FileScanner struct {
	followSymlinks bool
}

// Option configures a FileScanner.
type Option func(*FileScanner)

// WithFollowSymlinks makes recursive discovery descend into symlinked
// directories. Each real directory is still walked at most once.
func WithFollowSymlinks(follow bool) Option {
	return func(s *FileScanner) { s.followSymlinks = follow }
}

func New(opts ...Option) *FileScanner {
	s := &FileScanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover yields YAML candidates under entry. Directories are listed in
// lexical order; callers must not depend on it.
func (s *FileScanner) Discover(entry domain.ResolvedPath, recursive bool) iter.Seq2[domain.FileCandidate, error] {
	return func(yield func(domain.FileCandidate, error) bool) {
		switch entry.Kind {
		case domain.EntryFile:
			c, err := domain.NewFileCandidate(entry.Path)
			if err != nil {
				yield(domain.FileCandidate{}, err)
				return
			}
			if c.IsYAML {
				yield(c, nil)
			}
		case domain.EntryDirectory:
			if recursive {
				w := &walker{follow: s.followSymlinks, yield: yield, visited: make(map[string]bool)}
				w.run(entry.Path)
				return
			}
			list(entry.Path, yield)
		default:
			yield(domain.FileCandidate{}, &domain.InvariantError{
				Path:    entry.Path,
				Message: fmt.Sprintf("unknown entry kind %q", entry.Kind),
			})
		}
	}
}

// Open returns the content of a candidate. Failures are ReadErrors.
func (s *FileScanner) Open(c domain.FileCandidate) (io.ReadCloser, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, &domain.ReadError{Path: c.Path, Err: err}
	}
	return f, nil
}

// list yields the YAML files directly inside dir.
func list(dir string, yield func(domain.FileCandidate, error) bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		yield(domain.FileCandidate{}, listError(dir, err))
		return
	}
	for _, d := range entries {
		c, ok, err := candidateFor(filepath.Join(dir, d.Name()), d)
		if err != nil {
			yield(domain.FileCandidate{}, err)
			return
		}
		if ok && !yield(c, nil) {
			return
		}
	}
}

type walker struct {
	follow  bool
	yield   func(domain.FileCandidate, error) bool
	visited map[string]bool
	pending []string
}

// run walks root, then every symlinked directory found along the way that
// has not been walked yet.
func (w *walker) run(root string) {
	w.pending = append(w.pending, root)
	for len(w.pending) > 0 {
		next := w.pending[0]
		w.pending = w.pending[1:]
		if w.visited[next] {
			continue
		}

		err := w.walkTree(next)
		if errors.Is(err, errStopped) {
			return
		}
		if err != nil {
			w.yield(domain.FileCandidate{}, err)
			return
		}
	}
}

// walkTree visits the canonical directory root. Directories reached
// without crossing a symlink keep their canonical form, so they can be
// recorded as visited directly.
func (w *walker) walkTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return listError(path, err)
		}

		if d.IsDir() {
			if w.visited[path] {
				return filepath.SkipDir
			}
			w.visited[path] = true
			return nil
		}

		if w.follow && d.Type()&fs.ModeSymlink != 0 {
			if target, ok := linkedDir(path); ok {
				w.pending = append(w.pending, target)
				return nil
			}
		}

		c, ok, err := candidateFor(path, d)
		if err != nil {
			return err
		}
		if ok && !w.yield(c, nil) {
			return errStopped
		}
		return nil
	})
}

// candidateFor classifies a directory entry. Regular files and symlinks
// that do not lead to a directory qualify when their name is a YAML name.
// Broken symlinks qualify too; reading them fails at the file level.
func candidateFor(path string, d fs.DirEntry) (domain.FileCandidate, bool, error) {
	if d.IsDir() {
		return domain.FileCandidate{}, false, nil
	}

	c, err := domain.NewFileCandidate(path)
	if err != nil {
		return domain.FileCandidate{}, false, err
	}
	if !c.IsYAML {
		return domain.FileCandidate{}, false, nil
	}

	switch {
	case d.Type().IsRegular():
		return c, true, nil
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil {
			return c, true, nil
		}
		return c, info.Mode().IsRegular(), nil
	default:
		return domain.FileCandidate{}, false, nil
	}
}

func linkedDir(path string) (string, bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return target, true
}

func listError(dir string, err error) error {
	return &domain.PathResolutionError{SearchPath: dir, Reason: "cannot list directory", Err: err}
}
