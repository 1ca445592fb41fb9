package resolver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// PathResolver implements domain.PathResolver against the local filesystem.
// Relative search paths are resolved against its base directory.
type PathResolver struct {
	baseDir string
}

// New creates a resolver rooted at baseDir. An empty baseDir means the
// current working directory.
func New(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

func (r *PathResolver) Resolve(searchPath string) (domain.ResolvedPath, error) {
	p := searchPath
	if !filepath.IsAbs(p) && r.baseDir != "" {
		p = filepath.Join(r.baseDir, p)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return domain.ResolvedPath{}, resolutionError(searchPath, "cannot make path absolute", err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ResolvedPath{}, resolutionError(searchPath, "does not exist", err)
		}
		return domain.ResolvedPath{}, resolutionError(searchPath, "cannot resolve symlinks", err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return domain.ResolvedPath{}, resolutionError(searchPath, "cannot stat", err)
	}

	resolved := domain.ResolvedPath{SearchPath: searchPath, Path: canonical}
	switch {
	case info.IsDir():
		resolved.Kind = domain.EntryDirectory
	case info.Mode().IsRegular():
		resolved.Kind = domain.EntryFile
	default:
		return domain.ResolvedPath{}, resolutionError(searchPath, "is neither a regular file nor a directory", nil)
	}
	return resolved, nil
}

func resolutionError(searchPath, reason string, err error) error {
	return &domain.PathResolutionError{SearchPath: searchPath, Reason: reason, Err: err}
}
