package domain

import (
	"io"
	"iter"
)

// PathResolver turns a configured search path into a canonical absolute entry.
type PathResolver interface {
	Resolve(searchPath string) (ResolvedPath, error)
}

// FileDiscoverer enumerates YAML candidates under a resolved entry. The
// sequence is lazy: iteration stops touching the filesystem as soon as the
// consumer stops.
type FileDiscoverer interface {
	Discover(entry ResolvedPath, recursive bool) iter.Seq2[FileCandidate, error]
}

// FileOpener acquires the content stream of a candidate. Callers close it.
type FileOpener interface {
	Open(candidate FileCandidate) (io.ReadCloser, error)
}

// DocumentValidator parses a stream as a sequence of YAML documents. The
// sequence ends after the first invalid document.
type DocumentValidator interface {
	Documents(r io.Reader, allowDuplicateKeys bool) iter.Seq[DocumentResult]
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
	LoadFile(path string) (ProjectConfig, error)
}

// RevisionReader describes the version control state of a directory.
type RevisionReader interface {
	Revision(path string) (*Revision, error)
}

// Revision identifies the commit a run was performed against.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
}
