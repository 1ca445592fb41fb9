package domain

import (
	"path/filepath"
	"strings"
)

// YAML filename suffixes. Matching is exact and case-sensitive.
const (
	SuffixYAML = ".yaml"
	SuffixYML  = ".yml"
)

// ValidationConfig holds the inputs of one validation run.
type ValidationConfig struct {
	// SearchPaths are visited in order; the order defines traversal order.
	SearchPaths        []string `json:"search_paths"`
	AllowDuplicateKeys bool     `json:"allow_duplicate_keys"`
	Recursive          bool     `json:"recursive"`
}

// EntryKind distinguishes the two filesystem shapes a search path may resolve to.
type EntryKind string

const (
	EntryFile      EntryKind = "file"
	EntryDirectory EntryKind = "directory"
)

// ResolvedPath is a search path turned into a canonical absolute entry.
type ResolvedPath struct {
	SearchPath string    `json:"search_path"`
	Path       string    `json:"path"`
	Kind       EntryKind `json:"kind"`
}

// FileCandidate is a discovered file that may be validated.
type FileCandidate struct {
	Path   string `json:"path"`
	IsYAML bool   `json:"is_yaml"`
}

// NewFileCandidate builds a candidate for an absolute path. A path without
// a filename component cannot be classified and is reported as an
// InvariantError.
func NewFileCandidate(path string) (FileCandidate, error) {
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return FileCandidate{}, &InvariantError{
			Path:    path,
			Message: "path has no filename component",
		}
	}
	return FileCandidate{Path: path, IsYAML: IsYAMLFileName(name)}, nil
}

// IsYAMLFileName reports whether name ends in .yaml or .yml.
func IsYAMLFileName(name string) bool {
	return strings.HasSuffix(name, SuffixYAML) || strings.HasSuffix(name, SuffixYML)
}

// DocumentResult is the outcome of one document within a file.
// Index is one-based.
type DocumentResult struct {
	Index int    `json:"index"`
	Valid bool   `json:"valid"`
	Cause string `json:"cause,omitempty"`
	Err   error  `json:"-"`
}

// ValidDocument returns a successful result for the document at index.
func ValidDocument(index int) DocumentResult {
	return DocumentResult{Index: index, Valid: true}
}

// InvalidDocument returns a failed result carrying err as its cause.
func InvalidDocument(index int, err error) DocumentResult {
	return DocumentResult{Index: index, Cause: err.Error(), Err: err}
}

// FileOutcome is the result of validating one file. Documents holds every
// result produced before the file stopped, including the failing one.
type FileOutcome struct {
	Path      string           `json:"path"`
	Documents []DocumentResult `json:"documents"`
	Success   bool             `json:"success"`
	Document  int              `json:"failed_document,omitempty"`
	Cause     string           `json:"cause,omitempty"`
	Err       error            `json:"-"`
}

// Fail marks the outcome failed. document is zero when the failure is not
// tied to a document (for example, the file could not be read).
func (o *FileOutcome) Fail(document int, err error) {
	o.Success = false
	o.Document = document
	o.Err = err
	o.Cause = err.Error()
}

// RunOutcome is the terminal result of a run.
type RunOutcome struct {
	State   RunState      `json:"status"`
	Files   []FileOutcome `json:"files"`
	Failure *FileOutcome  `json:"failure,omitempty"`
}

// Succeeded reports whether every evaluated file passed.
func (r *RunOutcome) Succeeded() bool {
	return r.State == StateSucceeded
}

// Err returns the failure of the run as an error, or nil on success.
func (r *RunOutcome) Err() error {
	if r.Failure == nil {
		return nil
	}
	return &FileError{
		Path:     r.Failure.Path,
		Document: r.Failure.Document,
		Err:      r.Failure.Err,
	}
}
