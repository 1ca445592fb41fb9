package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every typed error below matches exactly one of them
// through errors.Is.
var (
	ErrPathResolution = errors.New("path resolution failed")
	ErrSyntax         = errors.New("yaml syntax error")
	ErrDuplicateKey   = errors.New("duplicate mapping key")
	ErrInvariant      = errors.New("internal invariant violated")
	ErrRead           = errors.New("file could not be read")
)

// PathResolutionError reports a search path that does not exist, cannot be
// inspected, or is neither a regular file nor a directory. It aborts the run.
type PathResolutionError struct {
	SearchPath string
	Reason     string
	Err        error
}

func (e *PathResolutionError) Error() string {
	msg := fmt.Sprintf("resolving search path %q: %s", e.SearchPath, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PathResolutionError) Unwrap() error { return e.Err }

func (e *PathResolutionError) Is(target error) bool { return target == ErrPathResolution }

// SyntaxError reports a document that could not be parsed.
type SyntaxError struct {
	Document int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("document %d: %s", e.Document, e.Message)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// DuplicateKeyError reports a mapping that repeats a key while duplicates
// are disallowed.
type DuplicateKeyError struct {
	Document  int
	Key       string
	Line      int
	FirstLine int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("document %d: line %d: mapping key %q already defined at line %d",
		e.Document, e.Line, e.Key, e.FirstLine)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// InvariantError reports an unexpected filesystem shape. It aborts the run.
type InvariantError struct {
	Path    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal error at %q: %s", e.Path, e.Message)
}

func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

// ReadError reports a candidate whose content could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

// FileError is the failure of a run: the offending file and its cause.
type FileError struct {
	Path     string
	Document int
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("validation of YAML file '%s' failed: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
