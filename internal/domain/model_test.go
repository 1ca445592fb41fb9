package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

func TestIsYAMLFileName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"app.yaml", true},
		{"app.yml", true},
		{"app.YAML", false},
		{"app.Yml", false},
		{"app.yaml.bak", false},
		{"file.txt", false},
		{"yaml", false},
		{".yml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsYAMLFileName(tt.name))
		})
	}
}

func TestNewFileCandidate(t *testing.T) {
	c, err := domain.NewFileCandidate("/srv/config/app.yml")
	require.NoError(t, err)
	assert.Equal(t, "/srv/config/app.yml", c.Path)
	assert.True(t, c.IsYAML)

	c, err = domain.NewFileCandidate("/srv/config/notes.txt")
	require.NoError(t, err)
	assert.False(t, c.IsYAML)
}

func TestNewFileCandidate_NoFilenameIsInvariantError(t *testing.T) {
	_, err := domain.NewFileCandidate("/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvariant))

	var invErr *domain.InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "/", invErr.Path)
}

func TestFileOutcome_Fail(t *testing.T) {
	cause := &domain.SyntaxError{Document: 2, Message: "did not find expected key"}
	o := domain.FileOutcome{Path: "/a.yaml", Success: true}
	o.Fail(2, cause)

	assert.False(t, o.Success)
	assert.Equal(t, 2, o.Document)
	assert.Equal(t, cause.Error(), o.Cause)
	assert.Same(t, cause, o.Err)
}

func TestRunOutcome_Err(t *testing.T) {
	run := &domain.RunOutcome{State: domain.StateSucceeded}
	assert.True(t, run.Succeeded())
	assert.NoError(t, run.Err())

	cause := &domain.DuplicateKeyError{Document: 1, Key: "framework", Line: 4, FirstLine: 1}
	failed := domain.FileOutcome{Path: "/cfg/app.yaml"}
	failed.Fail(1, cause)
	run = &domain.RunOutcome{State: domain.StateFailed, Files: []domain.FileOutcome{failed}, Failure: &failed}

	assert.False(t, run.Succeeded())
	err := run.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))

	var fileErr *domain.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "/cfg/app.yaml", fileErr.Path)
	assert.Equal(t, 1, fileErr.Document)
	assert.Contains(t, err.Error(), "/cfg/app.yaml")
}

func TestDocumentResults(t *testing.T) {
	ok := domain.ValidDocument(3)
	assert.Equal(t, 3, ok.Index)
	assert.True(t, ok.Valid)
	assert.Nil(t, ok.Err)

	bad := domain.InvalidDocument(4, &domain.SyntaxError{Document: 4, Message: "oops"})
	assert.False(t, bad.Valid)
	assert.Equal(t, "document 4: oops", bad.Cause)
	assert.ErrorIs(t, bad.Err, domain.ErrSyntax)
}
