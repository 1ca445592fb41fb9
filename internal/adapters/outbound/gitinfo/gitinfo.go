package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// GitInfoAdapter implements domain.RevisionReader using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// Revision reports the HEAD commit of the repository containing path.
// Parent directories are searched for the .git directory.
func (g *GitInfoAdapter) Revision(path string) (*domain.Revision, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	rev := &domain.Revision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}
