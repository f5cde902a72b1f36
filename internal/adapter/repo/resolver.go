// Package repo resolves the commit a sync run is scoped to from a local
// git checkout, so rendered issue bodies can link back to exact source
// lines.
package repo

import (
	"context"
	"fmt"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Resolver implements commit-SHA resolution against a local git checkout
// backed by go-git.
type Resolver struct {
	repoDir string
}

// NewResolver constructs a Resolver for the provided repository directory.
func NewResolver(repoDir string) *Resolver {
	return &Resolver{repoDir: repoDir}
}

// ResolveCommit returns the full commit hash ref points at. ref may be a
// branch name, tag, or any other git revision expression.
func (r *Resolver) ResolveCommit(ctx context.Context, ref string) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(r.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}

	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return hash.String(), nil
	}
	return "", fmt.Errorf("resolve ref %s: %w", ref, lastErr)
}

// HeadCommit returns the full commit hash of the checked-out HEAD.
func (r *Resolver) HeadCommit(ctx context.Context) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(r.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the name of the checked-out branch, or an error if
// HEAD is detached.
func (r *Resolver) CurrentBranch(ctx context.Context) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(r.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return "", fmt.Errorf("detached HEAD")
}
