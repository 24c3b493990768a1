package github

import (
	"strings"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
)

// Wildcard is the repository part of a target that expands to every
// repository of an owner.
const Wildcard = "*"

// IsRepoTarget reports whether target names a repository ("owner/name").
// Anything without a slash is a user or organization.
func IsRepoTarget(target string) bool {
	return strings.Contains(target, "/")
}

// IsWildcard reports whether target is "owner/*".
func IsWildcard(target string) bool {
	_, repo, ok := strings.Cut(target, "/")
	return ok && repo == Wildcard
}

// ParseRepoRef splits an "owner/repo" target and validates both parts.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	if err := ghferrors.ValidateTarget(ref, true); err != nil {
		return "", "", err
	}
	owner, repo, ok := strings.Cut(ref, "/")
	if !ok {
		return "", "", ghferrors.New(ghferrors.ErrCodeInvalidInput, "invalid repo format: use owner/repo")
	}
	return owner, repo, nil
}
