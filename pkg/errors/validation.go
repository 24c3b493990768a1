package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxTargetLength bounds a target; GitHub logins are 39 characters and
// repository names 100.
const maxTargetLength = 256

// namePattern matches a single GitHub login or repository name segment.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateTarget checks that target names a user, organization, or
// repository (owner/name). When allowWildcard is set, "owner/*" is accepted too.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - At most one slash
//   - No path traversal sequences (..)
func ValidateTarget(target string, allowWildcard bool) error {
	if target == "" {
		return New(ErrCodeInvalidInput, "target cannot be empty")
	}

	if len(target) > maxTargetLength {
		return New(ErrCodeInvalidInput, "target too long (max %d characters)", maxTargetLength)
	}

	for _, r := range target {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "target contains invalid control characters")
		}
	}

	if strings.Contains(target, "..") {
		return New(ErrCodeInvalidInput, "target cannot contain path traversal sequences (..)")
	}

	parts := strings.Split(target, "/")
	if len(parts) > 2 {
		return New(ErrCodeInvalidInput, "target %q must be a name or owner/repo", target)
	}
	for i, p := range parts {
		if i == 1 && p == "*" && allowWildcard {
			continue
		}
		if !namePattern.MatchString(p) {
			return New(ErrCodeInvalidInput, "invalid name %q in target %q", p, target)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
