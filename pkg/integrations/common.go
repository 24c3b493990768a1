package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ghfetch/ghfetch/pkg/buildinfo"
)

// DefaultTimeout is the HTTP timeout used when none is configured.
const DefaultTimeout = 10 * time.Second

var userAgent = "ghfetch/" + buildinfo.Version

// NewHTTPClient creates an HTTP client with the given timeout, falling back
// to [DefaultTimeout] when timeout is not positive.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// ParseLink parses a Link header ("<url>; rel=\"next\", <url>; rel=\"last\"")
// into a relation → URL map. Unparsable entries are skipped; an empty header
// yields an empty map.
func ParseLink(header string) map[string]string {
	links := make(map[string]string)
	for _, entry := range splitOutsideBrackets(header) {
		entry = strings.TrimSpace(entry)
		if !strings.HasPrefix(entry, "<") {
			continue
		}
		end := strings.Index(entry, ">")
		if end < 0 {
			continue
		}
		target := entry[1:end]
		for _, param := range strings.Split(entry[end+1:], ";") {
			key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
				continue
			}
			for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(val), `"`)) {
				links[strings.ToLower(rel)] = target
			}
		}
	}
	return links
}

// splitOutsideBrackets splits s on commas that are not inside <...>.
func splitOutsideBrackets(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// WithQuery returns rawURL with key set to value, replacing any existing
// value for key.
func WithQuery(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// URLEncode percent-encodes a string for use in URL paths.
// This is a convenience wrapper around [url.PathEscape].
func URLEncode(s string) string { return url.PathEscape(s) }
