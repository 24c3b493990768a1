package github

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/httputil"
	"github.com/ghfetch/ghfetch/pkg/integrations"
	"github.com/ghfetch/ghfetch/pkg/observability"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client resolves GitHub entities and derives their statistics.
// The embedded [integrations.Client] also serves avatar downloads.
type Client struct {
	*integrations.Client
	baseURL string
	retry   httputil.Policy
	logger  *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, GitHub Enterprise).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithRetryPolicy replaces the conflict retry policy.
func WithRetryPolicy(p httputil.Policy) Option {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger used for retry and pagination diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a GitHub API client. Pass an empty token for
// unauthenticated requests (60 requests/hour instead of 5000).
func NewClient(token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:  integrations.NewClient(timeout, integrations.APIHeaders(token)),
		baseURL: DefaultBaseURL,
		retry:   httputil.DefaultConflictPolicy(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// retryConflicts runs fn again while it fails with a 409 Conflict, bounded
// by the client's retry policy. Exhaustion returns the last Conflict error.
func (c *Client) retryConflicts(ctx context.Context, target string, fn func() error) error {
	p := c.retry
	p.OnRetry = func(n int, err error) {
		observability.Fetch().OnRetry(ctx, target, n, err)
		c.logger.Debug("conflict, retrying", "target", target, "retry", n, "max", c.retry.MaxRetries)
	}
	return httputil.Retry(ctx, p, func() error {
		err := fn()
		if ghferrors.Is(err, ghferrors.ErrCodeConflict) {
			return httputil.Retryable(err)
		}
		return err
	})
}

func (c *Client) userURL(login string) string {
	return c.baseURL + "/users/" + integrations.URLEncode(login)
}

func (c *Client) repoURL(owner, repo string) string {
	return c.baseURL + "/repos/" + integrations.URLEncode(owner) + "/" + integrations.URLEncode(repo)
}
