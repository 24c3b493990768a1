package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/httputil"
	"github.com/ghfetch/ghfetch/pkg/observability"
)

// Client issues single HTTP requests against the GitHub API and maps
// non-200 answers to error kinds. It holds no per-request state.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given timeout and default headers.
// Headers are applied to all API requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: headers,
	}
}

// APIHeaders returns the default GitHub API headers. The Authorization
// header is only present when token is non-empty.
func APIHeaders(token string) map[string]string {
	h := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": userAgent,
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// Response is a successful (200) API answer, fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode JSON-decodes the body into v. A malformed body is an
// [ghferrors.ErrCodeUnmapped] error.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "decode response")
	}
	return nil
}

// Links returns the relation → URL map of the response's Link header.
func (r *Response) Links() map[string]string {
	return ParseLink(r.Header.Get("Link"))
}

// Call performs one request and returns the response when the status is 200.
// Any other status is mapped by [ghferrors.FromStatus]; transport failures
// become TIMEOUT or NETWORK_ERROR.
func (c *Client) Call(ctx context.Context, method, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, ghferrors.Wrap(ghferrors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if e := ghferrors.FromStatus(resp.StatusCode, rawURL); e != nil {
		return nil, e
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err, rawURL)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	resp, err := c.Call(ctx, http.MethodGet, rawURL)
	if err != nil {
		return err
	}
	return resp.Decode(v)
}

// Download fetches raw bytes (an avatar image) from rawURL. API headers are
// not sent. Server errors and connection failures are retried with
// [httputil.RetryWithBackoff].
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return ghferrors.Wrap(ghferrors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.do(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return httputil.Retryable(err)
		}
		defer resp.Body.Close()

		if e := ghferrors.FromStatus(resp.StatusCode, rawURL); e != nil {
			if resp.StatusCode >= 500 {
				return httputil.Retryable(e)
			}
			return e
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return httputil.Retryable(transportError(err, rawURL))
		}
		return nil
	})
	return data, err
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, transportError(err, req.URL.String())
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func transportError(err error, rawURL string) error {
	if isTimeout(err) {
		return ghferrors.Wrap(ghferrors.ErrCodeTimeout, err, "request to %s timed out", rawURL)
	}
	return ghferrors.Wrap(ghferrors.ErrCodeNetwork, err, "request to %s failed", rawURL)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
