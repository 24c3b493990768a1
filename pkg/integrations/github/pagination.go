package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/integrations"
	"github.com/ghfetch/ghfetch/pkg/observability"
)

// maxPages caps a single list traversal.
const maxPages = 1000

// ListPaginated fetches rawURL and follows rel="next" links until none is
// left, concatenating the JSON array pages in server order. The first
// failing page aborts the traversal with its error.
func ListPaginated[T any](ctx context.Context, c *Client, rawURL string) ([]T, error) {
	var items []T
	next := rawURL
	for page := 1; next != ""; page++ {
		if page > maxPages {
			return nil, ghferrors.New(ghferrors.ErrCodeUnmapped, "pagination of %s exceeded %d pages", rawURL, maxPages)
		}
		resp, err := c.Call(ctx, http.MethodGet, next)
		if err != nil {
			return nil, err
		}
		var batch []T
		if err := resp.Decode(&batch); err != nil {
			return nil, err
		}
		observability.Fetch().OnPage(ctx, next, page, len(batch))
		c.logger.Debug("fetched page", "url", next, "page", page, "items", len(batch))

		items = append(items, batch...)
		next = resp.Links()["next"]
	}
	return items, nil
}

// CountViaPagination counts the items of a list endpoint with a single
// request: it asks for one item per page and reads the page number of the
// rel="last" link. A response without a Link header is a complete list and
// its length is the count. A Link header that lacks rel="last" is an
// UNMAPPED error, since the count cannot be derived from it.
func (c *Client) CountViaPagination(ctx context.Context, rawURL string) (int, error) {
	u, err := integrations.WithQuery(rawURL, "per_page", "1")
	if err != nil {
		return 0, ghferrors.Wrap(ghferrors.ErrCodeInvalidInput, err, "parse %s", rawURL)
	}
	resp, err := c.Call(ctx, http.MethodGet, u)
	if err != nil {
		return 0, err
	}

	if resp.Header.Get("Link") == "" {
		var items []json.RawMessage
		if err := resp.Decode(&items); err != nil {
			return 0, err
		}
		return len(items), nil
	}

	last, ok := resp.Links()["last"]
	if !ok {
		return 0, ghferrors.New(ghferrors.ErrCodeUnmapped, "missing last page relation in %s", u)
	}
	n, err := lastPage(last)
	if err != nil {
		return 0, ghferrors.Wrap(ghferrors.ErrCodeUnmapped, err, "unparsable last page relation %q", last)
	}
	return n, nil
}

func lastPage(rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// CountRepos returns the number of public repositories of owner.
func (c *Client) CountRepos(ctx context.Context, owner string) (int, error) {
	return c.CountViaPagination(ctx, c.userURL(owner)+"/repos")
}

// CountCommits returns the number of commits on the default branch of
// owner/repo. Conflicts are retried like entity lookups.
func (c *Client) CountCommits(ctx context.Context, owner, repo string) (int, error) {
	var n int
	err := c.retryConflicts(ctx, owner+"/"+repo, func() error {
		var err error
		n, err = c.CountViaPagination(ctx, c.repoURL(owner, repo)+"/commits")
		return err
	})
	return n, err
}

// ListRepoNames returns the "owner/name" of every public repository of owner,
// in server order.
func (c *Client) ListRepoNames(ctx context.Context, owner string) ([]string, error) {
	repos, err := ListPaginated[apiRepoName](ctx, c, c.userURL(owner)+"/repos?per_page=100")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		if r.FullName != "" {
			names = append(names, r.FullName)
		}
	}
	return names, nil
}
