package github

import (
	"context"
	"time"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/observability"
)

// Resolve looks up target and returns the normalized entity.
//
// A target containing "/" is a repository; anything else is a user or an
// organization, told apart by the account's type. 409 Conflict answers are
// retried from scratch under the client's retry policy; every other failure
// is returned unchanged. For repositories the language breakdown and the
// commit count are fetched too, and a failure there fails the whole lookup,
// except for the commit count of an empty repository, which stays nil.
func (c *Client) Resolve(ctx context.Context, target string) (Entity, error) {
	if err := ghferrors.ValidateTarget(target, false); err != nil {
		return nil, err
	}

	hooks := observability.Fetch()
	hooks.OnResolveStart(ctx, target)
	start := time.Now()

	var (
		e   Entity
		err error
	)
	if IsRepoTarget(target) {
		e, err = c.resolveRepo(ctx, target)
	} else {
		e, err = c.resolveAccount(ctx, target)
	}

	var kind string
	if err == nil {
		kind = string(e.Kind())
	}
	hooks.OnResolveComplete(ctx, target, kind, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (c *Client) fetch(ctx context.Context, target, url string, v any) error {
	return c.retryConflicts(ctx, target, func() error {
		return c.Get(ctx, url, v)
	})
}

func (c *Client) resolveAccount(ctx context.Context, login string) (Entity, error) {
	var a apiAccount
	if err := c.fetch(ctx, login, c.userURL(login), &a); err != nil {
		return nil, err
	}
	return accountEntity(&a)
}

func accountEntity(a *apiAccount) (Entity, error) {
	if a.Login == "" || a.HTMLURL == "" {
		return nil, ghferrors.New(ghferrors.ErrCodeUnmapped, "account response missing login or html_url")
	}
	common := Common{
		Name:      optional(a.Name),
		URL:       a.HTMLURL,
		CreatedAt: day(a.CreatedAt),
		AvatarURL: a.AvatarURL,
	}

	switch a.Type {
	case "User":
		return &User{
			Common:      common,
			Login:       a.Login,
			Bio:         optional(a.Bio),
			Location:    optional(a.Location),
			Email:       optional(a.Email),
			Company:     optional(a.Company),
			Website:     optional(a.Blog),
			Followers:   a.Followers,
			Following:   a.Following,
			PublicRepos: a.PublicRepos,
			PublicGists: a.PublicGists,
		}, nil
	case "Organization":
		return &Organization{
			Common:      common,
			Login:       a.Login,
			Bio:         optional(a.Bio),
			Location:    optional(a.Location),
			Email:       optional(a.Email),
			Website:     optional(a.Blog),
			Followers:   a.Followers,
			Following:   a.Following,
			PublicRepos: a.PublicRepos,
			PublicGists: a.PublicGists,
		}, nil
	default:
		return nil, ghferrors.New(ghferrors.ErrCodeUnmapped, "unknown account type %q for %s", a.Type, a.Login)
	}
}

func (c *Client) resolveRepo(ctx context.Context, target string) (Entity, error) {
	owner, name, err := ParseRepoRef(target)
	if err != nil {
		return nil, err
	}

	var r apiRepo
	if err := c.fetch(ctx, target, c.repoURL(owner, name), &r); err != nil {
		return nil, err
	}
	repo, err := repositoryEntity(&r)
	if err != nil {
		return nil, err
	}

	langURL := r.LanguagesURL
	if langURL == "" {
		langURL = c.repoURL(owner, name) + "/languages"
	}
	if repo.Languages, err = c.LanguagePercentages(ctx, langURL); err != nil {
		return nil, err
	}

	if repo.Commits, err = c.repoCommits(ctx, repo.Owner, r.Name, r.Size == 0); err != nil {
		return nil, err
	}
	return repo, nil
}

// repoCommits counts the commits of a repository. GitHub answers 409 for
// the commits of an empty repository, so when the repository reports no
// content a single conflict leaves the count unknown instead of failing.
func (c *Client) repoCommits(ctx context.Context, owner, name string, empty bool) (*int, error) {
	if !empty {
		n, err := c.CountCommits(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}

	n, err := c.CountViaPagination(ctx, c.repoURL(owner, name)+"/commits")
	if ghferrors.Is(err, ghferrors.ErrCodeConflict) {
		c.logger.Debug("empty repository, no commit count", "repo", owner+"/"+name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func repositoryEntity(r *apiRepo) (*Repository, error) {
	if r.Owner == nil || r.Owner.Login == "" || r.Name == "" || r.HTMLURL == "" {
		return nil, ghferrors.New(ghferrors.ErrCodeUnmapped, "repository response missing owner, name or html_url")
	}
	repo := &Repository{
		Common: Common{
			Name:      optional(r.Name),
			URL:       r.HTMLURL,
			CreatedAt: day(r.CreatedAt),
			AvatarURL: r.Owner.AvatarURL,
		},
		Owner:       r.Owner.Login,
		Description: optional(r.Description),
		Homepage:    optional(r.Homepage),
		Stars:       r.Stars,
		Watchers:    r.Watchers,
		Forks:       r.Forks,
		Archived:    r.Archived,
	}
	if r.License != nil {
		repo.License = optional(r.License.Name)
	}
	if r.Fork && r.Parent != nil {
		repo.ForkParent = optional(r.Parent.HTMLURL)
	}
	return repo, nil
}

// day truncates an RFC 3339 timestamp to its date.
func day(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
