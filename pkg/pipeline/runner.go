package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/integrations/github"
	"github.com/ghfetch/ghfetch/pkg/render"
	"github.com/ghfetch/ghfetch/pkg/render/layout"
)

// GitHub is the part of [github.Client] the runner needs.
type GitHub interface {
	Resolve(ctx context.Context, target string) (github.Entity, error)
	CountRepos(ctx context.Context, owner string) (int, error)
	ListRepoNames(ctx context.Context, owner string) ([]string, error)
}

// Renderer draws an avatar.
type Renderer interface {
	Render(ctx context.Context, imageURL string) (*render.Canvas, error)
}

// Confirmer asks the user a yes/no question. Anything but an explicit yes
// must return false.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Runner processes targets one after the other and prints their canvases.
type Runner struct {
	GitHub   GitHub
	Renderer Renderer
	Styles   layout.Styles
	Out      io.Writer
	Logger   *log.Logger

	// Confirmer is asked before large wildcard expansions. A nil Confirmer
	// declines.
	Confirmer Confirmer

	// ConfirmThreshold overrides DefaultConfirmThreshold when positive.
	ConfirmThreshold int
}

// NewRunner creates a runner printing to out.
// If logger is nil, log.Default() is used.
func NewRunner(gh GitHub, r Renderer, out io.Writer, logger *log.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		GitHub:   gh,
		Renderer: r,
		Styles:   layout.NewStyles(nil),
		Out:      out,
		Logger:   logger,
	}
}

// Run processes opts.Targets in order. A malformed target fails on its own
// like any other target. The returned error is non-nil only when the run
// was aborted (no targets, rate limit, authorization, cancellation); the
// summary reflects the targets handled until then.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	sum := &Summary{}
	for _, target := range opts.Targets {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		var err error
		if verr := ghferrors.ValidateTarget(target, true); verr != nil {
			err = r.fail(ctx, target, verr, sum)
		} else if github.IsWildcard(target) {
			err = r.expand(ctx, target, opts, sum)
		} else {
			err = r.process(ctx, target, sum)
		}
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// Fetch resolves, renders and composes a single target without printing it.
func (r *Runner) Fetch(ctx context.Context, target string) (*render.Canvas, error) {
	e, err := r.GitHub.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	c, err := r.Renderer.Render(ctx, e.Base().AvatarURL)
	if err != nil {
		return nil, err
	}
	layout.Compose(c, e, r.Styles)
	return c, nil
}

func (r *Runner) process(ctx context.Context, target string, sum *Summary) error {
	start := time.Now()
	c, err := r.Fetch(ctx, target)
	if err != nil {
		return r.fail(ctx, target, err, sum)
	}
	if _, err := c.WriteTo(r.Out); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	sum.Rendered++
	r.Logger.Debug("rendered", "target", target, "rows", c.Len(), "duration", time.Since(start))
	return nil
}

// fail reports a failed target. Errors that would repeat for every later
// target, and the end of ctx, abort the run; the rest are printed. A request
// timeout only fails its own target.
func (r *Runner) fail(ctx context.Context, target string, err error, sum *Summary) error {
	sum.Failed++
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if ghferrors.Fatal(err) {
		return err
	}
	r.Logger.Debug("target failed", "target", target, "err", err)
	fmt.Fprintf(r.Out, "%s: %s\n", target, ghferrors.Describe(err))
	return nil
}

func (r *Runner) expand(ctx context.Context, target string, opts Options, sum *Summary) error {
	owner, _, err := github.ParseRepoRef(target)
	if err != nil {
		return r.fail(ctx, target, err, sum)
	}

	if !opts.Execute {
		names, err := r.GitHub.ListRepoNames(ctx, owner)
		if err != nil {
			return r.fail(ctx, target, err, sum)
		}
		for _, name := range names {
			fmt.Fprintln(r.Out, name)
		}
		return nil
	}

	if !opts.SkipConfirm {
		n, err := r.GitHub.CountRepos(ctx, owner)
		if err != nil {
			return r.fail(ctx, target, err, sum)
		}
		if n > r.threshold() {
			ok, err := r.confirm(ctx, fmt.Sprintf("%s has %d repositories. Render all of them?", owner, n))
			if err != nil {
				return err
			}
			if !ok {
				sum.Skipped++
				r.Logger.Info("skipped", "owner", owner, "repos", n)
				return nil
			}
		}
	}

	names, err := r.GitHub.ListRepoNames(ctx, owner)
	if err != nil {
		return r.fail(ctx, target, err, sum)
	}
	r.Logger.Debug("expanded wildcard", "owner", owner, "repos", len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.process(ctx, name, sum); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) threshold() int {
	if r.ConfirmThreshold > 0 {
		return r.ConfirmThreshold
	}
	return DefaultConfirmThreshold
}

// confirm asks the Confirmer. Prompt failures count as "no" unless the
// context is done.
func (r *Runner) confirm(ctx context.Context, question string) (bool, error) {
	if r.Confirmer == nil {
		return false, nil
	}
	ok, err := r.Confirmer.Confirm(ctx, question)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		r.Logger.Debug("confirmation failed", "err", err)
		return false, nil
	}
	return ok, nil
}
