// Package pipeline runs ghfetch over a batch of targets.
//
// Each target goes through the same three stages, strictly one target at a
// time:
//
//  1. Resolve: look the user, organization, or repository up on GitHub
//  2. Render: draw the avatar as a block-glyph canvas
//  3. Compose: write the entity's fields next to the art and print it
//
// A target "owner/*" stands for every repository of owner. Without
// Execute the repository names are only listed; with Execute each one is
// rendered, after a confirmation when there are more than
// [DefaultConfirmThreshold] of them (unless SkipConfirm is set).
//
// # Usage
//
//	runner := pipeline.NewRunner(client, renderer, os.Stdout, logger)
//	runner.Confirmer = prompt
//	summary, err := runner.Run(ctx, pipeline.Options{
//	    Targets: []string{"octocat", "golang/*"},
//	    Execute: true,
//	})
//
// # Errors
//
// Rate limiting and authorization failures stop the whole run, since every
// later request would fail the same way; Run returns them. Any other failure
// prints one message for that target and the run moves on.
package pipeline

import (
	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
)

// DefaultConfirmThreshold is the repository count above which expanding
// "owner/*" asks for confirmation.
const DefaultConfirmThreshold = 20

// Options configures a single [Runner.Run].
type Options struct {
	// Targets are user, organization, "owner/repo" or "owner/*" names.
	Targets []string

	// Execute renders every repository of a wildcard target instead of
	// listing their names.
	Execute bool

	// SkipConfirm renders large wildcard expansions without asking.
	SkipConfirm bool
}

// Validate checks that there is something to do. Each target is validated
// when its turn comes, so a malformed one fails alone.
func (o Options) Validate() error {
	if len(o.Targets) == 0 {
		return ghferrors.New(ghferrors.ErrCodeInvalidInput, "at least one target is required")
	}
	return nil
}

// Summary counts what happened to the targets of a run. Wildcard targets
// count once per expanded repository.
type Summary struct {
	Rendered int
	Failed   int
	Skipped  int
}

// Total returns the number of targets that reached an outcome.
func (s Summary) Total() int { return s.Rendered + s.Failed + s.Skipped }
