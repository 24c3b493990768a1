package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ghfetch/ghfetch/internal/config"
	"github.com/ghfetch/ghfetch/pkg/buildinfo"
	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
	"github.com/ghfetch/ghfetch/pkg/integrations/github"
	"github.com/ghfetch/ghfetch/pkg/observability"
	"github.com/ghfetch/ghfetch/pkg/pipeline"
	"github.com/ghfetch/ghfetch/pkg/render"
	"github.com/ghfetch/ghfetch/pkg/render/layout"
)

const appName = "ghfetch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrAllFailed is returned when no target of a run could be fetched.
var ErrAllFailed = errors.New("no target could be fetched")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// Out receives the rendered canvases; Err receives logs, prompts and
	// the spinner.
	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		In:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

type rootFlags struct {
	token   string
	execute bool
	yes     bool
	verbose bool
	width   int
	noColor bool
	config  string
}

// RootCommand creates the ghfetch command.
func (c *CLI) RootCommand() *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   appName + " [flags] <target>...",
		Short: "ghfetch prints GitHub users, organizations and repositories next to their avatar",
		Long: `ghfetch looks up GitHub accounts and repositories and prints a summary of
each next to a block-art rendition of its avatar.

Targets:
  octocat              a user or organization
  golang/go            a repository
  golang/*             every repository of an owner (listed; rendered with -e)`,
		Example: `  ghfetch octocat
  ghfetch golang/go torvalds
  ghfetch -e -y charmbracelet/*`,
		Version:       buildinfo.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, f)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.Flags()
	flags.StringVarP(&f.token, "token", "t", "", "GitHub token (default $GITHUB_TOKEN)")
	flags.BoolVarP(&f.execute, "execute", "e", false, "render every repository of owner/* instead of listing them")
	flags.BoolVarP(&f.yes, "yes", "y", false, "skip the confirmation for large owner/* expansions")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	flags.IntVar(&f.width, "width", render.DefaultWidth, "avatar width in glyphs")
	flags.BoolVar(&f.noColor, "no-color", false, "disable ANSI colors")
	flags.StringVar(&f.config, "config", "", "config file (default "+config.DefaultConfigFile()+")")

	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) run(cmd *cobra.Command, args []string, f rootFlags) error {
	cfg, err := config.Load(config.Options{ConfigFile: f.config, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
		hooks := newLogHooks(c.Logger)
		observability.SetFetchHooks(hooks)
		observability.SetRenderHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
	if cfg.File != "" {
		c.Logger.Debug("config loaded", "file", cfg.File)
	}
	if err := cfg.EnsureTmpDir(); err != nil {
		return err
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	p := newProgress(loggerFromContext(ctx))
	runner := c.newRunner(cfg)
	sum, err := runner.Run(ctx, pipeline.Options{
		Targets:     args,
		Execute:     f.execute,
		SkipConfirm: f.yes,
	})
	if err != nil {
		return abort(err)
	}

	p.done(sum)
	if sum.Failed > 0 && sum.Failed == sum.Total() {
		return ErrAllFailed
	}
	return nil
}

// newRunner wires the GitHub client, avatar renderer and prompt into a
// pipeline runner.
func (c *CLI) newRunner(cfg *config.Config) *pipeline.Runner {
	client := github.NewClient(cfg.Token, cfg.Timeout,
		github.WithBaseURL(cfg.APIURL),
		github.WithRetryPolicy(cfg.Policy()),
		github.WithLogger(c.Logger),
	)

	lg := newLipgloss(c.Out, cfg.NoColor)
	renderer := render.NewRenderer(client,
		render.WithWidth(cfg.Width),
		render.WithTempDir(cfg.TmpDir),
		render.WithLipgloss(lg),
	)

	runner := pipeline.NewRunner(withSpinner(client, c.Err), renderer, c.Out, c.Logger)
	runner.Styles = layout.NewStyles(lg)
	runner.Confirmer = newPrompt(c.In, c.Err)
	runner.ConfirmThreshold = cfg.ConfirmThreshold
	return runner
}

// newLipgloss returns a renderer that emits true color whatever the output
// is, or no color at all with noColor.
func newLipgloss(w io.Writer, noColor bool) *lipgloss.Renderer {
	lg := lipgloss.NewRenderer(w)
	if noColor {
		lg.SetColorProfile(termenv.Ascii)
	} else {
		lg.SetColorProfile(termenv.TrueColor)
	}
	return lg
}

// abortError carries the cause of an aborted run with a user-facing message.
type abortError struct{ err error }

func abort(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &abortError{err: err}
}

func (e *abortError) Error() string {
	if ghferrors.GetCode(e.err) != "" {
		return ghferrors.Describe(e.err)
	}
	return fmt.Sprintf("aborted: %v", e.err)
}

func (e *abortError) Unwrap() error { return e.err }
