package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/ghfetch/ghfetch/pkg/integrations/github"
	"github.com/ghfetch/ghfetch/pkg/pipeline"
)

// Spinner provides a simple progress indicator with context cancellation support.
type Spinner struct {
	message string
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	mu      sync.Mutex
	once    sync.Once
}

// newSpinner creates a new spinner with the given message.
func newSpinner(w io.Writer, message string) *Spinner {
	return newSpinnerWithContext(context.Background(), w, message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		w:       w,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Stop stops the spinner and clears the line. It must follow Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		s.cancel()
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// =============================================================================
// Spinning GitHub client
// =============================================================================

// spinningGitHub shows a spinner on w while lookups are in flight.
type spinningGitHub struct {
	pipeline.GitHub
	w io.Writer
}

// withSpinner decorates gh with a spinner when w is a terminal and returns
// gh unchanged otherwise.
func withSpinner(gh pipeline.GitHub, w io.Writer) pipeline.GitHub {
	if !isTerminal(w) {
		return gh
	}
	return &spinningGitHub{GitHub: gh, w: w}
}

func (s *spinningGitHub) Resolve(ctx context.Context, target string) (github.Entity, error) {
	sp := newSpinnerWithContext(ctx, s.w, "Fetching "+target+"...")
	sp.Start()
	defer sp.Stop()
	return s.GitHub.Resolve(ctx, target)
}

func (s *spinningGitHub) CountRepos(ctx context.Context, owner string) (int, error) {
	sp := newSpinnerWithContext(ctx, s.w, "Counting repositories of "+owner+"...")
	sp.Start()
	defer sp.Stop()
	return s.GitHub.CountRepos(ctx, owner)
}

func (s *spinningGitHub) ListRepoNames(ctx context.Context, owner string) ([]string, error) {
	sp := newSpinnerWithContext(ctx, s.w, "Listing repositories of "+owner+"...")
	sp.Start()
	defer sp.Stop()
	return s.GitHub.ListRepoNames(ctx, owner)
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
