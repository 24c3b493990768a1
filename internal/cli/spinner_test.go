package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ghfetch/ghfetch/pkg/integrations/github"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(&buf, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("output = %q, want the message", buf.String())
	}
}

// waitStopped fails the test if the spinner goroutine is still running
// after the deadline.
func waitStopped(t *testing.T, s *Spinner) {
	t.Helper()
	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after its context ended")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, &syncBuffer{}, "Testing with context...")
	s.Start()

	cancel()
	waitStopped(t, s)
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, &syncBuffer{}, "Testing with timeout...")
	s.Start()

	waitStopped(t, s)
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(&syncBuffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestWithSpinnerSkipsNonTerminals(t *testing.T) {
	gh := &fakeGitHub{}
	if got := withSpinner(gh, &bytes.Buffer{}); got != gh {
		t.Error("withSpinner() should return the client unchanged for non-terminal writers")
	}
}

func TestSpinningGitHubDelegates(t *testing.T) {
	var buf syncBuffer
	gh := &fakeGitHub{}
	s := &spinningGitHub{GitHub: gh, w: &buf}

	e, err := s.Resolve(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if e.Kind() != github.KindUser {
		t.Errorf("Kind() = %v, want user", e.Kind())
	}
	if _, err := s.CountRepos(context.Background(), "octocat"); err != nil {
		t.Fatalf("CountRepos() error: %v", err)
	}
	if _, err := s.ListRepoNames(context.Background(), "octocat"); err != nil {
		t.Fatalf("ListRepoNames() error: %v", err)
	}
	if gh.calls != 3 {
		t.Errorf("calls = %d, want 3", gh.calls)
	}
}

type fakeGitHub struct{ calls int }

func (f *fakeGitHub) Resolve(_ context.Context, target string) (github.Entity, error) {
	f.calls++
	return &github.User{Login: target}, nil
}

func (f *fakeGitHub) CountRepos(context.Context, string) (int, error) {
	f.calls++
	return 3, nil
}

func (f *fakeGitHub) ListRepoNames(_ context.Context, owner string) ([]string, error) {
	f.calls++
	return []string{owner + "/a"}, nil
}
