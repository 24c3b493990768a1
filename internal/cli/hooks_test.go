package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		fire func(*logHooks)
		want []string
	}{
		{"resolve", func(h *logHooks) { h.OnResolveStart(ctx, "octocat") }, []string{"resolve", "octocat"}},
		{"resolved", func(h *logHooks) { h.OnResolveComplete(ctx, "octocat", "user", time.Second, nil) }, []string{"resolved", "kind=user"}},
		{"resolve failed", func(h *logHooks) {
			h.OnResolveComplete(ctx, "ghost", "", time.Second, errors.New("boom"))
		}, []string{"resolve failed", "boom"}},
		{"retry", func(h *logHooks) { h.OnRetry(ctx, "o/r", 2, errors.New("409")) }, []string{"retry=2"}},
		{"page", func(h *logHooks) { h.OnPage(ctx, "https://x/repos", 3, 100) }, []string{"page=3", "items=100"}},
		{"render", func(h *logHooks) { h.OnRenderStart(ctx, "https://a/1.png") }, []string{"render", "https://a/1.png"}},
		{"rendered", func(h *logHooks) {
			h.OnRenderComplete(ctx, "https://a/1.png", 15, time.Millisecond, nil)
		}, []string{"rendered avatar", "rows=15"}},
		{"request", func(h *logHooks) { h.OnRequest(ctx, "GET", "api.github.com", "/users/x") }, []string{"request", "path=/users/x"}},
		{"response", func(h *logHooks) {
			h.OnResponse(ctx, "GET", "api.github.com", "/users/x", 200, time.Millisecond)
		}, []string{"status=200"}},
		{"error", func(h *logHooks) {
			h.OnError(ctx, "GET", "api.github.com", "/users/x", errors.New("reset"))
		}, []string{"request failed", "reset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fire(newLogHooks(newLogger(&buf, log.DebugLevel)))
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q does not contain %q", buf.String(), w)
				}
			}
		})
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.InfoLevel))
	h.OnRequest(context.Background(), "GET", "api.github.com", "/")
	if buf.Len() != 0 {
		t.Errorf("info-level logger wrote %q", buf.String())
	}
}
