package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghfetch/ghfetch/pkg/observability"
)

// logHooks logs every observability event at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.FetchHooks  = (*logHooks)(nil)
	_ observability.RenderHooks = (*logHooks)(nil)
	_ observability.HTTPHooks   = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnResolveStart(_ context.Context, target string) {
	h.logger.Debug("resolve", "target", target)
}

func (h *logHooks) OnResolveComplete(_ context.Context, target, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "target", target, "duration", d, "err", err)
		return
	}
	h.logger.Debug("resolved", "target", target, "kind", kind, "duration", d)
}

func (h *logHooks) OnRetry(_ context.Context, target string, retry int, err error) {
	h.logger.Debug("retry", "target", target, "retry", retry, "err", err)
}

func (h *logHooks) OnPage(_ context.Context, url string, page, items int) {
	h.logger.Debug("page", "url", url, "page", page, "items", items)
}

func (h *logHooks) OnRenderStart(_ context.Context, imageURL string) {
	h.logger.Debug("render", "image", imageURL)
}

func (h *logHooks) OnRenderComplete(_ context.Context, imageURL string, rows int, d time.Duration, err error) {
	h.logger.Debug("rendered avatar", "image", imageURL, "rows", rows, "duration", d, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}
