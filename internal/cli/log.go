package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghfetch/ghfetch/pkg/pipeline"
)

// newLogger creates the stderr logger. Timestamps read "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a run and reports its summary at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the outcome counts and the elapsed time, rounded to the
// millisecond.
func (p *progress) done(sum *pipeline.Summary) {
	p.logger.Debug("run finished",
		"rendered", sum.Rendered,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		"elapsed", time.Since(p.start).Round(time.Millisecond),
	)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
