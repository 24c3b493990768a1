package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghfetch/ghfetch/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx)
	code := cli.ExitCode(err)
	if err != nil && ctx.Err() != nil {
		code = cli.ExitInterrupt // Standard shell convention for SIGINT
	}
	cancel()
	os.Exit(code)
}
