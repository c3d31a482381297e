package main

import (
	"archivuelo/cmd"
	"archivuelo/cmd/cmd_env"
	"archivuelo/filter"
	L "archivuelo/logger"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := cmd.Execute(ctx, os.Args[:])

	select {
	case <-ctx.Done():
		L.Debug("Command execution was aborted.")
	default:
		L.Debug("Command execution complete.")
	}
	code := exitCode(err)
	if err != nil {
		if errors.Is(err, cmd_env.ErrAborted) {
			L.Warn(err)
		} else {
			L.Error(err)
		}
	}
	cancel()
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, filter.ErrInvalidFilterValue):
		return 2
	default:
		return 1
	}
}
