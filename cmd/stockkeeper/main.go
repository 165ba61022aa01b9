package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, a := newRootCmd()
	if err := execute(ctx, root, a); err != nil {
		stop()
		os.Exit(1)
	}
}
