package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"budgman/internal/cli"
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup ahead of os.Exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Main(ctx, os.Args[1:])
}
