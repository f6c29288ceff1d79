package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codemerge/cmd"
)

func main() {
	// A single interrupt stops issuing new read tasks and lets in-flight
	// reads drain; finalized output units are kept, the unfinished one is
	// never written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
