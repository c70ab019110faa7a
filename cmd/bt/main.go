// Command bt runs queries on the backtracking kernel.
package main

import (
	"context"
	"os"
	"os/signal"
)

// Version is a version of this build.
var Version = "bt/0.1"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
