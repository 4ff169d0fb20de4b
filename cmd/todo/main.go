package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/biosecret/voice-todo/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Execute(ctx)
}
