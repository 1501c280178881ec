package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"opkit/cmd/opkit/commands"
	"opkit/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "opkit:", err)
	}
	os.Exit(domain.ExitCode(err))
}
