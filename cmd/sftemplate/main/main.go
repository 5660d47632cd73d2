package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jdcrensh/sftemplate/cmd/sftemplate"
	"github.com/jdcrensh/sftemplate/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := sftemplate.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		stop()
		os.Exit(1)
	}
}
