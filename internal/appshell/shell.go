// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs a command with a context cancelled on SIGINT/SIGTERM and exits
// with its code. A second signal exits at once without waiting for the
// running phase to notice the cancellation.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(runWithSignals(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runWithSignals(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	finished := make(chan struct{})
	defer func() {
		signal.Stop(sigs)
		close(finished)
	}()
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-finished:
			return
		}
		select {
		case <-sigs:
			_, _ = io.WriteString(stderr, "interrupted twice, exiting\n")
			os.Exit(130)
		case <-finished:
		}
	}()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
