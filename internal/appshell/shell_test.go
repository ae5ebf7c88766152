package appshell

import (
	"context"
	"io"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestNoArgsShowsHelp(t *testing.T) {
	var got []string
	code := runWithSignals(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	if code != 0 || len(got) != 1 || got[0] != "-h" {
		t.Fatalf("code=%d argv=%v", code, got)
	}
}

func TestInterruptCancelsAndNormalizesExit(t *testing.T) {
	code := runWithSignals(func(ctx context.Context, _ []string, _, _ io.Writer) int {
		if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("kill: %v", err)
			return 1
		}
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			t.Error("context not cancelled")
		}
		// the command claims success; the shell still reports the interrupt
		return 0
	}, []string{"reads.fa"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("want 130, got %d", code)
	}
}
