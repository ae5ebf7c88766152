// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"bfgraph/core/index"
)

// Starter spins up a writer goroutine. Values sent on the returned channel
// are written in order; the error channel yields exactly one value after
// the input channel is closed.
type Starter func(out io.Writer, bufSize int) (chan<- *index.Contig, <-chan error)

// ContigWriters maps an output format to its writer. Formats register
// themselves in init() blocks.
var ContigWriters = map[string]Starter{}

// RegisterContig adds or replaces the writer for format.
func RegisterContig(format string, fn Starter) { ContigWriters[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(ContigWriters))
	for f := range ContigWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartContigWriter dispatches to the registered writer for format. An
// unknown format still returns a usable channel: it is drained and the
// error is reported on the error channel.
func StartContigWriter(out io.Writer, format string, bufSize int) (chan<- *index.Contig, <-chan error) {
	if fn, ok := ContigWriters[format]; ok {
		return fn(out, bufSize)
	}
	in := make(chan *index.Contig, 1)
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown contig format %q (no writer registered)", format)
	}()
	return in, errCh
}

// IsBrokenPipe reports whether err means the reader went away, e.g.
// `bfgraph reads.fa | head`. Callers treat it as success.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
