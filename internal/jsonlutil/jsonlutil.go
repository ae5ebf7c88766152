// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Contig records carry per-k-mer coverage arrays, so lines get long;
// the buffers are pooled across writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 256<<10)
	},
}

// Start spins up a goroutine that writes one JSON line per value of type T,
// converted to its wire form W by toWire. The error channel yields exactly
// one value once in is closed. Errors that isBroken recognises mean the
// reader went away and are reported as nil. After any error the input is
// drained so senders never block.
func Start[T, W any](out io.Writer, bufSize int, toWire func(T) W, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		var err error
		for v := range in {
			if err = enc.Encode(toWire(v)); err != nil {
				break
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		for range in {
		}
		if err != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
