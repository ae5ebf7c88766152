package writers

import (
	"io"

	"bfgraph/core/index"
	"bfgraph/internal/output"
)

func init() {
	RegisterContig("fasta", StartContigFASTAWriter)
	RegisterContig("json", StartContigJSONWriter)
}

func start(out io.Writer, bufSize int, run func(io.Writer, <-chan *index.Contig) error) (chan<- *index.Contig, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan *index.Contig, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := run(out, in)
		// keep the producer unblocked after a write error
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

// StartContigFASTAWriter streams contigs as FASTA records.
func StartContigFASTAWriter(out io.Writer, bufSize int) (chan<- *index.Contig, <-chan error) {
	return start(out, bufSize, output.StreamFASTA)
}

// StartContigJSONWriter buffers every contig and writes one JSON array.
func StartContigJSONWriter(out io.Writer, bufSize int) (chan<- *index.Contig, <-chan error) {
	return start(out, bufSize, func(w io.Writer, in <-chan *index.Contig) error {
		var buf []*index.Contig
		for c := range in {
			buf = append(buf, c)
		}
		return output.WriteJSON(w, buf)
	})
}
