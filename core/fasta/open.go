// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path ("-" = stdin) and unwraps gzip, zstd or lz4 by
// magic number. Sniffing goes through a bufio.Reader so stdin works too.
func openReader(path string) (io.ReadCloser, error) {
	var fh io.ReadCloser
	if path == "-" {
		fh = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		fh = f
	}
	rc, err := decompress(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

func decompress(fh io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(fh, 64*1024)
	sig, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(sig, magicGzip):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	case bytes.HasPrefix(sig, magicZstd):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), fh}}, nil
	case bytes.HasPrefix(sig, magicLZ4):
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{fh}}, nil
	default:
		return &multiReadCloser{Reader: br, closers: []io.Closer{fh}}, nil
	}
}
