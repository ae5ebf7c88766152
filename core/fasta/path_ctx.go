// core/fasta/path_ctx.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrFormat is returned for input that is neither FASTA nor FASTQ.
var ErrFormat = errors.New("fasta: unrecognized record format")

// StreamPathCtx opens `path` and emits one Record per FASTA or FASTQ entry.
// The format is decided by the first non-empty line ('>' or '@').
// Cancellation via ctx is honored between lines.
//
// emit is called for each record. Return a non-nil error to stop early.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamCtx(ctx, rc, emit)
}

// StreamCtx is StreamPathCtx over an already-open reader.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id    string
		seq   = make([]byte, 0, 1<<16)
		fastq bool
		mode  byte // 0 until the first header
		state int  // FASTQ: 0 header, 1 seq, 2 plus, 3 quality
	)

	flush := func() error {
		if id == "" && len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())

		// inside a FASTQ record every line counts, even an empty sequence
		// or quality line
		if fastq && state != 0 {
			switch state {
			case 1:
				seq = append(seq, line...)
			case 2:
				if len(line) == 0 || line[0] != '+' {
					return fmt.Errorf("%w: fastq separator expected in record %q", ErrFormat, id)
				}
			case 3:
				if err := emit(Record{ID: id, Seq: append([]byte(nil), seq...)}); err != nil {
					return err
				}
				id, seq = "", seq[:0]
			}
			state = (state + 1) % 4
			continue
		}

		if len(line) == 0 {
			continue
		}
		if mode == 0 {
			switch line[0] {
			case '>':
				mode = '>'
			case '@':
				mode, fastq = '@', true
			default:
				return fmt.Errorf("%w: starts with %q", ErrFormat, line[0])
			}
		}

		if fastq {
			if line[0] != '@' {
				return fmt.Errorf("%w: fastq header expected, got %q", ErrFormat, line[0])
			}
			id = parseHeaderID(line[1:])
			seq = seq[:0]
			state = 1
			continue
		}

		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			seq = seq[:0]
			continue
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if fastq {
		if state != 0 {
			return fmt.Errorf("%w: truncated fastq record %q", ErrFormat, id)
		}
		return nil
	}
	return flush()
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
