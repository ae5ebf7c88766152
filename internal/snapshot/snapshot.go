// Package snapshot persists a finished contig index.
//
// A snapshot file is a 4-byte magic, one compression tag byte, then a CBOR
// document compressed with that algorithm. Loading re-registers every
// contig, so the restored index samples exactly like the original.
package snapshot

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"bfgraph/core/contig"
	"bfgraph/core/index"
)

// Version is the document schema version written by Write.
const Version = 1

var magic = []byte("BFGS")

var ErrCorrupt = errors.New("snapshot: corrupt or unsupported file")

type document struct {
	Version int         `cbor:"version"`
	K       int         `cbor:"k"`
	Stride  int         `cbor:"stride"`
	Contigs []contigDoc `cbor:"contigs"`
}

type contigDoc struct {
	ID       int      `cbor:"id"`
	Seq      string   `cbor:"seq"`
	Loop     string   `cbor:"loop"`
	Coverage []uint32 `cbor:"coverage,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Write serializes idx to w.
func Write(w io.Writer, idx *index.Index, c Compression) error {
	doc := document{Version: Version, K: idx.K(), Stride: idx.Stride()}
	for _, ct := range idx.Contigs() {
		doc.Contigs = append(doc.Contigs, contigDoc{
			ID:       ct.ID,
			Seq:      ct.Seq,
			Loop:     ct.Loop.String(),
			Coverage: ct.Coverage(),
		})
	}

	if _, err := w.Write(append(append([]byte(nil), magic...), byte(c))); err != nil {
		return err
	}
	zw, err := compressor(w, c)
	if err != nil {
		return err
	}
	if err := encMode.NewEncoder(zw).Encode(doc); err != nil {
		_ = zw.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return zw.Close()
}

// Read restores an index written by Write.
func Read(r io.Reader) (*index.Index, error) {
	hdr := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrCorrupt, err)
	}
	if !bytes.Equal(hdr[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, hdr[:len(magic)])
	}
	zr, err := decompressor(r, Compression(hdr[len(magic)]))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var doc document
	if err := decMode.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, doc.Version)
	}

	idx, err := index.New(doc.K, doc.Stride)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i, cd := range doc.Contigs {
		if cd.ID != i {
			return nil, fmt.Errorf("%w: contig %d stored at position %d", ErrCorrupt, cd.ID, i)
		}
		loop, err := contig.ParseLoopClass(cd.Loop)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		id, added, err := idx.Register(cd.Seq, loop)
		if err != nil {
			return nil, fmt.Errorf("%w: contig %d: %v", ErrCorrupt, cd.ID, err)
		}
		if !added || id != cd.ID {
			return nil, fmt.Errorf("%w: contig %d overlaps contig %d", ErrCorrupt, cd.ID, id)
		}
		if len(cd.Coverage) > 0 {
			if err := idx.SetCoverage(id, cd.Coverage); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
			}
		}
	}
	return idx, nil
}

// Save writes idx to path through a temporary file in the same directory,
// so an interrupted run never leaves a truncated snapshot behind.
func Save(path string, idx *index.Index, c Compression) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bfgraph-snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<20)
	if err = Write(bw, idx, c); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads the snapshot at path.
func Load(path string) (*index.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(bufio.NewReaderSize(f, 1<<20))
}
