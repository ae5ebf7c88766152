package writers

import (
	"bytes"
	"strings"
	"testing"

	"bfgraph/core/index"
)

func TestUnknownContigFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartContigWriter(&b, "nope-format", 1)
	in <- &index.Contig{ID: 0, Seq: "ACGT"}
	close(in)
	err := <-done
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown contig format") {
		t.Fatalf("unexpected error message: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("unknown format wrote output: %q", b.String())
	}
}

func TestFormatsRegistered(t *testing.T) {
	got := strings.Join(Formats(), ",")
	if got != "fasta,json,jsonl" {
		t.Fatalf("registered formats = %s", got)
	}
}
