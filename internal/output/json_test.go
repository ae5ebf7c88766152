// internal/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"bfgraph/pkg/api"
)

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteJSON(buf, contigs(t)); err != nil {
		t.Fatalf("json write: %v", err)
	}
	var got []api.ContigV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || len(got) != 2 {
		t.Fatalf("json round-trip failed: %v %v", err, got)
	}
	c := got[0]
	if c.ID != 0 || c.Length != 5 || c.Loop != "none" || c.Seq != "AACGT" {
		t.Fatalf("bad contig: %+v", c)
	}
	if c.MeanCoverage != 1 || len(c.Coverage) != 3 || c.Coverage[0] != 2 || c.Coverage[1] != 0 || c.Coverage[2] != 1 {
		t.Fatalf("bad coverage: %+v", c)
	}
	if got[1].Loop != "revcomp-a" {
		t.Fatalf("bad loop: %q", got[1].Loop)
	}
}
