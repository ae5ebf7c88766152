// internal/writers/jsonl.go
package writers

import (
	"io"

	"bfgraph/core/index"
	"bfgraph/internal/jsonlutil"
	"bfgraph/internal/output"
	"bfgraph/pkg/api"
)

func init() {
	RegisterContig("jsonl", StartContigJSONLWriter)
}

// StartContigJSONLWriter streams each contig as one JSON line (v1).
func StartContigJSONLWriter(out io.Writer, bufSize int) (chan<- *index.Contig, <-chan error) {
	return jsonlutil.Start[*index.Contig, api.ContigV1](out, bufSize, output.ToAPIContig, IsBrokenPipe)
}
