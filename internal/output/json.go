// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"bfgraph/core/index"
	"bfgraph/pkg/api"
)

// ToAPIContig converts a registered contig to the stable wire schema (v1).
func ToAPIContig(c *index.Contig) api.ContigV1 {
	return api.ContigV1{
		ID:           c.ID,
		Length:       len(c.Seq),
		Loop:         c.Loop.String(),
		MeanCoverage: c.MeanCoverage(),
		Seq:          c.Seq,
		Coverage:     c.Coverage(),
	}
}

func toAPIContigs(list []*index.Contig) []api.ContigV1 {
	out := make([]api.ContigV1, 0, len(list))
	for _, c := range list {
		out = append(out, ToAPIContig(c))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 contigs (pretty-indented).
func WriteJSON(w io.Writer, list []*index.Contig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPIContigs(list))
}
