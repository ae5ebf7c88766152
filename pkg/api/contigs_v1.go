// pkg/api/contigs_v1.go
package api

// ContigV1 is the stable JSON/JSONL schema for assembled contigs.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ContigV1 struct {
	ID           int      `json:"id"`
	Length       int      `json:"length"`
	Loop         string   `json:"loop"` // "none" | "simple" | "revcomp-a" | "revcomp-b" | "revcomp-c"
	MeanCoverage float64  `json:"mean_coverage"`
	Seq          string   `json:"seq"`
	Coverage     []uint32 `json:"coverage,omitempty"` // one counter per k-mer
}
