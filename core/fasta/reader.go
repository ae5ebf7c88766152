// core/fasta/reader.go
package fasta

// Record is one parsed read or reference sequence.
type Record struct {
	ID  string
	Seq []byte
}
