package output

import (
	"fmt"
	"io"

	"bfgraph/core/index"
)

// FASTAHeader is the description line for a contig, without the '>'.
func FASTAHeader(c *index.Contig) string {
	return fmt.Sprintf("contig_%d len=%d loop=%s cov=%.2f", c.ID, len(c.Seq), c.Loop, c.MeanCoverage())
}

// StreamFASTA streams FASTA records from a channel to the writer.
func StreamFASTA(w io.Writer, in <-chan *index.Contig) error {
	for c := range in {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", FASTAHeader(c), c.Seq); err != nil {
			return err
		}
	}
	return nil
}
