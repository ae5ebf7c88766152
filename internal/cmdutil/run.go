package cmdutil

import (
	"context"

	"bfgraph/core/index"
)

// EmitContigs streams contigs of at least minLen bases to send, in id order.
// It returns the number of contigs sent and the first error encountered.
func EmitContigs[T any](
	ctx context.Context,
	contigs []*index.Contig,
	minLen int,
	visit func(*index.Contig) T,
	send func(T) error,
) (int, error) {
	total := 0
	for _, c := range contigs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if len(c.Seq) < minLen {
			continue
		}
		if err := send(visit(c)); err != nil {
			return total, err
		}
		total++
	}
	return total, nil
}
