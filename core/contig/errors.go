package contig

import "errors"

var (
	// ErrSeedMapped is returned by Build when the seed is already in the index.
	ErrSeedMapped = errors.New("contig: seed already mapped")

	// ErrInconsistent means the membership index and the contig index
	// disagree. There is no corrected state to recover to; the current
	// construction must be abandoned.
	ErrInconsistent = errors.New("contig: membership and contig index disagree")
)
