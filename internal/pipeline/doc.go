// Package pipeline streams reads through the three assembly phases:
//
//   - Fill adds every read k-mer to the membership filter.
//   - Assemble seeds contig construction from read k-mers that no
//     registered contig contains yet.
//   - Cover maps read k-mers back onto the finished contigs.
//
// Each phase runs Threads workers fed from one reader goroutine; the first
// error cancels the rest.
package pipeline
