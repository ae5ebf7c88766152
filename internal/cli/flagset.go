// internal/cli/flagset.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"bfgraph/internal/version"
)

// NewFlagSet returns a ContinueOnError FlagSet. Its own Usage is silent;
// callers print help with PrintUsage where they choose.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}
	return fs
}

// PrintUsage writes the command synopsis followed by the flag table.
func PrintUsage(w io.Writer, fs *pflag.FlagSet) {
	const name = "bfgraph"
	fmt.Fprintf(w, `%s: de Bruijn graph contig assembly from reads

Version: %s

Usage: %s [flags] READS...

READS are FASTA or FASTQ files, optionally gzip/zstd/lz4 compressed;
'-' reads standard input.

Flags:
`, name, version.Version, name)
	fmt.Fprint(w, fs.FlagUsages())
}
