// Package merge prepares the meta-assembly input of a condition by
// pooling the contigs of its per-group assemblies into one FASTA.
package merge

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Input is one per-group assembly to pool. Name is prefixed onto every
// contig ID so IDs stay unique across groups with identically named
// contigs (megahit numbers contigs per run).
type Input struct {
	Name string
	Path string
}

// Concat streams every contig of each input into out. Inputs whose file
// is missing are skipped and counted, mirroring the scoring engine's
// policy for assemblies that have not finished: one absent group must
// not sink the condition.
func Concat(out io.Writer, inputs []Input) (contigs, skipped int, err error) {
	w := fasta.NewWriter(out, 60)

	for _, in := range inputs {
		f, err := os.Open(in.Path)
		if err != nil {
			skipped++
			continue
		}

		// redundant alphabet: assemblies carry Ns and ambiguity codes
		t := linear.NewSeq("", nil, alphabet.DNAredundant)
		sc := seqio.NewScanner(fasta.NewReader(f, t))
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			s.ID = fmt.Sprintf("%s_%s", in.Name, s.ID)
			if _, err := w.Write(s); err != nil {
				f.Close()
				return contigs, skipped, fmt.Errorf("failed to write contig %s: %w", s.ID, err)
			}
			contigs++
		}
		readErr := sc.Error()
		f.Close()
		if readErr != nil {
			return contigs, skipped, fmt.Errorf("failed reading %s: %w", in.Path, readErr)
		}
	}

	return contigs, skipped, nil
}

// ConcatFile is Concat writing to a newly created file at path.
func ConcatFile(path string, inputs []Input) (contigs, skipped int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return Concat(f, inputs)
}
