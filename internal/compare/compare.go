// Package compare scores the assemblies of every experimental condition
// and answers the experiment's question: does k-mer clustering beat
// random grouping for co-assembly quality?
package compare

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/asmstat"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
)

// Condition is one assembly under comparison.
type Condition struct {
	Name string

	// a grouping strategy name: individual, random, kmer or global
	Type string

	// the shuffle seed, set on random conditions
	Seed int64

	// assembly file name, relative to the assemblies directory
	File string

	Stats   *asmstat.Stats
	Metrics map[string]float64
}

// Final lists the staged workflow's final assemblies by their
// conventional file names: one individual meta-assembly, one random
// meta-assembly per seed, the k-mer meta-assembly and the global
// assembly.
func Final(seeds []int64) []Condition {
	conds := []Condition{{
		Name: "individual",
		Type: grouping.Individual,
		File: "individual_meta_assembly.fasta",
	}}
	for _, s := range seeds {
		conds = append(conds, Condition{
			Name: fmt.Sprintf("random_%d", s),
			Type: grouping.Random,
			Seed: s,
			File: fmt.Sprintf("random_%d_meta_assembly.fasta", s),
		})
	}
	return append(conds,
		Condition{Name: "kmer", Type: grouping.Kmer, File: "kmer_meta_assembly.fasta"},
		Condition{Name: "global", Type: grouping.Global, File: "global_assembly.fasta"},
	)
}

// Table holds the conditions that yielded statistics, plus the files
// that did not.
type Table struct {
	Conditions []Condition
	Columns    []string

	// assembly files that resolved to "no data": missing, unreadable
	// or contig-less. They are reported, not fatal.
	Missing []string
}

// BuildTable scores each condition's assembly under dir. A condition
// whose file yields no data is recorded in Missing and skipped; one
// unfinished assembly never aborts the batch.
func BuildTable(dir string, conds []Condition, opts asmstat.Options) (*Table, error) {
	t := &Table{Columns: opts.MetricNames()}

	for _, c := range conds {
		s, err := asmstat.FromFile(filepath.Join(dir, c.File), opts)
		if errors.Is(err, asmstat.ErrNoData) {
			t.Missing = append(t.Missing, c.File)
			continue
		}
		if err != nil {
			// a contract violation in opts, not bad data
			return nil, err
		}

		c.Stats = s
		c.Metrics = s.Map()
		t.Conditions = append(t.Conditions, c)
	}

	return t, nil
}

// OfType returns the scored conditions of one strategy.
func (t *Table) OfType(typ string) []Condition {
	var out []Condition
	for _, c := range t.Conditions {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// ScoreFiles scores a batch of assembly files, splitting them into
// scored statistics and the paths that yielded no data.
func ScoreFiles(paths []string, opts asmstat.Options) (scored []*asmstat.Stats, missing []string, err error) {
	for _, p := range paths {
		s, err := asmstat.FromFile(p, opts)
		if errors.Is(err, asmstat.ErrNoData) {
			missing = append(missing, p)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		scored = append(scored, s)
	}
	return scored, missing, nil
}
