// Package asmstat turns a FASTA assembly into contig-length quality
// statistics: N50-family metrics, size-threshold counts, extrema and
// central tendency. It is the scoring engine behind every condition in
// the grouping comparison.
package asmstat

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// ErrNoData marks a missing, unreadable, or contig-less assembly file.
// Callers check it with errors.Is and skip the file; it is never reported
// as a zero-valued Stats, so "no assembly produced" cannot be mistaken
// for "assembly with zero total length".
var ErrNoData = errors.New("no assembly statistics available")

// Options are the caller-supplied knobs of the engine.
type Options struct {
	// count contigs at least this long, one count per threshold
	SizeThresholds []int

	// the Nx percentages to compute, conventionally 50, 75 and 90
	NxPercentages []float64

	// sum the lengths of this many of the longest contigs
	LongestN int
}

// DefaultOptions returns the thresholds used throughout the experiment
// protocol.
func DefaultOptions() Options {
	return Options{
		SizeThresholds: []int{500, 1000, 5000, 10000, 50000, 100000},
		NxPercentages:  []float64{50, 75, 90},
		LongestN:       10,
	}
}

func (o Options) validate() error {
	for _, t := range o.SizeThresholds {
		if t <= 0 {
			return fmt.Errorf("invalid size threshold %d: must be positive", t)
		}
	}
	for _, x := range o.NxPercentages {
		if x <= 0 || x > 100 {
			return fmt.Errorf("invalid Nx percentage %v: must be in (0, 100]", x)
		}
	}
	if o.LongestN <= 0 {
		return fmt.Errorf("invalid longest-N count %d: must be positive", o.LongestN)
	}
	return nil
}

// Stats is the contig-length summary of one assembly file.
type Stats struct {
	// the file the statistics were parsed from, for traceability
	SourcePath string

	TotalLength int
	NContigs    int
	MaxContig   int
	MinContig   int

	MeanContig   float64
	MedianContig float64

	// Nx value per requested percentage, eg Nx[50] is the N50
	Nx map[float64]int

	// number of contigs at least as long as each threshold
	ThresholdCounts map[int]int

	// sum of the LongestN longest contig lengths; equals TotalLength
	// when there are fewer than LongestN contigs
	LongestNSum int

	// the N the sum above was computed with
	LongestN int
}

// FromFile parses the assembly at path and computes its statistics.
// A missing file, a read failure, or a file without contigs resolves to
// an error wrapping ErrNoData so a batch caller can log and move on.
func FromFile(path string, opts Options) (*Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	defer f.Close()

	lengths, err := Lengths(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNoData, path, err)
	}

	return New(lengths, path, opts)
}

// New computes statistics over the parsed contig lengths. It is pure and
// deterministic. An empty length list resolves to ErrNoData; mean, median
// and Nx are undefined on an empty set and are never silently zeroed.
func New(lengths []int, path string, opts Options) (*Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: no contigs in %s", ErrNoData, path)
	}

	// sort once, descending; the Nx walks and threshold counts share it
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	asFloat := make([]float64, len(sorted))
	for i, l := range sorted {
		total += l
		asFloat[i] = float64(l)
	}

	s := &Stats{
		SourcePath:      path,
		TotalLength:     total,
		NContigs:        len(sorted),
		MaxContig:       sorted[0],
		MinContig:       sorted[len(sorted)-1],
		MeanContig:      stat.Mean(asFloat, nil),
		MedianContig:    median(sorted),
		Nx:              make(map[float64]int, len(opts.NxPercentages)),
		ThresholdCounts: make(map[int]int, len(opts.SizeThresholds)),
		LongestN:        opts.LongestN,
	}

	for _, x := range opts.NxPercentages {
		v, err := Nx(sorted, total, x)
		if err != nil {
			return nil, err
		}
		s.Nx[x] = v
	}

	for _, t := range opts.SizeThresholds {
		s.ThresholdCounts[t] = countAtLeast(sorted, t)
	}

	n := opts.LongestN
	if n > len(sorted) {
		n = len(sorted)
	}
	for _, l := range sorted[:n] {
		s.LongestNSum += l
	}

	return s, nil
}

// Nx returns the length of the first contig, walking the descending-sorted
// lengths, at which the cumulative length reaches x percent of total.
// x outside (0, 100] is a caller bug and errors. If the walk exhausts the
// list without reaching the target, Nx returns 0; with the target computed
// as float64(total)*x/100 that cannot happen for x = 100 on realistic
// assembly sizes, so N100 is the minimum contig length.
func Nx(sorted []int, total int, x float64) (int, error) {
	if x <= 0 || x > 100 {
		return 0, fmt.Errorf("invalid Nx percentage %v: must be in (0, 100]", x)
	}

	target := float64(total) * x / 100
	cum := 0
	for _, l := range sorted {
		cum += l
		if float64(cum) >= target {
			return l, nil
		}
	}
	return 0, nil
}

// countAtLeast returns how many of the descending-sorted lengths are at
// least threshold.
func countAtLeast(sorted []int, threshold int) int {
	return sort.Search(len(sorted), func(i int) bool {
		return sorted[i] < threshold
	})
}

// median of a sorted length list; the mean of the middle pair on even
// counts, matching the convention of the rest of the analysis stack.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Map flattens the statistics to metric-name keyed values for tabulation
// alongside other conditions.
func (s *Stats) Map() map[string]float64 {
	m := map[string]float64{
		"total_length":  float64(s.TotalLength),
		"n_contigs":     float64(s.NContigs),
		"max_contig":    float64(s.MaxContig),
		"min_contig":    float64(s.MinContig),
		"mean_contig":   s.MeanContig,
		"median_contig": s.MedianContig,
	}
	for x, v := range s.Nx {
		m[NxLabel(x)] = float64(v)
	}
	for t, c := range s.ThresholdCounts {
		m[ThresholdLabel(t)] = float64(c)
	}
	m[LongestLabel(s.LongestN)] = float64(s.LongestNSum)
	return m
}

// MetricNames lists the metric keys New will produce under these options,
// in a stable presentation order.
func (o Options) MetricNames() []string {
	names := []string{"total_length", "n_contigs"}
	for _, x := range o.NxPercentages {
		names = append(names, NxLabel(x))
	}
	names = append(names, "max_contig", "min_contig", "mean_contig", "median_contig")
	for _, t := range o.SizeThresholds {
		names = append(names, ThresholdLabel(t))
	}
	return append(names, LongestLabel(o.LongestN))
}

// NxLabel is the metric name of an Nx percentage, eg "n50".
func NxLabel(x float64) string {
	return "n" + strconv.FormatFloat(x, 'f', -1, 64)
}

// ThresholdLabel is the metric name of a size-threshold count,
// eg "contigs_1kb+" or "contigs_500bp+".
func ThresholdLabel(t int) string {
	if t >= 1000 && t%1000 == 0 {
		return fmt.Sprintf("contigs_%dkb+", t/1000)
	}
	return fmt.Sprintf("contigs_%dbp+", t)
}

// LongestLabel is the metric name of the longest-N sum, eg "longest_10_sum".
func LongestLabel(n int) string {
	return fmt.Sprintf("longest_%d_sum", n)
}
