package compare

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/asmstat"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
)

// DefaultMetrics are the quality metrics tracked by the final
// comparison.
func DefaultMetrics() []string {
	return []string{
		"total_length", "n50", "n75", "n90", "max_contig",
		asmstat.ThresholdLabel(1000),
		asmstat.ThresholdLabel(10000),
		asmstat.ThresholdLabel(50000),
		asmstat.ThresholdLabel(100000),
	}
}

// MetricComparison places the k-mer meta-assembly's value for one metric
// within the distribution of the random-seed replicates.
type MetricComparison struct {
	Metric string

	KmerValue float64

	RandomMean   float64
	RandomStd    float64
	RandomMedian float64
	RandomMin    float64
	RandomMax    float64
	NRandom      int

	// how many random replicates the k-mer value beats, and the rank
	// expressed as a percentile of the random distribution
	BeatsN     int
	Percentile float64

	// k-mer value over the random mean
	ImprovementRatio float64

	ZScore    float64
	HasZScore bool

	BetterThanAvg    bool
	BetterThanMedian bool
	BetterThanBest   bool
	WorseThanWorst   bool
}

// KmerVsRandom compares the k-mer condition against the random
// replicates for each metric. Errors when either side is absent from
// the table; metrics missing from a condition are skipped.
func KmerVsRandom(t *Table, metrics []string) ([]MetricComparison, error) {
	kmers := t.OfType(grouping.Kmer)
	if len(kmers) == 0 {
		return nil, fmt.Errorf("no k-mer assembly statistics in the table")
	}
	randoms := t.OfType(grouping.Random)
	if len(randoms) == 0 {
		return nil, fmt.Errorf("no random assembly statistics in the table")
	}
	kmer := kmers[0]

	var results []MetricComparison
	for _, metric := range metrics {
		kv, ok := kmer.Metrics[metric]
		if !ok {
			continue
		}

		var rvs []float64
		for _, r := range randoms {
			if v, ok := r.Metrics[metric]; ok {
				rvs = append(rvs, v)
			}
		}
		if len(rvs) == 0 {
			continue
		}

		mc := MetricComparison{
			Metric:       metric,
			KmerValue:    kv,
			RandomMean:   stat.Mean(rvs, nil),
			RandomMedian: medianOf(rvs),
			RandomMin:    floats.Min(rvs),
			RandomMax:    floats.Max(rvs),
			NRandom:      len(rvs),
		}
		if len(rvs) > 1 {
			mc.RandomStd = stat.StdDev(rvs, nil)
		}

		for _, rv := range rvs {
			if kv > rv {
				mc.BeatsN++
			}
		}
		mc.Percentile = float64(mc.BeatsN) / float64(len(rvs)) * 100

		if mc.RandomMean > 0 {
			mc.ImprovementRatio = kv / mc.RandomMean
		} else {
			mc.ImprovementRatio = math.Inf(1)
		}

		if mc.RandomStd > 0 {
			mc.ZScore = (kv - mc.RandomMean) / mc.RandomStd
			mc.HasZScore = true
		}

		mc.BetterThanAvg = kv > mc.RandomMean
		mc.BetterThanMedian = kv > mc.RandomMedian
		mc.BetterThanBest = kv > mc.RandomMax
		mc.WorseThanWorst = kv < mc.RandomMin

		results = append(results, mc)
	}

	return results, nil
}

// GroupComparison compares the per-group assembly distributions of the
// k-mer grouping against a random grouping for one metric.
type GroupComparison struct {
	Metric string

	KmerMean   float64
	RandomMean float64
	KmerN      int
	RandomN    int

	KmerBetter       bool
	ImprovementRatio float64

	// Mann-Whitney U two-sided test, when both sides have at least
	// three assemblies
	U           float64
	P           float64
	HasTest     bool
	Significant bool
}

// CompareGroups runs the per-group comparison over two batches of scored
// assemblies, one per grouping.
func CompareGroups(kmer, random []*asmstat.Stats, metrics []string) []GroupComparison {
	var results []GroupComparison
	for _, metric := range metrics {
		kvs := metricValues(kmer, metric)
		rvs := metricValues(random, metric)
		if len(kvs) == 0 || len(rvs) == 0 {
			continue
		}

		gc := GroupComparison{
			Metric:     metric,
			KmerMean:   stat.Mean(kvs, nil),
			RandomMean: stat.Mean(rvs, nil),
			KmerN:      len(kvs),
			RandomN:    len(rvs),
		}
		gc.KmerBetter = gc.KmerMean > gc.RandomMean
		if gc.RandomMean > 0 {
			gc.ImprovementRatio = gc.KmerMean / gc.RandomMean
		} else {
			gc.ImprovementRatio = math.Inf(1)
		}

		if len(kvs) >= 3 && len(rvs) >= 3 {
			u, p, err := MannWhitney(kvs, rvs)
			if err == nil {
				gc.U = u
				gc.P = p
				gc.HasTest = true
				gc.Significant = p < 0.05
			}
		}

		results = append(results, gc)
	}
	return results
}

func metricValues(stats []*asmstat.Stats, metric string) []float64 {
	var vs []float64
	for _, s := range stats {
		if v, ok := s.Map()[metric]; ok {
			vs = append(vs, v)
		}
	}
	return vs
}

// MannWhitney computes the two-sided Mann-Whitney U test using the
// normal approximation with tie correction and continuity correction.
// Returns the U statistic (the smaller of U1 and U2) and the p-value.
func MannWhitney(a, b []float64) (u, p float64, err error) {
	n1, n2 := len(a), len(b)
	if n1 == 0 || n2 == 0 {
		return 0, 0, fmt.Errorf("mann-whitney requires observations on both sides")
	}

	type obs struct {
		v     float64
		fromA bool
	}
	all := make([]obs, 0, n1+n2)
	for _, v := range a {
		all = append(all, obs{v, true})
	}
	for _, v := range b {
		all = append(all, obs{v, false})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v < all[j].v })

	// average ranks across ties, accumulating the tie correction term
	n := n1 + n2
	var r1, tieSum float64
	for i := 0; i < n; {
		j := i
		for j < n && all[j].v == all[i].v {
			j++
		}
		t := float64(j - i)
		rank := float64(i+j+1) / 2 // mean of ranks i+1..j
		for k := i; k < j; k++ {
			if all[k].fromA {
				r1 += rank
			}
		}
		if t > 1 {
			tieSum += t*t*t - t
		}
		i = j
	}

	u1 := r1 - float64(n1*(n1+1))/2
	u2 := float64(n1*n2) - u1
	u = math.Min(u1, u2)

	mu := float64(n1*n2) / 2
	sigma2 := float64(n1*n2) / 12 * (float64(n+1) - tieSum/float64(n*(n-1)))
	if sigma2 <= 0 {
		// all observations tied
		return u, 1, nil
	}

	z := (math.Abs(u-mu) - 0.5) / math.Sqrt(sigma2)
	if z < 0 {
		z = 0
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	p = 2 * norm.CDF(-z)
	if p > 1 {
		p = 1
	}
	return u, p, nil
}

// Verdict is the rule-based recommendation of the comparison.
type Verdict string

const (
	StronglyPromising Verdict = "STRONGLY PROMISING"
	Promising         Verdict = "PROMISING"
	Mixed             Verdict = "MIXED RESULTS"
	NotPromising      Verdict = "NOT PROMISING"
)

// the protocol's decision rules trigger on at least four of the nine
// tracked metrics
const metricFloor = 4

// Recommend applies the experiment protocol's decision rules to the
// per-metric comparisons.
func Recommend(results []MetricComparison) Verdict {
	var beatsAll, beatsMost, beatsAvg, worseThanAll int
	for _, r := range results {
		if r.BetterThanBest {
			beatsAll++
		}
		if r.BeatsN >= r.NRandom-1 {
			beatsMost++
		}
		if r.BetterThanAvg {
			beatsAvg++
		}
		if r.WorseThanWorst {
			worseThanAll++
		}
	}

	switch {
	case beatsAll >= metricFloor:
		return StronglyPromising
	case beatsMost >= metricFloor && worseThanAll == 0:
		return Promising
	case beatsAvg >= metricFloor && worseThanAll <= 1:
		return Mixed
	default:
		return NotPromising
	}
}

func medianOf(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
