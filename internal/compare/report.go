package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
)

// WriteCSV writes the per-condition statistics table, one row per scored
// condition, metric columns in the engine's presentation order.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{"condition", "condition_type", "seed", "assembly_file"}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range t.Conditions {
		seed := ""
		if c.Type == grouping.Random {
			seed = strconv.FormatInt(c.Seed, 10)
		}
		row := []string{c.Name, c.Type, seed, c.File}
		for _, col := range t.Columns {
			row = append(row, strconv.FormatFloat(c.Metrics[col], 'f', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReport renders the human-readable comparison report: the
// conditions analyzed, the per-metric k-mer vs random breakdown, and the
// overall recommendation with its follow-ups.
func WriteReport(w io.Writer, t *Table, results []MetricComparison, verdict Verdict) error {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, "Assembly Clustering Validation: Final Results")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FINAL ASSEMBLIES ANALYZED:")
	for _, typ := range []string{grouping.Individual, grouping.Random, grouping.Kmer, grouping.Global} {
		fmt.Fprintf(w, "  %s: %d\n", typ, len(t.OfType(typ)))
	}
	for _, m := range t.Missing {
		fmt.Fprintf(w, "  no statistics available: %s\n", m)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "KEY QUESTION: DOES K-MER CLUSTERING BEAT RANDOM?")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	var beatsAvg, beatsAll int
	for _, r := range results {
		if r.BetterThanAvg {
			beatsAvg++
		}
		if r.BetterThanBest {
			beatsAll++
		}
	}
	fmt.Fprintf(w, "K-mer beats random average: %d/%d metrics\n", beatsAvg, len(results))
	fmt.Fprintf(w, "K-mer beats ALL random assemblies: %d/%d metrics\n\n", beatsAll, len(results))

	for _, r := range results {
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(strings.ReplaceAll(r.Metric, "_", " ")))
		fmt.Fprintf(w, "  K-mer value: %.0f\n", r.KmerValue)
		fmt.Fprintf(w, "  Random mean +/- std: %.0f +/- %.0f (n=%d)\n", r.RandomMean, r.RandomStd, r.NRandom)
		fmt.Fprintf(w, "  Random range: %.0f - %.0f\n", r.RandomMin, r.RandomMax)
		fmt.Fprintf(w, "  K-mer percentile: %.1f%%\n", r.Percentile)
		fmt.Fprintf(w, "  Improvement ratio: %.2fx\n", r.ImprovementRatio)
		fmt.Fprintf(w, "  Beats %d/%d random assemblies\n", r.BeatsN, r.NRandom)
		if r.HasZScore {
			fmt.Fprintf(w, "  Z-score: %.2f\n", r.ZScore)
		}

		switch {
		case r.BetterThanBest:
			fmt.Fprintln(w, "  -> K-mer BETTER than ALL random assemblies")
		case r.BeatsN >= r.NRandom-1:
			fmt.Fprintln(w, "  -> K-mer beats most random assemblies")
		case r.WorseThanWorst:
			fmt.Fprintln(w, "  -> K-mer WORSE than ALL random assemblies")
		default:
			fmt.Fprintln(w, "  -> K-mer performance mixed")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "OVERALL ASSESSMENT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "RECOMMENDATION: %s\n\n", verdict)

	switch verdict {
	case StronglyPromising:
		fmt.Fprintln(w, "K-mer clustering consistently produces better meta-assemblies than")
		fmt.Fprintln(w, "even the best random groupings across multiple quality metrics.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "1. Scale up the sample count to confirm robustness")
		fmt.Fprintln(w, "2. Test different similarity thresholds")
		fmt.Fprintln(w, "3. Compare against metadata-based grouping strategies")
	case Promising:
		fmt.Fprintln(w, "K-mer clustering consistently beats most random groupings,")
		fmt.Fprintln(w, "indicating the approach has merit.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "1. Test with a larger sample size")
		fmt.Fprintln(w, "2. Optimize similarity threshold and group size parameters")
		fmt.Fprintln(w, "3. Investigate why performance varies across metrics")
	case Mixed:
		fmt.Fprintln(w, "K-mer clustering shows some advantages but inconsistent")
		fmt.Fprintln(w, "performance. Results suggest potential but need refinement.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "1. Investigate parameter optimization")
		fmt.Fprintln(w, "2. Test with different sample sizes and compositions")
		fmt.Fprintln(w, "3. Consider hybrid grouping approaches")
	default:
		fmt.Fprintln(w, "K-mer clustering does not consistently outperform random")
		fmt.Fprintln(w, "grouping for meta-assembly quality.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "1. Stop development of the pure k-mer clustering approach")
		fmt.Fprintln(w, "2. Investigate taxonomic or metadata-based grouping instead")
	}

	return nil
}

// WriteGroupReport renders the per-group comparison of two groupings.
func WriteGroupReport(w io.Writer, results []GroupComparison) error {
	fmt.Fprintln(w, "K-mer vs Random Grouping: Per-Group Assembly Comparison")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(strings.ReplaceAll(r.Metric, "_", " ")))
		fmt.Fprintf(w, "  K-mer mean: %.0f (n=%d)\n", r.KmerMean, r.KmerN)
		fmt.Fprintf(w, "  Random mean: %.0f (n=%d)\n", r.RandomMean, r.RandomN)
		fmt.Fprintf(w, "  K-mer better: %t\n", r.KmerBetter)
		fmt.Fprintf(w, "  Improvement: %.2fx\n", r.ImprovementRatio)
		if r.HasTest {
			fmt.Fprintf(w, "  Mann-Whitney U: %.1f, p-value: %.4f\n", r.U, r.P)
			fmt.Fprintf(w, "  Significant: %t\n", r.Significant)
		}
		fmt.Fprintln(w)
	}
	return nil
}
