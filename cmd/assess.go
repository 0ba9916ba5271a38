package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/config"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/compare"
)

// assessCmd scores the final assemblies and compares the strategies.
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess and compare the final assemblies of every condition",
	Long: `Score the final assemblies of the staged workflow (individual, one per
random seed, k-mer and global) and answer the key question: does k-mer
clustering beat random grouping for meta-assembly quality?

Writes the per-condition statistics table as CSV and the comparison
report with the rule-based recommendation.`,
	Run: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringP("assemblies-dir", "a", "results/assemblies/final_assemblies", "directory containing the final assemblies")
	assessCmd.Flags().StringP("out", "o", "results/final_analysis", "output directory for the analysis")
}

func runAssess(cmd *cobra.Command, args []string) {
	asmDir, _ := cmd.Flags().GetString("assemblies-dir")
	outDir, _ := cmd.Flags().GetString("out")

	c := config.New()

	table, err := compare.BuildTable(asmDir, compare.Final(c.Seeds), c.StatsOptions())
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	for _, m := range table.Missing {
		stderr.Printf("warning: no statistics available for %s", m)
	}
	if len(table.Conditions) == 0 {
		stderr.Fatalf("no assembly statistics found in %s", asmDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		stderr.Fatalf("failed to create %s: %v", outDir, err)
	}

	csvPath := filepath.Join(outDir, "final_assembly_statistics.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", csvPath, err)
	}
	if err := compare.WriteCSV(csvFile, table); err != nil {
		csvFile.Close()
		stderr.Fatalf("failed to write the statistics table: %v", err)
	}
	csvFile.Close()
	stderr.Printf("wrote %s", csvPath)

	results, err := compare.KmerVsRandom(table, compare.DefaultMetrics())
	if err != nil {
		stderr.Fatalf("cannot compare k-mer against random: %v", err)
	}
	verdict := compare.Recommend(results)

	reportPath := filepath.Join(outDir, "final_assembly_comparison_report.txt")
	reportFile, err := os.Create(reportPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", reportPath, err)
	}
	if err := compare.WriteReport(reportFile, table, results, verdict); err != nil {
		reportFile.Close()
		stderr.Fatalf("failed to write the report: %v", err)
	}
	reportFile.Close()
	stderr.Printf("wrote %s", reportPath)

	// console summary
	var beatsAvg, beatsAll int
	for _, r := range results {
		if r.BetterThanAvg {
			beatsAvg++
		}
		if r.BetterThanBest {
			beatsAll++
		}
	}
	fmt.Printf("K-mer beats random average: %d/%d metrics\n", beatsAvg, len(results))
	fmt.Printf("K-mer beats ALL random assemblies: %d/%d metrics\n", beatsAll, len(results))
	fmt.Printf("Overall assessment: %s\n", verdict)
}
