package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/config"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/checkv"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/compare"
)

// qualityCmd summarizes the CheckV assessments of the final assemblies.
var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Summarize the CheckV quality assessments per condition",
	Long: `Read each condition's CheckV quality_summary.tsv (written by running
CheckV on the final assemblies, outside this program) and reduce it to
quality-tier counts and gene/completeness means. Conditions without a
summary are skipped with a warning.`,
	Run: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityCmd.Flags().StringP("checkv-dir", "c", "results/checkv", "directory containing one CheckV output directory per condition")
	qualityCmd.Flags().StringP("out", "o", "", "write the JSON summaries to this file instead of stdout")
}

func runQuality(cmd *cobra.Command, args []string) {
	checkvDir, _ := cmd.Flags().GetString("checkv-dir")

	c := config.New()

	var summaries []checkv.Summary
	for _, cond := range compare.Final(c.Seeds) {
		path := filepath.Join(checkvDir, cond.Name, "quality_summary.tsv")
		records, err := checkv.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				stderr.Printf("warning: no CheckV summary for %s, skipping", cond.Name)
				continue
			}
			stderr.Fatalf("failed to read %s: %v", path, err)
		}
		summaries = append(summaries, checkv.Summarize(cond.Name, records))
	}
	if len(summaries) == 0 {
		stderr.Fatalf("no CheckV summaries found in %s", checkvDir)
	}

	for _, s := range summaries {
		stderr.Printf("%s: %d contigs, %d complete, %d high-quality",
			s.Strategy, s.TotalContigs, s.Tiers[checkv.Complete], s.Tiers[checkv.HighQuality])
	}

	output, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		stderr.Fatalf("failed to serialize summaries: %v", err)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		fmt.Println(string(output))
		return
	}
	if err := os.WriteFile(out, output, 0644); err != nil {
		stderr.Fatalf("failed to write the output: %v", err)
	}
	stderr.Printf("wrote %d summaries to %s", len(summaries), out)
}
