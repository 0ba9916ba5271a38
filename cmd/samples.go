package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/sample"
)

// samplesCmd lists the samples discovered by the read naming convention.
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the samples found in a reads directory",
	Long: `List the sample IDs found in a directory of paired read files
named {sample_id}_rrna_removed_R{1,2}.fastq (optionally gzipped).`,
	Run: runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)

	samplesCmd.Flags().StringP("dir", "d", ".", "directory containing the paired read files")
}

func runSamples(cmd *cobra.Command, args []string) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		stderr.Fatalf("failed to parse dir flag: %v", err)
	}

	ids, err := sample.List(dir)
	if err != nil {
		stderr.Fatalf("failed to list samples in %s: %v", dir, err)
	}
	if len(ids) == 0 {
		stderr.Fatalf("no samples found in %s", dir)
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	stderr.Printf("%d samples", len(ids))
}
