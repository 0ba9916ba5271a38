package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/merge"
)

// concatCmd pools per-group assemblies into one meta-assembly input.
var concatCmd = &cobra.Command{
	Use:   "concat [contig files]",
	Short: "Pool per-group assembly contigs into one meta-assembly input",
	Long: `Pool the contigs of a condition's per-group assemblies into a single
FASTA, prefixing each contig ID with its group so IDs stay unique. Inputs
whose assembly has not finished are skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runConcat,
}

func init() {
	rootCmd.AddCommand(concatCmd)

	concatCmd.Flags().StringP("out", "o", "meta_input.fasta", "output FASTA path")
}

func runConcat(cmd *cobra.Command, args []string) {
	out, err := cmd.Flags().GetString("out")
	if err != nil || out == "" {
		stderr.Fatal("no output path")
	}

	inputs := make([]merge.Input, 0, len(args))
	for _, path := range args {
		inputs = append(inputs, merge.Input{Name: inputName(path), Path: path})
	}

	contigs, skipped, err := merge.ConcatFile(out, inputs)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if skipped > 0 {
		stderr.Printf("warning: skipped %d missing assemblies", skipped)
	}
	if contigs == 0 {
		stderr.Fatalf("no contigs pooled into %s", out)
	}
	stderr.Printf("pooled %d contigs into %s", contigs, out)
}

// inputName labels an input by its group directory (megahit writes
// {group}/{group}.contigs.fa), falling back to the file name.
func inputName(path string) string {
	if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
		return dir
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
