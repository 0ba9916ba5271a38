package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/config"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
)

// groupsCmd builds the grouping descriptors of every condition from the
// k-mer clustering results.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Write the grouping descriptors for every condition",
	Long: `Read the k-mer clustering results and write one grouping descriptor
per condition: the k-mer grouping itself, an individual grouping, a global
grouping, and one random grouping per seed mirroring the k-mer group-size
structure (the null model).`,
	Run: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)

	groupsCmd.Flags().StringP("kmer", "k", "", "path to the k-mer clustering results JSON")
	groupsCmd.Flags().StringP("out", "o", "groupings", "output directory for the grouping descriptors")
	groupsCmd.MarkFlagRequired("kmer")
}

func runGroups(cmd *cobra.Command, args []string) {
	kmerPath, err := cmd.Flags().GetString("kmer")
	if err != nil || kmerPath == "" {
		cmd.Help()
		stderr.Fatal("no k-mer clustering results passed")
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		stderr.Fatalf("failed to parse out flag: %v", err)
	}

	kmer, err := grouping.Read(kmerPath)
	if err != nil {
		stderr.Fatalf("failed to read k-mer grouping: %v", err)
	}
	kmer.Name = grouping.Kmer
	kmer.Strategy = grouping.Kmer

	if err := os.MkdirAll(outDir, 0755); err != nil {
		stderr.Fatalf("failed to create %s: %v", outDir, err)
	}

	samples := kmer.Samples()
	groupings := []*grouping.Grouping{
		kmer,
		grouping.NewIndividual(samples),
		grouping.NewGlobal(samples),
	}

	c := config.New()
	for _, seed := range c.Seeds {
		g, err := grouping.NewRandom(kmer, seed)
		if err != nil {
			stderr.Fatalf("failed to build random grouping: %v", err)
		}
		groupings = append(groupings, g)
	}

	for _, g := range groupings {
		path := filepath.Join(outDir, g.Name+"_groups.json")
		if err := g.Write(path); err != nil {
			stderr.Fatalf("%v", err)
		}
		stderr.Printf("wrote %s: %d groups, %d samples", path, len(g.Groups), len(g.Samples()))
	}
}
