package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/megjohnson1999/assembly-clustering-validation/config"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/sample"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/script"
)

// commandsCmd renders the staged assembly workflow as shell scripts.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Generate the staged assembly scripts for every grouping",
	Long: `Generate the staged assembly workflow for every grouping descriptor:

Stage 1: megahit assemblies, one per group
Stage 2: pool each condition's contigs and meta-assemble them with flye

The scripts are written for the cluster scheduler; nothing is executed.`,
	Run: runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)

	commandsCmd.Flags().StringP("samples-dir", "s", ".", "directory containing the paired read files")
	commandsCmd.Flags().StringP("groups-dir", "g", "groupings", "directory containing the grouping descriptors")
	commandsCmd.Flags().StringP("asm-dir", "a", "results/assemblies", "directory the assemblies will be written to")
	commandsCmd.Flags().StringP("out", "o", "scripts", "output directory for the generated scripts")
}

func runCommands(cmd *cobra.Command, args []string) {
	samplesDir, _ := cmd.Flags().GetString("samples-dir")
	groupsDir, _ := cmd.Flags().GetString("groups-dir")
	asmDir, _ := cmd.Flags().GetString("asm-dir")
	outDir, _ := cmd.Flags().GetString("out")

	descriptors, err := filepath.Glob(filepath.Join(groupsDir, "*_groups.json"))
	if err != nil || len(descriptors) == 0 {
		stderr.Fatalf("no grouping descriptors found in %s", groupsDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		stderr.Fatalf("failed to create %s: %v", outDir, err)
	}

	c := config.New()
	megahit := c.MegahitTemplate()
	flye := c.FlyeTemplate()

	for _, desc := range descriptors {
		g, err := grouping.Read(desc)
		if err != nil {
			stderr.Fatalf("failed to read %s: %v", desc, err)
		}

		stage1, contigFiles := megahitStage(g, megahit, samplesDir, asmDir)
		if len(stage1) == 0 {
			stderr.Printf("warning: no assemblable groups in %s, skipping", desc)
			continue
		}

		stage1Path := filepath.Join(outDir, fmt.Sprintf("stage1_%s_megahit.sh", g.Name))
		header := fmt.Sprintf("stage 1: megahit assemblies\ncondition: %s\ngroups: %d", g.Name, len(stage1))
		if err := script.Write(stage1Path, header, stage1); err != nil {
			stderr.Fatalf("%v", err)
		}

		stage2Path := filepath.Join(outDir, fmt.Sprintf("stage2_%s_meta.sh", g.Name))
		header = fmt.Sprintf("stage 2: pool contigs and meta-assemble\ncondition: %s", g.Name)
		if err := script.Write(stage2Path, header, metaStage(g.Name, contigFiles, flye, asmDir)); err != nil {
			stderr.Fatalf("%v", err)
		}

		stderr.Printf("wrote %s and %s", stage1Path, stage2Path)
	}
}

// megahitStage renders one megahit command per group and returns the
// contig files those commands will produce. Groups whose read files are
// missing are skipped with a warning so one incomplete sample does not
// sink the condition.
func megahitStage(g *grouping.Grouping, megahit script.Megahit, samplesDir, asmDir string) (cmds, contigFiles []string) {
	for _, group := range g.Groups {
		var r1s, r2s []string
		missing := false
		for _, id := range group.Samples {
			r1, r2, err := sample.Pair(samplesDir, id)
			if err != nil {
				stderr.Printf("warning: %v, skipping group %s", err, group.ID)
				missing = true
				break
			}
			r1s = append(r1s, r1)
			r2s = append(r2s, r2)
		}
		if missing {
			continue
		}

		groupDir := filepath.Join(asmDir, "megahit_"+g.Name, group.ID)
		cmds = append(cmds, megahit.Group(r1s, r2s, groupDir, group.ID))
		contigFiles = append(contigFiles, filepath.Join(groupDir, group.ID+".contigs.fa"))
	}
	return cmds, contigFiles
}

// metaStage pools the condition's contigs with acv concat, meta-assembles
// them with flye, and copies the result to its conventional final name.
func metaStage(name string, contigFiles []string, flye script.Flye, asmDir string) []string {
	input := filepath.Join(asmDir, name+"_meta_input.fasta")
	flyeDir := filepath.Join(asmDir, name+"_flye")
	final := filepath.Join(asmDir, "final_assemblies", finalAssembly(name))

	return []string{
		fmt.Sprintf("acv concat -o %s %s", input, strings.Join(contigFiles, " ")),
		flye.Meta(input, flyeDir),
		fmt.Sprintf("mkdir -p %s", filepath.Join(asmDir, "final_assemblies")),
		fmt.Sprintf("cp %s %s", filepath.Join(flyeDir, "assembly.fasta"), final),
	}
}

// finalAssembly is the conventional file name of a condition's final
// assembly, as the assess command expects it.
func finalAssembly(name string) string {
	if name == grouping.Global {
		return "global_assembly.fasta"
	}
	return name + "_meta_assembly.fasta"
}
