// Package script renders the assembler invocations of the staged
// workflow: megahit per sample or group, then flye to meta-assemble each
// condition's pooled contigs. Commands are written to shell scripts for
// the cluster scheduler; nothing is executed here.
package script

import (
	"fmt"
	"os"
	"strings"
)

// Megahit holds the fixed flag template of the experiment protocol.
type Megahit struct {
	MinContigLen int
	KMin         int
	KMax         int
	KStep        int
	MinCount     int
	Threads      int
}

// Flye holds the meta-assembly stage settings.
type Flye struct {
	Threads int
}

// Sample renders a megahit invocation for one sample's read pair.
func (m Megahit) Sample(r1, r2, outDir, prefix string) string {
	return m.render(r1, r2, outDir, prefix)
}

// Group renders a megahit co-assembly invocation over the pooled read
// pairs of a group, comma-joined as megahit expects.
func (m Megahit) Group(r1s, r2s []string, outDir, prefix string) string {
	return m.render(strings.Join(r1s, ","), strings.Join(r2s, ","), outDir, prefix)
}

func (m Megahit) render(r1, r2, outDir, prefix string) string {
	return fmt.Sprintf(
		"megahit -1 %s -2 %s -o %s --out-prefix %s --min-contig-len %d --k-min %d --k-max %d --k-step %d --min-count %d -t %d",
		r1, r2, outDir, prefix,
		m.MinContigLen, m.KMin, m.KMax, m.KStep, m.MinCount, m.Threads,
	)
}

// Meta renders the flye meta-assembly of a condition's concatenated
// contigs.
func (f Flye) Meta(input, outDir string) string {
	return fmt.Sprintf("flye --subassemblies %s --out-dir %s --meta -t %d", input, outDir, f.Threads)
}

// Write emits the commands as an executable shell script that stops at
// the first failure.
func Write(path, header string, cmds []string) error {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("set -euo pipefail\n\n")
	if header != "" {
		for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
			b.WriteString("# " + line + "\n")
		}
		b.WriteString("\n")
	}
	for _, cmd := range cmds {
		b.WriteString(cmd + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0755); err != nil {
		return fmt.Errorf("failed to write script %s: %w", path, err)
	}
	return nil
}
