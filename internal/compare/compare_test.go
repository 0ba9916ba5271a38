package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/asmstat"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/grouping"
)

func writeAssembly(t *testing.T, dir, name string, contigs ...string) {
	t.Helper()
	var b strings.Builder
	for i, c := range contigs {
		b.WriteString(">contig_")
		b.WriteString(string(rune('a' + i)))
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString("\n")
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_BuildTable(t *testing.T) {
	dir := t.TempDir()
	writeAssembly(t, dir, "individual_meta_assembly.fasta", "ACGTACGTAC", "ACGT")
	writeAssembly(t, dir, "random_42_meta_assembly.fasta", "ACGTACGT")
	writeAssembly(t, dir, "kmer_meta_assembly.fasta", "ACGTACGTACGTACGT")
	// random_43 and global never finished
	writeAssembly(t, dir, "random_43_meta_assembly.fasta") // headers only would also do: zero contigs

	table, err := BuildTable(dir, Final([]int64{42, 43}), asmstat.DefaultOptions())
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}

	if len(table.Conditions) != 3 {
		t.Fatalf("BuildTable() scored %d conditions, want 3: %+v", len(table.Conditions), table.Conditions)
	}
	if len(table.Missing) != 2 {
		t.Errorf("BuildTable() missing = %v, want the empty and the absent file", table.Missing)
	}

	kmer := table.OfType(grouping.Kmer)
	if len(kmer) != 1 {
		t.Fatalf("OfType(kmer) = %d conditions, want 1", len(kmer))
	}
	if kmer[0].Metrics["total_length"] != 16 {
		t.Errorf("kmer total_length = %v, want 16", kmer[0].Metrics["total_length"])
	}
}

func Test_BuildTableInvalidOptions(t *testing.T) {
	_, err := BuildTable(t.TempDir(), Final(nil), asmstat.Options{NxPercentages: []float64{200}, LongestN: 10})
	if err == nil {
		t.Error("BuildTable() expected a contract error for an invalid percentage")
	}
}

func Test_ScoreFiles(t *testing.T) {
	dir := t.TempDir()
	writeAssembly(t, dir, "group_1.contigs.fa", "ACGTACGT")
	writeAssembly(t, dir, "group_2.contigs.fa", "ACGT", "ACGTAC")

	scored, missing, err := ScoreFiles([]string{
		filepath.Join(dir, "group_1.contigs.fa"),
		filepath.Join(dir, "group_2.contigs.fa"),
		filepath.Join(dir, "group_3.contigs.fa"), // still assembling
	}, asmstat.DefaultOptions())
	if err != nil {
		t.Fatalf("ScoreFiles() error = %v", err)
	}
	if len(scored) != 2 || len(missing) != 1 {
		t.Errorf("ScoreFiles() = %d scored, %d missing, want 2, 1", len(scored), len(missing))
	}
}

func Test_WriteCSV(t *testing.T) {
	dir := t.TempDir()
	writeAssembly(t, dir, "kmer_meta_assembly.fasta", "ACGTACGTACGTACGT")
	writeAssembly(t, dir, "random_42_meta_assembly.fasta", "ACGTACGT")

	table, err := BuildTable(dir, Final([]int64{42}), asmstat.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := WriteCSV(&out, table); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteCSV() wrote %d lines, want header + 2 rows:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "condition,condition_type,seed,assembly_file,total_length,n_contigs,n50") {
		t.Errorf("WriteCSV() header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "random_42,random,42,") {
		t.Errorf("WriteCSV() first row = %q", lines[1])
	}
}

func Test_WriteReport(t *testing.T) {
	table := tableFixture()
	results, err := KmerVsRandom(table, []string{"n50", "total_length"})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := WriteReport(&out, table, results, Recommend(results)); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"KEY QUESTION",
		"N50:",
		"RECOMMENDATION:",
		"Beats 5/5 random assemblies",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteReport() missing %q:\n%s", want, got)
		}
	}
}
