package script

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var megahit = Megahit{
	MinContigLen: 500,
	KMin:         45,
	KMax:         225,
	KStep:        26,
	MinCount:     2,
	Threads:      8,
}

func Test_MegahitSample(t *testing.T) {
	cmd := megahit.Sample("reads/S01_R1.fastq", "reads/S01_R2.fastq", "asm/S01", "S01")

	for _, want := range []string{
		"megahit -1 reads/S01_R1.fastq -2 reads/S01_R2.fastq",
		"-o asm/S01",
		"--out-prefix S01",
		"--min-contig-len 500",
		"--k-min 45 --k-max 225 --k-step 26",
		"--min-count 2",
		"-t 8",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("Sample() = %q: missing %q", cmd, want)
		}
	}
}

func Test_MegahitGroup(t *testing.T) {
	cmd := megahit.Group(
		[]string{"a_R1.fastq", "b_R1.fastq"},
		[]string{"a_R2.fastq", "b_R2.fastq"},
		"asm/group_1", "group_1",
	)

	if !strings.Contains(cmd, "-1 a_R1.fastq,b_R1.fastq") {
		t.Errorf("Group() = %q: R1 list not comma-joined", cmd)
	}
	if !strings.Contains(cmd, "-2 a_R2.fastq,b_R2.fastq") {
		t.Errorf("Group() = %q: R2 list not comma-joined", cmd)
	}
}

func Test_FlyeMeta(t *testing.T) {
	cmd := Flye{Threads: 16}.Meta("asm/kmer_meta_input.fasta", "asm/kmer_flye")

	if cmd != "flye --subassemblies asm/kmer_meta_input.fasta --out-dir asm/kmer_flye --meta -t 16" {
		t.Errorf("Meta() = %q", cmd)
	}
}

func Test_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stage1_megahit.sh")
	err := Write(path, "stage 1: megahit assemblies\ncondition: kmer", []string{
		"megahit -1 a -2 b -o c --out-prefix d",
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	if !strings.HasPrefix(content, "#!/bin/bash\nset -euo pipefail\n") {
		t.Errorf("Write() preamble missing:\n%s", content)
	}
	if !strings.Contains(content, "# stage 1: megahit assemblies\n# condition: kmer\n") {
		t.Errorf("Write() header not commented:\n%s", content)
	}
	if !strings.Contains(content, "megahit -1 a -2 b -o c --out-prefix d\n") {
		t.Errorf("Write() command missing:\n%s", content)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode()&0100 == 0 {
			t.Errorf("Write() script is not executable: %v", info.Mode())
		}
	}
}
