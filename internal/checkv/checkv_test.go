package checkv

import (
	"strings"
	"testing"
)

const summaryFixture = `contig_id	contig_length	gene_count	viral_genes	host_genes	checkv_quality	completeness
kmer_k141_1	42000	50	30	2	Complete	100.0
kmer_k141_2	18000	21	10	1	High-quality	95.5
kmer_k141_3	2100	3	1	0	Low-quality	12.0
kmer_k141_4	900	1	0	0	Not-determined	NA
`

func Test_Read(t *testing.T) {
	records, err := Read(strings.NewReader(summaryFixture))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Read() = %d records, want 4", len(records))
	}

	first := records[0]
	if first.ContigID != "kmer_k141_1" || first.Quality != Complete {
		t.Errorf("Read() first record = %+v", first)
	}
	if first.ViralGenes != 30 || first.HostGenes != 2 {
		t.Errorf("Read() gene counts = %v/%v, want 30/2", first.ViralGenes, first.HostGenes)
	}

	last := records[3]
	if last.HasCompleteness {
		t.Error("Read() NA completeness must not parse as a value")
	}
}

func Test_ReadMissingColumns(t *testing.T) {
	if _, err := Read(strings.NewReader("a\tb\n1\t2\n")); err == nil {
		t.Error("Read() expected an error without the checkv columns")
	}
}

func Test_Summarize(t *testing.T) {
	records, err := Read(strings.NewReader(summaryFixture))
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize("kmer", records)
	if s.TotalContigs != 4 {
		t.Errorf("TotalContigs = %d, want 4", s.TotalContigs)
	}
	if s.Tiers[Complete] != 1 || s.Tiers[HighQuality] != 1 || s.Tiers[LowQuality] != 1 || s.Tiers[NotDetermined] != 1 {
		t.Errorf("Tiers = %v", s.Tiers)
	}
	if s.Tiers[MediumQuality] != 0 {
		t.Errorf("Tiers[MediumQuality] = %d, want 0", s.Tiers[MediumQuality])
	}

	// completeness mean skips the NA contig: (100 + 95.5 + 12) / 3
	if want := (100 + 95.5 + 12.0) / 3; s.CompletenessMean != want {
		t.Errorf("CompletenessMean = %v, want %v", s.CompletenessMean, want)
	}
	if want := (30 + 10 + 1 + 0) / 4.0; s.ViralGenesMean != want {
		t.Errorf("ViralGenesMean = %v, want %v", s.ViralGenesMean, want)
	}
}

func Test_SummarizeEmpty(t *testing.T) {
	s := Summarize("global", nil)
	if s.TotalContigs != 0 || s.CompletenessMean != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}
