// Package checkv consumes the quality_summary.tsv written by the CheckV
// viral quality-assessment tool and reduces it to per-strategy counts.
// The tool itself runs outside this program; only its output is read.
package checkv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// quality tiers as CheckV spells them
const (
	Complete      = "Complete"
	HighQuality   = "High-quality"
	MediumQuality = "Medium-quality"
	LowQuality    = "Low-quality"
	NotDetermined = "Not-determined"
)

// Record is one contig's quality assessment.
type Record struct {
	ContigID     string
	Quality      string
	ViralGenes   float64
	HostGenes    float64
	Completeness float64

	// completeness is "NA" on undetermined contigs
	HasCompleteness bool
}

// Summary aggregates one strategy's quality_summary.tsv.
type Summary struct {
	Strategy     string `json:"strategy"`
	TotalContigs int    `json:"total_contigs"`

	// contig count per quality tier
	Tiers map[string]int `json:"quality_tiers"`

	ViralGenesMean   float64 `json:"viral_genes_mean"`
	HostGenesMean    float64 `json:"host_genes_mean"`
	CompletenessMean float64 `json:"completeness_mean"`
}

// Read parses a quality_summary.tsv stream.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1 // CheckV pads the warnings column inconsistently

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse quality summary: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("quality summary has no header")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, required := range []string{"contig_id", "checkv_quality"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("quality summary missing the %s column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []Record
	for _, row := range rows[1:] {
		rec := Record{
			ContigID: field(row, "contig_id"),
			Quality:  field(row, "checkv_quality"),
		}
		rec.ViralGenes, _ = strconv.ParseFloat(field(row, "viral_genes"), 64)
		rec.HostGenes, _ = strconv.ParseFloat(field(row, "host_genes"), 64)
		if v, err := strconv.ParseFloat(field(row, "completeness"), 64); err == nil {
			rec.Completeness = v
			rec.HasCompleteness = true
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile parses the quality summary of one strategy.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Summarize reduces a strategy's records to tier counts and gene/
// completeness means.
func Summarize(strategy string, records []Record) Summary {
	s := Summary{
		Strategy:     strategy,
		TotalContigs: len(records),
		Tiers: map[string]int{
			Complete:      0,
			HighQuality:   0,
			MediumQuality: 0,
			LowQuality:    0,
			NotDetermined: 0,
		},
	}
	if len(records) == 0 {
		return s
	}

	var viral, host, completeness []float64
	for _, r := range records {
		s.Tiers[r.Quality]++
		viral = append(viral, r.ViralGenes)
		host = append(host, r.HostGenes)
		if r.HasCompleteness {
			completeness = append(completeness, r.Completeness)
		}
	}

	s.ViralGenesMean = stat.Mean(viral, nil)
	s.HostGenesMean = stat.Mean(host, nil)
	if len(completeness) > 0 {
		s.CompletenessMean = stat.Mean(completeness, nil)
	}
	return s
}
