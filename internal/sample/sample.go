// Package sample locates paired-read sample files by the experiment's
// naming convention: {sample_id}_rrna_removed_R{1,2}.fastq, optionally
// gzipped.
package sample

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	r1Suffix = "_rrna_removed_R1.fastq"
	r2Suffix = "_rrna_removed_R2.fastq"
)

// List returns the sorted sample IDs found in dir, one per R1 file.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+r1Suffix))
	if err != nil {
		return nil, err
	}
	gzMatches, err := filepath.Glob(filepath.Join(dir, "*"+r1Suffix+".gz"))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, m := range append(matches, gzMatches...) {
		id := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(m), ".gz"), r1Suffix)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// Pair returns the R1 and R2 paths of a sample, erroring when either
// mate file is missing.
func Pair(dir, id string) (r1, r2 string, err error) {
	if r1, err = find(dir, id+r1Suffix); err != nil {
		return "", "", err
	}
	if r2, err = find(dir, id+r2Suffix); err != nil {
		return "", "", err
	}
	return r1, r2, nil
}

// find returns the path of name in dir, trying the gzipped variant
// before giving up.
func find(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if _, err := os.Stat(path + ".gz"); err == nil {
		return path + ".gz", nil
	}
	return "", fmt.Errorf("failed to find read file %s in %s", name, dir)
}
