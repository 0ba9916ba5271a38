// Package grouping builds and serializes the sample-grouping descriptors
// the experiment compares: every sample alone, all samples together, the
// k-mer clustering produced by the external grouping tool, and random
// groupings that replicate the k-mer group-size structure as the null
// model.
package grouping

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Strategies of a Grouping.
const (
	Individual = "individual"
	Random     = "random"
	Kmer       = "kmer"
	Global     = "global"
)

// Group is one co-assembly unit: the samples pooled into a single
// assembler invocation.
type Group struct {
	ID      string   `json:"group_id"`
	Samples []string `json:"samples"`

	// "individual" or "grouped", the assembler input mode
	Strategy string `json:"strategy"`

	Size int `json:"size"`

	// carried through from the clustering tool; neutral 0.5 on
	// groupings that were not produced by clustering
	SimilarityThreshold float64 `json:"similarity_threshold"`
	Confidence          float64 `json:"confidence"`
}

// Grouping is one experimental condition's set of groups.
type Grouping struct {
	Name     string  `json:"name"`
	Strategy string  `json:"strategy"`
	Seed     int64   `json:"seed,omitempty"`
	Groups   []Group `json:"groups"`
}

// Read parses a grouping descriptor, either one written by Write or the
// k-mer clustering tool's results file.
func Read(path string) (*Grouping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grouping descriptor: %w", err)
	}
	defer f.Close()

	g := &Grouping{}
	if err := json.NewDecoder(f).Decode(g); err != nil {
		return nil, fmt.Errorf("failed to parse grouping descriptor %s: %w", path, err)
	}
	if len(g.Groups) == 0 {
		return nil, fmt.Errorf("no groups found in %s", path)
	}

	for i := range g.Groups {
		g.Groups[i].Size = len(g.Groups[i].Samples)
	}
	return g, nil
}

// Write serializes the grouping to path as indented JSON.
func (g *Grouping) Write(path string) error {
	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize grouping %s: %w", g.Name, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write grouping %s: %w", g.Name, err)
	}
	return nil
}

// Samples flattens the grouping back to its sample IDs, in group order.
func (g *Grouping) Samples() []string {
	var samples []string
	for _, group := range g.Groups {
		samples = append(samples, group.Samples...)
	}
	return samples
}

// NewIndividual puts every sample in its own group.
func NewIndividual(samples []string) *Grouping {
	g := &Grouping{Name: Individual, Strategy: Individual}
	for i, s := range samples {
		g.Groups = append(g.Groups, Group{
			ID:       fmt.Sprintf("individual_group_%d", i+1),
			Samples:  []string{s},
			Strategy: "individual",
			Size:     1,
		})
	}
	return g
}

// NewGlobal pools every sample into one group.
func NewGlobal(samples []string) *Grouping {
	return &Grouping{
		Name:     Global,
		Strategy: Global,
		Groups: []Group{{
			ID:       "global_group_1",
			Samples:  samples,
			Strategy: "grouped",
			Size:     len(samples),
		}},
	}
}

// NewRandom shuffles the k-mer grouping's samples under the given seed and
// re-cuts them into groups with exactly the k-mer group-size structure.
// This is the null hypothesis the clustering has to beat.
func NewRandom(kmer *Grouping, seed int64) (*Grouping, error) {
	if kmer == nil || len(kmer.Groups) == 0 {
		return nil, fmt.Errorf("cannot build a random grouping: no k-mer groups to mirror")
	}

	samples := kmer.Samples()
	sizes := make([]int, len(kmer.Groups))
	for i, group := range kmer.Groups {
		sizes[i] = len(group.Samples)
	}

	shuffled := make([]string, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	g := &Grouping{
		Name:     fmt.Sprintf("random_%d", seed),
		Strategy: Random,
		Seed:     seed,
	}
	next := 0
	for i, size := range sizes {
		g.Groups = append(g.Groups, Group{
			ID:                  fmt.Sprintf("random_seed%d_group_%d", seed, i+1),
			Samples:             shuffled[next : next+size],
			Strategy:            "grouped",
			Size:                size,
			SimilarityThreshold: 0.5, // neutral, not produced by clustering
			Confidence:          0.5,
		})
		next += size
	}

	return g, nil
}
