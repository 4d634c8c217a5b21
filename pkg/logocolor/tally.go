package logocolor

import (
	"fmt"
	"strings"
)

// LogoResult pairs a brand with the dominant category of its logo.
type LogoResult struct {
	Brand    string   `yaml:"brand"`
	Category Category `yaml:"category"`
}

// CorpusTally counts how many logos fell into each category across a run.
type CorpusTally struct {
	Counts Counts
	Total  int
}

// Add records one more logo of category c.
func (t *CorpusTally) Add(c Category) {
	t.Counts[c]++
	t.Total++
}

// Count returns the number of logos in category c.
func (t CorpusTally) Count(c Category) int {
	return t.Counts.Of(c)
}

// Share returns the fraction of the corpus in category c, or 0 for an empty tally.
func (t CorpusTally) Share(c Category) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Counts.Of(c)) / float64(t.Total)
}

func (t CorpusTally) String() string {
	parts := make([]string, 0, numCategories)
	for _, c := range Categories {
		parts = append(parts, fmt.Sprintf("%s=%d", c, t.Counts[c]))
	}
	return fmt.Sprintf("%s total=%d", strings.Join(parts, " "), t.Total)
}

// Aggregate tallies per-logo categories. The tally is independent of order
// and its total is always len(results).
func Aggregate(results []Category) CorpusTally {
	var t CorpusTally
	for _, c := range results {
		t.Add(c)
	}
	return t
}

// AggregateResults tallies the categories of a sequence of logo results.
func AggregateResults(results []LogoResult) CorpusTally {
	categories := make([]Category, len(results))
	for i, r := range results {
		categories[i] = r.Category
	}
	return Aggregate(categories)
}
