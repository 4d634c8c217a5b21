package logocolor

// Counts holds one occurrence count per category, indexed by Category.
type Counts [numCategories]int

// Of returns the count for c.
func (cs Counts) Of(c Category) int {
	return cs[c]
}

// Max returns the first category, in tie-break order, holding the highest count.
//
// When every count is zero (an image with no ink) this yields Yellow. That is
// an artifact of the ordering rather than a meaningful answer, and is kept so
// results stay reproducible.
func (cs Counts) Max() Category {
	best := Yellow
	for _, c := range Categories {
		if cs[c] > cs[best] {
			best = c
		}
	}
	return best
}

// Resolve returns the plurality category of the given per-pixel categories.
func Resolve(categories []Category) Category {
	var counts Counts
	for _, c := range categories {
		counts[c]++
	}
	return counts.Max()
}
