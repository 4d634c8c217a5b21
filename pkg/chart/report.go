package chart

import (
	"fmt"
	"strings"

	"github.com/BitPonyLLC/logohue/pkg/logocolor"
)

var moods = map[logocolor.Category]string{
	logocolor.Yellow:     "optimism",
	logocolor.Orange:     "friendliness",
	logocolor.Red:        "excitement",
	logocolor.Pink:       "creativeness",
	logocolor.Blue:       "trust",
	logocolor.Green:      "peacefulness",
	logocolor.Monochrome: "balance",
}

// Mood is the feeling a logo color is commonly said to convey.
func Mood(c logocolor.Category) string {
	return moods[c]
}

// Summary describes the tally in a sentence per category, e.g.
// "Out of the 500 most valuable brands in 2021, 38 had a yellow logo that
// conveys optimism, ...". ranked is the number of brands in the ranking; when
// some of their logos were not analysed both counts are given.
func Summary(tally logocolor.CorpusTally, year, ranked int) string {
	var sb strings.Builder
	if ranked > tally.Total {
		fmt.Fprintf(&sb, "Out of the %d most valuable brands in %d, %d logos could be analysed. Of those,",
			ranked, year, tally.Total)
	} else {
		fmt.Fprintf(&sb, "Out of the %d most valuable brands in %d,", tally.Total, year)
	}

	last := len(logocolor.Categories) - 1
	for i, c := range logocolor.Categories {
		sep := ","
		if i == last {
			sep = "."
		}
		fmt.Fprintf(&sb, " %d had %s %s logo that conveys %s%s", tally.Count(c), article(c), c, Mood(c), sep)
	}

	return sb.String()
}

// Breakdown lists each category's count and percentage, one per line.
func Breakdown(tally logocolor.CorpusTally) string {
	var sb strings.Builder
	for _, c := range logocolor.Categories {
		fmt.Fprintf(&sb, "%-10s %4d %5.1f%%\n", c.Title(), tally.Count(c), tally.Share(c)*100)
	}
	fmt.Fprintf(&sb, "%-10s %4d\n", "Total", tally.Total)

	return sb.String()
}

func article(c logocolor.Category) string {
	if c == logocolor.Orange {
		return "an"
	}
	return "a"
}
