package menu

import (
	"fmt"
	"io"
)

type item struct {
	key   string
	label string
	next  State
}

var items = []item{
	{key: "1", label: "Look up a logo and identify its colour by rank", next: LookupByRank},
	{key: "2", label: "Look up a brand's rank and colour by name", next: LookupByName},
	{key: "3", label: "Try a different year", next: SelectYear},
	{key: "4", label: "Exit", next: Exit},
}

func findItem(key string) (item, bool) {
	for _, it := range items {
		if it.key == key {
			return it, true
		}
	}
	return item{}, false
}

func showItems(w io.Writer) {
	fmt.Fprintln(w, "What would you like to do next?")
	for _, it := range items {
		fmt.Fprintf(w, "  %s: %s\n", it.key, it.label)
	}
}
