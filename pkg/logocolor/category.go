// Package logocolor classifies the dominant perceptual color of a logo image
// into one of a fixed set of named hue categories.
package logocolor

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is one of the named color categories a pixel or logo can fall into.
type Category int

// The declaration order is the tie-break order used by Resolve.
const (
	Yellow Category = iota
	Orange
	Red
	Pink
	Blue
	Green
	Monochrome

	numCategories = int(Monochrome) + 1
)

// Categories lists every category in tie-break order.
var Categories = [numCategories]Category{Yellow, Orange, Red, Pink, Blue, Green, Monochrome}

var categoryNames = [numCategories]string{"yellow", "orange", "red", "pink", "blue", "green", "monochrome"}

var titleCaser = cases.Title(language.English)

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Title is the display form of the category name (e.g. "Yellow").
func (c Category) Title() string {
	return titleCaser.String(c.String())
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Yellow && c <= Monochrome
}

// ParseCategory looks up a category by name, ignoring case.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color category: %q", name)
}

// MarshalText encodes the category as its lower-case name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unable to marshal invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category from its name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
