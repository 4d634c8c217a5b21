// Package ranking loads the ordered brand lists of the yearly brand value
// rankings and derives the logo file names that go with them.
package ranking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownYear is returned for a year outside the supported range.
var ErrUnknownYear = errors.New("unknown ranking year")

const fileFormat = "brandirectory-ranking-data-global-%d.csv"

// LogoExt is appended to a brand name to build its logo file name.
const LogoExt = ".png"

// Years is the inclusive range of years with ranking data.
type Years struct {
	Min int
	Max int
}

// DefaultYears covers the rankings shipped with the data set.
var DefaultYears = Years{Min: 2011, Max: 2021}

// Contains reports whether year lies within the range.
func (y Years) Contains(year int) bool {
	return y.Min <= year && year <= y.Max
}

// FileForYear returns the CSV file name holding the ranking for year.
func (y Years) FileForYear(year int) (string, error) {
	if !y.Contains(year) {
		return "", fmt.Errorf("%w: %d (expected %d-%d)", ErrUnknownYear, year, y.Min, y.Max)
	}
	return fmt.Sprintf(fileFormat, year), nil
}

// LoadBrands reads a ranking CSV and returns the first column of every row
// after the header, in rank order. Blank rows are skipped.
func LoadBrands(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse ranking data: %w", err)
	}

	if len(records) == 0 {
		return []string{}, nil
	}

	brands := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		brands = append(brands, record[0])
	}

	return brands, nil
}

// LoadBrandsFile opens pathname and reads its brands.
func LoadBrandsFile(pathname string) ([]string, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}
	defer f.Close()

	brands, err := LoadBrands(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", filepath.Base(pathname), err)
	}

	return brands, nil
}

// FileName returns the logo file name for brand.
func FileName(brand string) string {
	return brand + LogoExt
}

// FileNames maps brands to logo file names, preserving order.
func FileNames(brands []string) []string {
	names := make([]string, len(brands))
	for i, brand := range brands {
		names[i] = FileName(brand)
	}
	return names
}
