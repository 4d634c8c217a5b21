package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BitPonyLLC/logohue/pkg/logocolor"
)

// ErrNotFound is returned by lookups that match no logo.
var ErrNotFound = errors.New("not found")

// Entry is everything known about one ranked brand after a run.
type Entry struct {
	Rank      int
	Brand     string
	File      string
	Result    logocolor.LogoResult
	Prominent string
	Cached    bool
	Err       error
}

// Store holds the results of one corpus run, indexed by rank. It is owned by
// the caller and is read-only once built.
type Store struct {
	entries []Entry
	byName  map[string]int
	byFold  map[string]int
}

// NewStore indexes entries, which must be in rank order.
func NewStore(entries []Entry) *Store {
	s := &Store{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
		byFold:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if _, ok := s.byName[e.Brand]; !ok {
			s.byName[e.Brand] = i
		}

		fold := strings.ToLower(e.Brand)
		if _, ok := s.byFold[fold]; !ok {
			s.byFold[fold] = i
		}
	}

	return s
}

// Len is the number of ranked brands in the store.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns every entry in rank order.
func (s *Store) Entries() []Entry {
	return s.entries
}

// LookupByRank returns the entry at the 1-based rank.
func (s *Store) LookupByRank(rank int) (Entry, error) {
	if rank < 1 || rank > len(s.entries) {
		return Entry{}, fmt.Errorf("%w: rank %d (expected 1-%d)", ErrNotFound, rank, len(s.entries))
	}
	return s.entries[rank-1], nil
}

// LookupByName finds a brand by exact name, falling back to a
// case-insensitive match.
func (s *Store) LookupByName(name string) (Entry, error) {
	if i, ok := s.byName[name]; ok {
		return s.entries[i], nil
	}

	if i, ok := s.byFold[strings.ToLower(name)]; ok {
		return s.entries[i], nil
	}

	return Entry{}, fmt.Errorf("%w: brand %q", ErrNotFound, name)
}

// Tally aggregates the categories of every successfully classified entry.
func (s *Store) Tally() logocolor.CorpusTally {
	results := make([]logocolor.LogoResult, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Err == nil {
			results = append(results, e.Result)
		}
	}
	return logocolor.AggregateResults(results)
}

// Failed returns the entries that could not be classified.
func (s *Store) Failed() []Entry {
	var failed []Entry
	for _, e := range s.entries {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}
