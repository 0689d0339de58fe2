// Package pricehint holds the display-only price hints shown under the dish selector.
// The hints are static and never sent to the backend.
package pricehint

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unknown is shown when a dish has no hint.
const Unknown = "₹--"

// Entry is one hinted dish price.
type Entry struct {
	Dish  string
	Price decimal.Decimal
}

// Store is an in-memory hint table keyed by dish name.
type Store struct {
	entries map[string]Entry
}

// NewStore creates a store with the built-in street-price hints.
func NewStore() *Store {
	s := &Store{entries: make(map[string]Entry)}
	s.Add(Entry{Dish: "Dal Rice", Price: decimal.NewFromInt(45)})
	s.Add(Entry{Dish: "Chole Bhature", Price: decimal.NewFromInt(65)})
	s.Add(Entry{Dish: "Paneer Tikka", Price: decimal.NewFromInt(180)})
	s.Add(Entry{Dish: "Chicken Biryani", Price: decimal.NewFromInt(220)})
	return s
}

// Add inserts or replaces a hint.
func (s *Store) Add(e Entry) {
	s.entries[key(e.Dish)] = e
}

// Get looks a dish up, ignoring case and surrounding whitespace.
func (s *Store) Get(dish string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[key(dish)]
	return e, ok
}

// Hint renders the hint label for dish.
func (s *Store) Hint(dish string) string {
	e, ok := s.Get(dish)
	if !ok {
		return Unknown
	}
	return "₹" + e.Price.String()
}

func key(dish string) string {
	return strings.ToLower(strings.TrimSpace(dish))
}
