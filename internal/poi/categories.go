package poi

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// defaultVisitableCategories is the built-in allow-list of place categories
// worth routing a walking trip through. Categories outside this set (plain
// infrastructure, private residences, offices) never qualify as stops.
// The list is configuration data: a JSON file can replace it wholesale via
// LoadCategorySet.
var defaultVisitableCategories = []string{
	"tourism.sights",
	"tourism.sights.castle",
	"tourism.sights.ruines",
	"tourism.sights.memorial",
	"tourism.sights.place_of_worship",
	"tourism.attraction",
	"tourism.information",
	"heritage",
	"heritage.unesco",
	"religion.place_of_worship",
	"entertainment.museum",
	"catering.restaurant",
	"catering.cafe",
	"catering.fast_food",
	"catering.bar",
	"accommodation.hotel",
	"accommodation.guest_house",
	"accommodation.hostel",
	"accommodation.motel",
}

// CategorySet answers membership questions for the visitable allow-list.
// Membership is exact or by dotted prefix, so "tourism.sights" admits
// "tourism.sights.castle".
type CategorySet struct {
	entries map[string]struct{}
}

// DefaultCategorySet returns the built-in allow-list
func DefaultCategorySet() *CategorySet {
	return NewCategorySet(defaultVisitableCategories)
}

// NewCategorySet builds a set from explicit entries
func NewCategorySet(categories []string) *CategorySet {
	entries := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			entries[c] = struct{}{}
		}
	}
	return &CategorySet{entries: entries}
}

// LoadCategorySet reads an allow-list from a JSON file containing a string
// array. An empty path returns the built-in defaults.
func LoadCategorySet(path string) (*CategorySet, error) {
	if path == "" {
		return DefaultCategorySet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("category file %s is empty", path)
	}

	return NewCategorySet(categories), nil
}

// Contains reports whether a category belongs to the allow-list, either
// exactly or under an allow-listed prefix.
func (s *CategorySet) Contains(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}

	if _, ok := s.entries[category]; ok {
		return true
	}

	// Walk dotted prefixes: "catering.cafe.coffee_shop" matches "catering.cafe"
	for i := len(category) - 1; i > 0; i-- {
		if category[i] == '.' {
			if _, ok := s.entries[category[:i]]; ok {
				return true
			}
		}
	}

	return false
}

func hasCategoryPrefix(category, prefix string) bool {
	category = strings.ToLower(category)
	return category == prefix || strings.HasPrefix(category, prefix+".")
}
