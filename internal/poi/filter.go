package poi

import (
	"sort"
	"strings"

	"github.com/citywander/trip-planner/pkg/geo"
)

// minKeywordLength drops stop words like "a", "to", "of" from free-text queries
const minKeywordLength = 3

// Filter narrows a candidate pool to visitable places near an origin. A
// candidate survives only when it lies within radiusMeters of the origin AND
// its category is on the allow-list; surviving candidates are scored against
// the free-text query, sorted by score (stable, so pool order breaks ties),
// and truncated to maxResults. Filtering is pure selection: it never fails
// and an empty result is a valid result.
type Filter struct {
	categories *CategorySet
}

// NewFilter creates a filter over the given allow-list. A nil set means the
// built-in defaults.
func NewFilter(categories *CategorySet) *Filter {
	if categories == nil {
		categories = DefaultCategorySet()
	}
	return &Filter{categories: categories}
}

// Apply runs the radius and allow-list gates, then ranks by relevance
func (f *Filter) Apply(pool []Candidate, originLat, originLng, radiusMeters float64, freeText string, maxResults int) []Candidate {
	keywords := extractKeywords(freeText)

	type scored struct {
		candidate Candidate
		score     int
	}

	matched := make([]scored, 0, len(pool))
	for _, c := range pool {
		if geo.Haversine(originLat, originLng, c.Latitude, c.Longitude) > radiusMeters {
			continue
		}
		if !f.categories.Contains(c.Category) {
			continue
		}
		matched = append(matched, scored{candidate: c, score: score(c, keywords)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if maxResults > 0 && len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	result := make([]Candidate, len(matched))
	for i, m := range matched {
		result[i] = m.candidate
	}
	return result
}

// ApplyGrouped ranks like Apply but caps each category group separately, so a
// dense restaurant district cannot crowd the sights out of the pool handed to
// trip composition.
func (f *Filter) ApplyGrouped(pool []Candidate, originLat, originLng, radiusMeters float64, freeText string, caps GroupCaps) []Candidate {
	ranked := f.Apply(pool, originLat, originLng, radiusMeters, freeText, 0)

	counts := make(map[Group]int)
	result := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		group := GroupOf(c.Category)
		if limit := caps.limit(group); limit > 0 && counts[group] >= limit {
			continue
		}
		counts[group]++
		result = append(result, c)
	}
	return result
}

// GroupCaps bounds results per category group; zero means unlimited
type GroupCaps struct {
	Historical int
	Food       int
	Lodging    int
}

func (g GroupCaps) limit(group Group) int {
	switch group {
	case GroupHistorical:
		return g.Historical
	case GroupFood:
		return g.Food
	case GroupLodging:
		return g.Lodging
	default:
		return 0
	}
}

// score counts keyword hits across name, category and description, plus one
// point for simply being allow-listed so candidates keep a non-zero baseline
// under an empty query.
func score(c Candidate, keywords []string) int {
	s := 1

	if len(keywords) == 0 {
		return s
	}

	haystack := strings.ToLower(c.Name + " " + c.Category + " " + c.Description)
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			s++
		}
	}
	return s
}

func extractKeywords(freeText string) []string {
	fields := strings.Fields(strings.ToLower(freeText))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minKeywordLength {
			keywords = append(keywords, f)
		}
	}
	return keywords
}
