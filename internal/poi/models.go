package poi

// Candidate is one point of interest in the pre-trip candidate pool.
// Identity is ID, unique within a planning request; candidates are immutable
// once produced.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
}

// Group buckets candidates for per-group result caps, so the mix handed to
// the proposal step stays biased the way the product wants.
type Group string

const (
	GroupHistorical Group = "historical"
	GroupFood       Group = "food"
	GroupLodging    Group = "lodging"
	GroupOther      Group = "other"
)

// GroupOf classifies a category string into a coarse group
func GroupOf(category string) Group {
	switch {
	case hasCategoryPrefix(category, "catering"):
		return GroupFood
	case hasCategoryPrefix(category, "accommodation"):
		return GroupLodging
	case hasCategoryPrefix(category, "tourism"),
		hasCategoryPrefix(category, "heritage"),
		hasCategoryPrefix(category, "religion"),
		hasCategoryPrefix(category, "entertainment.museum"):
		return GroupHistorical
	default:
		return GroupOther
	}
}
