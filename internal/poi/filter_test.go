package poi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() []Candidate {
	return []Candidate{
		{ID: "1", Name: "Old Town Hall", Category: "tourism.sights", Latitude: 40.001, Longitude: -75.0},
		{ID: "2", Name: "River Cafe", Category: "catering.cafe", Latitude: 40.002, Longitude: -75.001},
		{ID: "3", Name: "Grand Hotel", Category: "accommodation.hotel", Latitude: 40.0005, Longitude: -75.0005},
		{ID: "4", Name: "Bus Depot", Category: "transport.bus_station", Latitude: 40.001, Longitude: -75.001},
	}
}

// ========================================
// TESTS: radius and allow-list gates
// ========================================

func TestFilter_ExcludesCandidatesOutsideRadius(t *testing.T) {
	filter := NewFilter(nil)
	pool := []Candidate{
		// Roughly 1000m north of the origin
		{ID: "far", Name: "Far Museum", Category: "entertainment.museum", Latitude: 0.009, Longitude: 0},
		// Roughly 100m north of the origin
		{ID: "near", Name: "Near Museum", Category: "entertainment.museum", Latitude: 0.0009, Longitude: 0},
	}

	result := filter.Apply(pool, 0, 0, 500, "", 0)

	require.Len(t, result, 1)
	assert.Equal(t, "near", result[0].ID)
}

func TestFilter_ExcludesCategoriesOffAllowList(t *testing.T) {
	filter := NewFilter(nil)

	result := filter.Apply(testPool(), 40.0, -75.0, 5000, "", 0)

	ids := make([]string, 0, len(result))
	for _, c := range result {
		ids = append(ids, c.ID)
	}
	assert.NotContains(t, ids, "4", "transport infrastructure is not visitable")
	assert.Len(t, result, 3)
}

func TestFilter_KeywordScoringRanksMatchesFirst(t *testing.T) {
	filter := NewFilter(nil)

	result := filter.Apply(testPool(), 40.0, -75.0, 5000, "cozy cafe by the river", 0)

	require.NotEmpty(t, result)
	assert.Equal(t, "2", result[0].ID, "River Cafe matches both keywords")
}

func TestFilter_ShortTokensIgnored(t *testing.T) {
	filter := NewFilter(nil)

	// "a", "to" are below the keyword length floor; scores stay equal and
	// pool order holds
	result := filter.Apply(testPool(), 40.0, -75.0, 5000, "a to", 0)

	require.Len(t, result, 3)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "2", result[1].ID)
	assert.Equal(t, "3", result[2].ID)
}

func TestFilter_StableOrderOnTies(t *testing.T) {
	filter := NewFilter(nil)
	pool := []Candidate{
		{ID: "first", Name: "Chapel A", Category: "tourism.sights", Latitude: 0.0001, Longitude: 0},
		{ID: "second", Name: "Chapel B", Category: "tourism.sights", Latitude: 0.0002, Longitude: 0},
	}

	result := filter.Apply(pool, 0, 0, 500, "", 0)

	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].ID)
	assert.Equal(t, "second", result[1].ID)
}

func TestFilter_TruncatesToMaxResults(t *testing.T) {
	filter := NewFilter(nil)

	result := filter.Apply(testPool(), 40.0, -75.0, 5000, "", 2)

	assert.Len(t, result, 2)
}

func TestFilter_EmptyPoolIsFine(t *testing.T) {
	filter := NewFilter(nil)

	assert.Empty(t, filter.Apply(nil, 40.0, -75.0, 5000, "anything", 10))
}

func TestFilter_GroupedCaps(t *testing.T) {
	filter := NewFilter(nil)
	pool := []Candidate{
		{ID: "h1", Name: "Museum One", Category: "entertainment.museum", Latitude: 0.0001, Longitude: 0},
		{ID: "h2", Name: "Museum Two", Category: "entertainment.museum", Latitude: 0.0002, Longitude: 0},
		{ID: "f1", Name: "Cafe One", Category: "catering.cafe", Latitude: 0.0003, Longitude: 0},
		{ID: "f2", Name: "Cafe Two", Category: "catering.cafe", Latitude: 0.0004, Longitude: 0},
	}

	result := filter.ApplyGrouped(pool, 0, 0, 1000, "", GroupCaps{Historical: 1, Food: 1})

	require.Len(t, result, 2)
	assert.Equal(t, "h1", result[0].ID)
	assert.Equal(t, "f1", result[1].ID)
}

// ========================================
// TESTS: category set
// ========================================

func TestCategorySet_PrefixMembership(t *testing.T) {
	set := DefaultCategorySet()

	assert.True(t, set.Contains("tourism.sights"))
	assert.True(t, set.Contains("tourism.sights.castle"))
	assert.True(t, set.Contains("catering.cafe.coffee_shop"))
	assert.False(t, set.Contains("transport.bus_station"))
	assert.False(t, set.Contains(""))
}

func TestGroupOf(t *testing.T) {
	assert.Equal(t, GroupFood, GroupOf("catering.restaurant"))
	assert.Equal(t, GroupLodging, GroupOf("accommodation.hotel"))
	assert.Equal(t, GroupHistorical, GroupOf("tourism.sights.castle"))
	assert.Equal(t, GroupHistorical, GroupOf("heritage.unesco"))
	assert.Equal(t, GroupOther, GroupOf("transport.bus_station"))
}
