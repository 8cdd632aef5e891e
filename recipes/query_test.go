package recipes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseListParamsIgnoresInvalidIngredientID(t *testing.T) {
	p := ParseListParams(url.Values{"ingredientId": {"not-a-hex-id"}})
	assert.Nil(t, p.IngredientID)

	oid := primitive.NewObjectID()
	p = ParseListParams(url.Values{"ingredientId": {oid.Hex()}})
	require.NotNil(t, p.IngredientID)
	assert.Equal(t, oid, *p.IngredientID)
}

func TestParseListParamsDropsInvalidExcludeIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	p := ParseListParams(url.Values{
		"excludeIds": {a.Hex() + ",garbage," + b.Hex() + ", ,"},
	})
	assert.Equal(t, []primitive.ObjectID{a, b}, p.ExcludeIDs)
}

func TestPaginationRequiresBothParams(t *testing.T) {
	for _, q := range []url.Values{
		{},
		{"page": {"2"}},
		{"pageSize": {"20"}},
	} {
		p := ParseListParams(q)
		_, _, paginated := p.Window(DefaultCatalogConfig)
		assert.False(t, paginated, "pagination applies only when both page and pageSize are supplied: %v", q)
	}

	p := ParseListParams(url.Values{"page": {"2"}, "pageSize": {"20"}})
	skip, limit, paginated := p.Window(DefaultCatalogConfig)
	assert.True(t, paginated)
	assert.Equal(t, int64(20), skip)
	assert.Equal(t, int64(20), limit)
}

func TestPageSizeClampedAtMax(t *testing.T) {
	p := ParseListParams(url.Values{"page": {"1"}, "pageSize": {"5000"}})
	_, limit, paginated := p.Window(DefaultCatalogConfig)
	require.True(t, paginated)
	assert.Equal(t, int64(1000), limit)

	// config is explicit, so alternate caps are honored
	_, limit, _ = p.Window(CatalogConfig{MaxPageSize: 50})
	assert.Equal(t, int64(50), limit)
}

func TestPageFlooredAtOne(t *testing.T) {
	p := ParseListParams(url.Values{"page": {"0"}, "pageSize": {"10"}})
	skip, _, paginated := p.Window(DefaultCatalogConfig)
	require.True(t, paginated)
	assert.Equal(t, int64(0), skip)

	meta := BuildMeta(25, p, DefaultCatalogConfig)
	assert.Equal(t, int64(1), meta.Page)
}

func TestUnpaginatedMetaReportsSinglePage(t *testing.T) {
	p := ParseListParams(url.Values{})
	meta := BuildMeta(37, p, DefaultCatalogConfig)
	assert.Equal(t, int64(37), meta.Total)
	assert.Equal(t, int64(1), meta.Page)
	assert.Equal(t, int64(37), meta.PageSize)
	assert.Equal(t, int64(1), meta.TotalPages)
}

func TestPaginatedMetaRoundsPagesUp(t *testing.T) {
	p := ParseListParams(url.Values{"page": {"2"}, "pageSize": {"10"}})
	meta := BuildMeta(25, p, DefaultCatalogConfig)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, int64(2), meta.Page)
	assert.Equal(t, int64(10), meta.PageSize)
	assert.Equal(t, int64(3), meta.TotalPages)
}

func TestBaseFilterCombinesPredicates(t *testing.T) {
	oid := primitive.NewObjectID()
	p := ParseListParams(url.Values{
		"q":            {"curry"},
		"cuisine":      {"indian"},
		"category":     {"dinner"},
		"ingredientId": {oid.Hex()},
	})

	filter := p.BaseFilter()
	assert.Equal(t, bson.M{"$search": "curry"}, filter["$text"])
	assert.Equal(t, "indian", filter["cuisine"])
	assert.Equal(t, "dinner", filter["category"])
	assert.Equal(t, oid, filter["ingredients.ingredientid"])
}

func TestEffectiveFilterLayersExclusionWithoutClobbering(t *testing.T) {
	a := primitive.NewObjectID()
	p := ParseListParams(url.Values{
		"q":          {"soup"},
		"excludeIds": {a.Hex()},
	})

	filter := p.EffectiveFilter()
	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok, "exclusion must be layered via $and, not merged")
	require.Len(t, clauses, 2)
	assert.Equal(t, bson.M{"$search": "soup"}, clauses[0]["$text"])
	assert.Equal(t, bson.M{"$nin": []primitive.ObjectID{a}}, clauses[1]["_id"])
}

func TestEffectiveFilterWithoutExclusionsIsBase(t *testing.T) {
	p := ParseListParams(url.Values{"cuisine": {"thai"}, "excludeIds": {"junk,more-junk"}})
	filter := p.EffectiveFilter()
	_, hasAnd := filter["$and"]
	assert.False(t, hasAnd, "all-invalid excludeIds leave the base filter untouched")
	assert.Equal(t, "thai", filter["cuisine"])
}

func TestSortOrder(t *testing.T) {
	p := ParseListParams(url.Values{})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, p.Sort())

	p = ParseListParams(url.Values{"trending": {"true"}})
	assert.Equal(t, bson.D{
		{Key: "popularity", Value: -1},
		{Key: "createdAt", Value: -1},
	}, p.Sort())

	// only the literal string "true" flips the flag
	p = ParseListParams(url.Values{"trending": {"1"}})
	assert.False(t, p.Trending)
}
