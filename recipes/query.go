package recipes

import (
	"net/url"
	"strconv"
	"strings"

	"plateful/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogConfig carries the tunables of the listing endpoint. Passed
// explicitly so tests can run with alternate limits.
type CatalogConfig struct {
	MaxPageSize int64
}

var DefaultCatalogConfig = CatalogConfig{MaxPageSize: 1000}

// ListParams is the normalized form of the catalog query string. Malformed
// inputs never survive parsing: an invalid ingredientId disappears, invalid
// excludeIds entries are dropped one by one, and pagination only exists
// when both page and pageSize were supplied.
type ListParams struct {
	Q            string
	Cuisine      string
	Category     string
	IngredientID *primitive.ObjectID
	ExcludeIDs   []primitive.ObjectID
	Trending     bool
	Page         *int64
	PageSize     *int64
}

func ParseListParams(q url.Values) ListParams {
	p := ListParams{
		Q:        strings.TrimSpace(q.Get("q")),
		Cuisine:  strings.TrimSpace(q.Get("cuisine")),
		Category: strings.TrimSpace(q.Get("category")),
		Trending: q.Get("trending") == "true",
	}

	if oid, err := primitive.ObjectIDFromHex(q.Get("ingredientId")); err == nil {
		p.IngredientID = &oid
	}

	for _, raw := range utils.SplitCSV(q.Get("excludeIds")) {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			p.ExcludeIDs = append(p.ExcludeIDs, oid)
		}
	}

	if v, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil {
		p.Page = &v
	}
	if v, err := strconv.ParseInt(q.Get("pageSize"), 10, 64); err == nil {
		p.PageSize = &v
	}

	return p
}

// BaseFilter ANDs together whichever of text search, cuisine, category and
// ingredient membership were supplied.
func (p ListParams) BaseFilter() bson.M {
	filter := bson.M{}
	if p.Q != "" {
		filter["$text"] = bson.M{"$search": p.Q}
	}
	if p.Cuisine != "" {
		filter["cuisine"] = p.Cuisine
	}
	if p.Category != "" {
		filter["category"] = p.Category
	}
	if p.IngredientID != nil {
		filter["ingredients.ingredientid"] = *p.IngredientID
	}
	return filter
}

// EffectiveFilter layers the id-exclusion predicate on top of the base
// filter. Layered via $and rather than merged so an exclusion can never
// clobber a base clause; both the count and the data query must use this
// same object.
func (p ListParams) EffectiveFilter() bson.M {
	base := p.BaseFilter()
	if len(p.ExcludeIDs) == 0 {
		return base
	}
	exclude := bson.M{"_id": bson.M{"$nin": p.ExcludeIDs}}
	if len(base) == 0 {
		return exclude
	}
	return bson.M{"$and": []bson.M{base, exclude}}
}

// Sort is newest-first by default; trending switches to popularity with
// creation time as tie-break. Ties beyond that are left to the store.
func (p ListParams) Sort() bson.D {
	if p.Trending {
		return bson.D{{Key: "popularity", Value: -1}, {Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}}
}

// Window returns the skip/limit pair, or paginated=false when either page
// or pageSize is missing; in that case the whole filtered set is one page.
func (p ListParams) Window(cfg CatalogConfig) (skip, limit int64, paginated bool) {
	if p.Page == nil || p.PageSize == nil {
		return 0, 0, false
	}
	page := *p.Page
	if page < 1 {
		page = 1
	}
	size := *p.PageSize
	if size < 1 {
		size = 1
	}
	if size > cfg.MaxPageSize {
		size = cfg.MaxPageSize
	}
	return (page - 1) * size, size, true
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	PageSize   int64 `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
}

// BuildMeta computes the meta block for a listing response. Unpaginated
// requests report a single page whose pageSize equals the total.
func BuildMeta(total int64, p ListParams, cfg CatalogConfig) PageMeta {
	_, limit, paginated := p.Window(cfg)
	if !paginated {
		return PageMeta{Total: total, Page: 1, PageSize: total, TotalPages: 1}
	}

	page := *p.Page
	if page < 1 {
		page = 1
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return PageMeta{Total: total, Page: page, PageSize: limit, TotalPages: pages}
}
