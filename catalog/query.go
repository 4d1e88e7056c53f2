// Package catalog translates raw catalog query parameters into a normalized
// query: a typed filter, a sort key, and pagination bounds.
package catalog

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage = 1
	DefaultSize = 12
)

// sortModes maps the accepted sort tokens to a (field, direction) pair.
// Anything else falls through to the store's natural order.
var sortModes = map[string]bson.D{
	"price_asc":    {{Key: "price", Value: 1}},
	"price_desc":   {{Key: "price", Value: -1}},
	"date_asc":     {{Key: "createdAt", Value: 1}},
	"date_desc":    {{Key: "createdAt", Value: -1}},
	"ratings_asc":  {{Key: "ratings", Value: 1}},
	"ratings_desc": {{Key: "ratings", Value: -1}},
}

// Query is a normalized catalog query. Empty string fields and nil price
// bounds mean the dimension is not filtered at all.
type Query struct {
	Page     int
	Size     int
	Sort     bson.D
	Search   string
	Brand    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Parse builds a Query from raw query parameters. Page and size fall back
// to their defaults on absence or parse failure; a present but non-numeric
// price bound is a validation error.
func Parse(params url.Values) (Query, error) {
	q := Query{
		Page:     positiveInt(params.Get("page"), DefaultPage),
		Size:     positiveInt(params.Get("size"), DefaultSize),
		Sort:     sortModes[params.Get("sort")],
		Search:   strings.TrimSpace(params.Get("search")),
		Brand:    strings.TrimSpace(params.Get("brand")),
		Category: strings.TrimSpace(params.Get("category")),
	}

	var err error
	if q.MinPrice, err = priceBound(params.Get("minPrice"), "minPrice"); err != nil {
		return Query{}, err
	}
	if q.MaxPrice, err = priceBound(params.Get("maxPrice"), "maxPrice"); err != nil {
		return Query{}, err
	}
	return q, nil
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func priceBound(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %q", name, raw)
	}
	return &v, nil
}

// Filter emits the store-level predicate. Omitted dimensions contribute
// nothing to the filter.
func (q Query) Filter() bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

// FindOptions emits pagination, sort, and the projection that keeps
// description out of listing payloads.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSkip(q.SkipCount()).
		SetLimit(int64(q.Size)).
		SetProjection(bson.M{"description": 0})
	if q.Sort != nil {
		opts.SetSort(q.Sort)
	}
	return opts
}

func (q Query) SkipCount() int64 {
	skip := int64(q.Page-1) * int64(q.Size)
	if q.Page > 1 && skip/int64(q.Size) != int64(q.Page-1) {
		// page*size overflowed; any skip past the collection yields the
		// same empty page
		return math.MaxInt64
	}
	return skip
}

// HasFacetFilter reports whether a brand or category restriction is active,
// i.e. whether facet value sets need to be recomputed.
func (q Query) HasFacetFilter() bool {
	return q.Brand != "" || q.Category != ""
}

// CategoryScope is the filter for the distinct-categories facet query. It
// is constrained by the brand filter alone: the category filter must not
// erase its own remaining options.
func (q Query) CategoryScope() bson.M {
	scope := bson.M{}
	if q.Brand != "" {
		scope["brand"] = q.Brand
	}
	return scope
}

// BrandScope is the filter for the distinct-brands facet query, constrained
// by the category filter alone.
func (q Query) BrandScope() bson.M {
	scope := bson.M{}
	if q.Category != "" {
		scope["category"] = q.Category
	}
	return scope
}

// Pages returns the total page count for a matching-document count.
func (q Query) Pages(count int64) int {
	return int(math.Ceil(float64(count) / float64(q.Size)))
}

// CacheKey identifies this query for response caching. Two queries with the
// same key produce the same listing. The key is the url-encoded normalized
// query, so a value containing a delimiter cannot collide with a
// neighboring field and parameter order does not matter.
func (q Query) CacheKey() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if len(q.Sort) > 0 {
		v.Set("sort", fmt.Sprintf("%s:%v", q.Sort[0].Key, q.Sort[0].Value))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		v.Set("min", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("max", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return "products_list_" + v.Encode()
}
