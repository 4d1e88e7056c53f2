package catalog

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseQuery(t *testing.T, raw string) Query {
	t.Helper()
	params, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := Parse(params)
	require.NoError(t, err)
	return q
}

func TestParsePagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q := parseQuery(t, "")
		assert.Equal(t, DefaultPage, q.Page)
		assert.Equal(t, DefaultSize, q.Size)
		assert.EqualValues(t, 0, q.SkipCount())
	})

	t.Run("Explicit", func(t *testing.T) {
		q := parseQuery(t, "page=3&size=5")
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 5, q.Size)
		assert.EqualValues(t, 10, q.SkipCount())
	})

	t.Run("GarbageFallsBack", func(t *testing.T) {
		q := parseQuery(t, "page=abc&size=-4")
		assert.Equal(t, DefaultPage, q.Page)
		assert.Equal(t, DefaultSize, q.Size)
	})

	t.Run("ZeroFallsBack", func(t *testing.T) {
		q := parseQuery(t, "page=0&size=0")
		assert.Equal(t, DefaultPage, q.Page)
		assert.Equal(t, DefaultSize, q.Size)
	})
}

func TestParseSortModes(t *testing.T) {
	cases := []struct {
		token     string
		field     string
		direction int
	}{
		{"price_asc", "price", 1},
		{"price_desc", "price", -1},
		{"date_asc", "createdAt", 1},
		{"date_desc", "createdAt", -1},
		{"ratings_asc", "ratings", 1},
		{"ratings_desc", "ratings", -1},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			q := parseQuery(t, "sort="+tc.token)
			require.Len(t, q.Sort, 1)
			assert.Equal(t, tc.field, q.Sort[0].Key)
			assert.Equal(t, tc.direction, q.Sort[0].Value)
		})
	}

	t.Run("UnknownTokenMeansNaturalOrder", func(t *testing.T) {
		q := parseQuery(t, "sort=alphabetical")
		assert.Nil(t, q.Sort)
	})

	t.Run("AbsentMeansNaturalOrder", func(t *testing.T) {
		q := parseQuery(t, "")
		assert.Nil(t, q.Sort)
	})
}

func TestParseSearch(t *testing.T) {
	t.Run("Trimmed", func(t *testing.T) {
		q := parseQuery(t, "search=+coffee+")
		assert.Equal(t, "coffee", q.Search)
	})

	t.Run("WhitespaceOnlyBehavesLikeAbsent", func(t *testing.T) {
		withBlank := parseQuery(t, "search=++")
		without := parseQuery(t, "")
		assert.Equal(t, without.Filter(), withBlank.Filter())
	})

	t.Run("CaseInsensitiveRegexOnTitle", func(t *testing.T) {
		q := parseQuery(t, "search=Mocha")
		filter := q.Filter()
		rx, ok := filter["title"].(primitive.Regex)
		require.True(t, ok)
		assert.Equal(t, "Mocha", rx.Pattern)
		assert.Equal(t, "i", rx.Options)
	})

	t.Run("RegexMetacharactersQuoted", func(t *testing.T) {
		q := parseQuery(t, url.Values{"search": {"a.b*c"}}.Encode())
		rx := q.Filter()["title"].(primitive.Regex)
		assert.Equal(t, `a\.b\*c`, rx.Pattern)
	})
}

func TestParsePriceBounds(t *testing.T) {
	t.Run("BothBoundsInclusive", func(t *testing.T) {
		q := parseQuery(t, "minPrice=10&maxPrice=20")
		price, ok := q.Filter()["price"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, 10.0, price["$gte"])
		assert.Equal(t, 20.0, price["$lte"])
	})

	t.Run("MinOnly", func(t *testing.T) {
		q := parseQuery(t, "minPrice=5.5")
		price := q.Filter()["price"].(bson.M)
		assert.Equal(t, 5.5, price["$gte"])
		_, hasMax := price["$lte"]
		assert.False(t, hasMax)
	})

	t.Run("MaxOnly", func(t *testing.T) {
		q := parseQuery(t, "maxPrice=99")
		price := q.Filter()["price"].(bson.M)
		assert.Equal(t, 99.0, price["$lte"])
	})

	t.Run("NonNumericRejected", func(t *testing.T) {
		params, err := url.ParseQuery("minPrice=cheap")
		require.NoError(t, err)
		_, err = Parse(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minPrice")
	})

	t.Run("NonNumericMaxRejected", func(t *testing.T) {
		params, err := url.ParseQuery("maxPrice=12,50")
		require.NoError(t, err)
		_, err = Parse(params)
		require.Error(t, err)
	})
}

func TestFilterOmittedDimensions(t *testing.T) {
	q := parseQuery(t, "")
	assert.Empty(t, q.Filter())

	q = parseQuery(t, "brand=Lavazza")
	filter := q.Filter()
	assert.Equal(t, "Lavazza", filter["brand"])
	assert.Len(t, filter, 1)
}

func TestFacetScopes(t *testing.T) {
	t.Run("CategoryScopeIgnoresCategoryFilter", func(t *testing.T) {
		q := parseQuery(t, "brand=Acme&category=beans")
		scope := q.CategoryScope()
		assert.Equal(t, bson.M{"brand": "Acme"}, scope)
	})

	t.Run("BrandScopeIgnoresBrandFilter", func(t *testing.T) {
		q := parseQuery(t, "brand=Acme&category=beans")
		scope := q.BrandScope()
		assert.Equal(t, bson.M{"category": "beans"}, scope)
	})

	t.Run("NoFacetFilter", func(t *testing.T) {
		q := parseQuery(t, "search=x&minPrice=1")
		assert.False(t, q.HasFacetFilter())
		assert.Empty(t, q.CategoryScope())
		assert.Empty(t, q.BrandScope())
	})

	t.Run("BrandAloneIsAFacetFilter", func(t *testing.T) {
		q := parseQuery(t, "brand=Acme")
		assert.True(t, q.HasFacetFilter())
	})
}

func TestSkipCountOverflow(t *testing.T) {
	q := parseQuery(t, "page=9223372036854775807&size=12")
	skip := q.SkipCount()
	assert.GreaterOrEqual(t, skip, int64(0))
	assert.EqualValues(t, int64(math.MaxInt64), skip)
}

func TestPages(t *testing.T) {
	q := Query{Page: 1, Size: 12}
	assert.Equal(t, 0, q.Pages(0))
	assert.Equal(t, 1, q.Pages(1))
	assert.Equal(t, 1, q.Pages(12))
	assert.Equal(t, 2, q.Pages(13))
	assert.Equal(t, 9, q.Pages(100))
}

func TestCacheKey(t *testing.T) {
	a := parseQuery(t, "page=2&brand=Acme&minPrice=10")
	b := parseQuery(t, "minPrice=10&brand=Acme&page=2")
	c := parseQuery(t, "page=2&brand=Acme&minPrice=11")

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())

	t.Run("DelimiterInValueCannotCollide", func(t *testing.T) {
		// a delimiter-looking value in one field must not produce the same
		// key as the delimiter itself shifted into the next field
		x := parseQuery(t, url.Values{"search": {"x_b"}, "brand": {"Z"}}.Encode())
		y := parseQuery(t, url.Values{"search": {"x"}, "brand": {"_bZ"}}.Encode())
		assert.NotEqual(t, x.CacheKey(), y.CacheKey())

		p := parseQuery(t, url.Values{"brand": {"A_c"}, "category": {"B"}}.Encode())
		r := parseQuery(t, url.Values{"brand": {"A"}, "category": {"_cB"}}.Encode())
		assert.NotEqual(t, p.CacheKey(), r.CacheKey())
	})
}

func TestFindOptionsProjection(t *testing.T) {
	q := parseQuery(t, "page=2&size=6&sort=price_desc")
	opts := q.FindOptions()

	require.NotNil(t, opts.Skip)
	assert.EqualValues(t, 6, *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 6, *opts.Limit)
	assert.Equal(t, bson.M{"description": 0}, opts.Projection)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, opts.Sort)
}
