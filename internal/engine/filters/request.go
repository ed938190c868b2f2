package filters

import (
	"math"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// Request is the canonical descriptor of one listing fetch. Two requests
// built from equal states are equal and share the same Key.
type Request struct {
	Collection domain.Collection `url:"-"`

	Search   string `url:"search,omitempty"`
	Status   string `url:"status,omitempty"`
	Category string `url:"category,omitempty"`
	Platform string `url:"platform,omitempty"`
	PriceMin string `url:"priceMin,omitempty"`
	PriceMax string `url:"priceMax,omitempty"`
	Role     string `url:"role,omitempty"`
	Priority string `url:"priority,omitempty"`
	Rating   string `url:"rating,omitempty"`
	Sort     string `url:"sort,omitempty"`
	Page     int    `url:"page"`
	Limit    int    `url:"limit,omitempty"`
}

// Build turns a state into the request for the collection described by
// schema. Keys outside the schema, values it rejects and empty values are
// dropped.
func Build(schema domain.CollectionSpec, s State, limit int) Request {
	pick := func(key string) string {
		v := s.Get(key)
		if v == "" || !schema.AcceptsValue(key, v) {
			return ""
		}
		return v
	}

	r := Request{
		Collection: schema.Collection,
		Search:     pick(domain.FilterSearch),
		Status:     pick(domain.FilterStatus),
		Category:   pick(domain.FilterCategory),
		Platform:   pick(domain.FilterPlatform),
		Role:       pick(domain.FilterRole),
		Priority:   pick(domain.FilterPriority),
		Rating:     pick(domain.FilterRating),
		Sort:       pick(domain.FilterSort),
		Page:       s.Page(),
		Limit:      max(limit, 0),
	}
	r.PriceMin, r.PriceMax = priceBounds(pick(domain.FilterPriceMin), pick(domain.FilterPriceMax))
	return r
}

// WithPage returns a copy of r pointing at page n (at least 1).
func (r Request) WithPage(n int) Request {
	r.Page = max(n, 1)
	return r
}

// Values returns the query parameters of the request.
func (r Request) Values() url.Values {
	v, err := query.Values(r)
	if err != nil {
		// Request is always a struct; Values only fails on non-struct input.
		return url.Values{}
	}
	return v
}

// Key identifies the request: collection plus the sorted, encoded query.
func (r Request) Key() string {
	return r.Collection.String() + "?" + r.Values().Encode()
}

// priceBounds drops bounds that are not non-negative numbers and swaps
// them when min exceeds max.
func priceBounds(lo, hi string) (string, string) {
	parse := func(s string) (float64, bool) {
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}

	minV, okMin := parse(lo)
	maxV, okMax := parse(hi)
	if okMin && okMax && minV > maxV {
		minV, maxV = maxV, minV
	}

	format := func(f float64, ok bool) string {
		if !ok {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return format(minV, okMin), format(maxV, okMax)
}
