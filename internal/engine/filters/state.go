package filters

import (
	"maps"
	"net/url"
	"strconv"
	"strings"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// State is the set of named query constraints of a listing, plus its page
// index. The zero value is an unconstrained first page. A State is never
// mutated in place; every change returns a new value.
type State struct {
	values map[string]string
}

// New returns an empty state.
func New() State {
	return State{}
}

// Get returns the value of key, or "" when the key is unconstrained.
func (s State) Get(key string) string {
	return s.values[key]
}

// Has reports whether key carries a constraint.
func (s State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of constrained keys, page included.
func (s State) Len() int {
	return len(s.values)
}

// Set returns a copy with key set to value. An empty value removes the key.
// Changing any key other than page drops the page back to the first one.
func (s State) Set(key, value string) State {
	if key == domain.FilterPage {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = 1
		}
		return s.WithPage(n)
	}

	out := s.clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(out.values, key)
	} else {
		out.values[key] = value
	}
	delete(out.values, domain.FilterPage)
	return out
}

// WithPage returns a copy pointing at page n. Pages below 2 clear the key.
func (s State) WithPage(n int) State {
	out := s.clone()
	if n <= 1 {
		delete(out.values, domain.FilterPage)
	} else {
		out.values[domain.FilterPage] = strconv.Itoa(n)
	}
	return out
}

// Page returns the page index, at least 1.
func (s State) Page() int {
	n, err := strconv.Atoi(s.values[domain.FilterPage])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Equal reports whether both states carry the same constraints.
func (s State) Equal(o State) bool {
	return maps.Equal(s.values, o.values)
}

// Encode maps the state to its external query-string representation.
func (s State) Encode() url.Values {
	v := make(url.Values, len(s.values))
	for k, val := range s.values {
		v.Set(k, val)
	}
	return v
}

// Decode maps an external query string to a state, keeping only keys the
// collection recognises with values it accepts. Repeated keys use the first
// non-empty value.
func Decode(schema domain.CollectionSpec, v url.Values) State {
	out := State{values: make(map[string]string, len(v))}
	for key, vals := range v {
		if !schema.AcceptsFilter(key) {
			continue
		}
		for _, val := range vals {
			if val = strings.TrimSpace(val); val != "" {
				if schema.AcceptsValue(key, val) {
					out.values[key] = val
				}
				break
			}
		}
	}
	if out.Has(domain.FilterPage) {
		out = out.WithPage(out.Page())
	}
	return out
}

func (s State) clone() State {
	out := State{values: make(map[string]string, len(s.values)+1)}
	maps.Copy(out.values, s.values)
	return out
}
