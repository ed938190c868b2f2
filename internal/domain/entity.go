package domain

import (
	"maps"
	"math"
	"slices"
	"time"
)

// Entity is one row of a moderation listing. Templates, creator
// applications, refunds, reviews, reports, tickets, withdrawals and shots
// all share this shape; type-specific extras live in Attributes.
type Entity struct {
	ID          string
	Status      Status
	Title       string
	Creator     string
	Category    string
	Platform    string
	Price       *float64
	Featured    bool
	Description string
	CreatedAt   time.Time
	Attributes  map[string]any
}

// Editable returns the mutable subset of the entity.
func (e Entity) Editable() EditableFields {
	f := EditableFields{
		Description: e.Description,
		Category:    e.Category,
		Featured:    e.Featured,
	}
	if e.Price != nil {
		p := *e.Price
		f.Price = &p
	}
	return f
}

// Clone returns a copy that shares no memory with e. Attribute values are
// copied shallowly.
func (e Entity) Clone() Entity {
	if e.Price != nil {
		p := *e.Price
		e.Price = &p
	}
	e.Attributes = maps.Clone(e.Attributes)
	return e
}

// StatusChange is one entry of an entity's moderation history.
type StatusChange struct {
	From   Status
	To     Status
	By     string
	Reason string
	At     time.Time
}

// EntityDetail is the richer payload returned when a single entity is opened.
type EntityDetail struct {
	Entity
	Images  []string
	Tags    []string
	History []StatusChange
	Stats   map[string]int
}

// Clone returns a copy that shares no memory with d.
func (d EntityDetail) Clone() EntityDetail {
	d.Entity = d.Entity.Clone()
	d.Images = slices.Clone(d.Images)
	d.Tags = slices.Clone(d.Tags)
	d.History = slices.Clone(d.History)
	d.Stats = maps.Clone(d.Stats)
	return d
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// Normalize recomputes Pages from Total and Limit and clamps Page into
// [1, max(Pages,1)].
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = 1
	}
	if p.Total < 0 {
		p.Total = 0
	}
	p.Pages = int(math.Ceil(float64(p.Total) / float64(p.Limit)))
	last := max(p.Pages, 1)
	p.Page = min(max(p.Page, 1), last)
	return p
}

// Page is a listing response.
type Page struct {
	Items      []Entity
	Pagination Pagination
}

// Category is a member of the ordered category collection.
type Category struct {
	ID    string
	Name  string
	Slug  string
	Order int
}

// HitKind classifies a typeahead result.
type HitKind string

const (
	HitKindTemplate HitKind = "template"
	HitKindCreator  HitKind = "creator"
	HitKindCategory HitKind = "category"
	HitKindQuery    HitKind = "query"
)

// SearchHit is one suggestion or search result.
type SearchHit struct {
	ID       string
	Kind     HitKind
	Title    string
	Subtitle string
	Path     string
}

// ItemFailure reports why one id of a bulk request failed.
type ItemFailure struct {
	ID      string
	Message string
}

// BulkOutcome is the per-item outcome of a batched action.
type BulkOutcome struct {
	Succeeded int
	Failed    int
	Failures  []ItemFailure
}
