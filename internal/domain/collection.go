package domain

import "slices"

// Recognised filter keys. A collection accepts a subset of them.
const (
	FilterSearch   = "search"
	FilterStatus   = "status"
	FilterCategory = "category"
	FilterPlatform = "platform"
	FilterPriceMin = "priceMin"
	FilterPriceMax = "priceMax"
	FilterSort     = "sort"
	FilterPage     = "page"
	FilterRole     = "role"
	FilterPriority = "priority"
	FilterRating   = "rating"
)

// CollectionSpec is the closed schema of one collection: which filter keys
// it understands, which statuses it reports and which actions it accepts.
type CollectionSpec struct {
	Collection Collection
	Filters    []string
	Statuses   []Status
	Actions    []Action
	Sorts      []string
}

// AcceptsFilter reports whether key is part of the schema. Page is always accepted.
func (s CollectionSpec) AcceptsFilter(key string) bool {
	return key == FilterPage || slices.Contains(s.Filters, key)
}

// AcceptsAction reports whether the collection allows the action.
func (s CollectionSpec) AcceptsAction(a Action) bool {
	return slices.Contains(s.Actions, a)
}

// HasStatus reports whether st is a legal status for the collection.
func (s CollectionSpec) HasStatus(st Status) bool {
	return slices.Contains(s.Statuses, st)
}

// AcceptsValue reports whether value is legal for the filter key. Status
// and sort values must be listed by the schema; other keys take any value.
func (s CollectionSpec) AcceptsValue(key, value string) bool {
	if !s.AcceptsFilter(key) {
		return false
	}
	switch key {
	case FilterStatus:
		return len(s.Statuses) == 0 || s.HasStatus(Status(value))
	case FilterSort:
		return len(s.Sorts) == 0 || slices.Contains(s.Sorts, value)
	}
	return true
}

var commonSorts = []string{"newest", "oldest"}

var collectionSpecs = map[Collection]CollectionSpec{
	CollectionTemplates: {
		Collection: CollectionTemplates,
		Filters:    []string{FilterSearch, FilterStatus, FilterCategory, FilterPlatform, FilterPriceMin, FilterPriceMax, FilterSort},
		Statuses:   []Status{StatusDraft, StatusPending, StatusApproved, StatusRejected},
		Actions:    []Action{ActionApprove, ActionReject, ActionFeature, ActionUnfeature, ActionDelete},
		Sorts:      []string{"newest", "oldest", "popular", "price_asc", "price_desc", "sales"},
	},
	CollectionCreators: {
		Collection: CollectionCreators,
		Filters:    []string{FilterSearch, FilterStatus, FilterSort},
		Statuses:   []Status{StatusPending, StatusApproved, StatusRejected},
		Actions:    []Action{ActionApprove, ActionReject},
		Sorts:      commonSorts,
	},
	CollectionRefunds: {
		Collection: CollectionRefunds,
		Filters:    []string{FilterSearch, FilterStatus, FilterSort},
		Statuses:   []Status{StatusRequested, StatusApproved, StatusRejected, StatusProcessed},
		Actions:    []Action{ActionApprove, ActionReject, ActionProcess},
		Sorts:      []string{"newest", "oldest", "amount_desc"},
	},
	CollectionReviews: {
		Collection: CollectionReviews,
		Filters:    []string{FilterSearch, FilterStatus, FilterRating, FilterSort},
		Statuses:   []Status{StatusPublished, StatusPending, StatusHidden},
		Actions:    []Action{ActionApprove, ActionHide, ActionDelete},
		Sorts:      commonSorts,
	},
	CollectionReports: {
		Collection: CollectionReports,
		Filters:    []string{FilterSearch, FilterStatus, FilterSort},
		Statuses:   []Status{StatusOpen, StatusResolved, StatusDismissed},
		Actions:    []Action{ActionResolve, ActionDismiss},
		Sorts:      commonSorts,
	},
	CollectionTickets: {
		Collection: CollectionTickets,
		Filters:    []string{FilterSearch, FilterStatus, FilterPriority, FilterSort},
		Statuses:   []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed},
		Actions:    []Action{ActionResolve, ActionClose},
		Sorts:      []string{"newest", "oldest", "priority"},
	},
	CollectionWithdrawals: {
		Collection: CollectionWithdrawals,
		Filters:    []string{FilterSearch, FilterStatus, FilterSort},
		Statuses:   []Status{StatusPending, StatusApproved, StatusRejected, StatusProcessed},
		Actions:    []Action{ActionApprove, ActionReject, ActionProcess},
		Sorts:      []string{"newest", "oldest", "amount_desc"},
	},
	CollectionShots: {
		Collection: CollectionShots,
		Filters:    []string{FilterSearch, FilterStatus, FilterCategory, FilterSort},
		Statuses:   []Status{StatusPublished, StatusHidden},
		Actions:    []Action{ActionFeature, ActionUnfeature, ActionHide, ActionPublish, ActionDelete},
		Sorts:      []string{"newest", "oldest", "popular"},
	},
	CollectionUsers: {
		Collection: CollectionUsers,
		Filters:    []string{FilterSearch, FilterStatus, FilterRole, FilterSort},
		Statuses:   []Status{StatusActive, StatusSuspended},
		Actions:    []Action{ActionSuspend, ActionActivate},
		Sorts:      commonSorts,
	},
	CollectionCoupons: {
		Collection: CollectionCoupons,
		Filters:    []string{FilterSearch, FilterStatus, FilterSort},
		Statuses:   []Status{StatusActive, StatusExpired},
		Actions:    []Action{ActionDelete},
		Sorts:      commonSorts,
	},
	CollectionCategories: {
		Collection: CollectionCategories,
		Filters:    []string{FilterSearch},
		Actions:    []Action{ActionDelete},
	},
}

// SpecFor returns the schema of c. The second result is false for unknown collections.
func SpecFor(c Collection) (CollectionSpec, bool) {
	s, ok := collectionSpecs[c]
	return s, ok
}
