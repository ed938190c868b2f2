// Package selection tracks which rows of the loaded page are marked for a
// bulk action. The set is scoped to the current page: ids that are not on
// the page can never be selected.
package selection

import (
	"slices"
	"sync"
)

// Set is safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	page     []string
	selected map[string]struct{}

	// before holds the partial selection replaced by a ToggleAll that
	// selected the whole page, so the next ToggleAll can restore it.
	before map[string]struct{}
}

// New returns an empty set with no page loaded.
func New() *Set {
	return &Set{selected: make(map[string]struct{})}
}

// Reset points the set at a new page and drops every selection.
func (s *Set) Reset(pageIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = slices.Clone(pageIDs)
	s.selected = make(map[string]struct{})
	s.before = nil
}

// Retain points the set at a refreshed copy of the same page and keeps only
// the selections still present on it.
func (s *Set) Retain(pageIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = slices.Clone(pageIDs)
	for id := range s.selected {
		if !slices.Contains(s.page, id) {
			delete(s.selected, id)
		}
	}
	s.before = nil
}

// Toggle flips id and reports whether it is now selected. Ids that are not
// on the current page are ignored.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.page, id) {
		return false
	}
	s.before = nil
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// ToggleAll flips "every id on the page is selected". When the page is
// fully selected it restores the selection that the previous ToggleAll
// replaced, or clears it; otherwise it selects the whole page.
func (s *Set) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allSelectedLocked() {
		prev := s.before
		s.before = nil
		s.selected = make(map[string]struct{}, len(prev))
		for id := range prev {
			s.selected[id] = struct{}{}
		}
		return
	}

	s.before = s.selected
	s.selected = make(map[string]struct{}, len(s.page))
	for _, id := range s.page {
		s.selected[id] = struct{}{}
	}
}

// Clear drops every selection and keeps the page.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = make(map[string]struct{})
	s.before = nil
}

// IDs returns the selected ids in page order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.selected))
	for _, id := range s.page {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// IsSelected reports whether id is selected.
func (s *Set) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// AllSelected reports whether the page is non-empty and fully selected.
func (s *Set) AllSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allSelectedLocked()
}

func (s *Set) allSelectedLocked() bool {
	if len(s.page) == 0 {
		return false
	}
	for _, id := range s.page {
		if _, ok := s.selected[id]; !ok {
			return false
		}
	}
	return true
}
