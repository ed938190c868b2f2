// Package listing holds the current page of a moderation listing together
// with its pagination and loading state.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/filters"
)

type lister interface {
	List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error)
}

// ReplaceFunc is called after a successful load replaced the page with the
// result of req. changed is false when the page was reloaded with the same
// request.
type ReplaceFunc func(req filters.Request, ids []string, changed bool)

// State is a point-in-time copy of the store.
type State struct {
	Request    filters.Request
	Items      []domain.Entity
	Pagination domain.Pagination
	Loading    bool
	Loaded     bool
	Err        error
}

// Store is safe for concurrent use. Every load is tagged with a sequence
// number; only the response to the most recent load is committed.
type Store struct {
	api lister
	log *slog.Logger

	mu        sync.Mutex
	seq       uint64
	latest    filters.Request
	requested bool
	state     State
	onReplace ReplaceFunc
}

// New creates an empty Store.
func New(log *slog.Logger, api lister) *Store {
	return &Store{
		api: api,
		log: log.With("engine", "listing"),
	}
}

// OnReplace registers the hook run after every committed load. The hook
// runs under the store lock, so hooks see commits in order; it must not
// call back into the Store.
func (s *Store) OnReplace(fn ReplaceFunc) {
	s.mu.Lock()
	s.onReplace = fn
	s.mu.Unlock()
}

// Load fetches the page described by req. Prior items stay visible while
// the request is in flight. A response that was superseded by a newer Load
// is discarded and nil is returned.
func (s *Store) Load(ctx context.Context, req filters.Request) error {
	return s.load(ctx, req, true)
}

// Reload re-issues the most recent request.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	req, ok := s.latest, s.requested
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("listing.Reload: nothing loaded: %w", domain.ErrInvalidTransition)
	}
	return s.load(ctx, req, true)
}

func (s *Store) load(ctx context.Context, req filters.Request, followUp bool) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.latest = req
	s.requested = true
	s.state.Loading = true
	s.mu.Unlock()

	page, err := s.api.List(ctx, req.Collection, req.Values())

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "stale listing response dropped",
			slog.String("request", req.Key()),
			slog.Uint64("seq", seq),
		)
		return nil
	}

	if err != nil {
		s.state.Loading = false
		s.state.Err = err
		s.mu.Unlock()
		s.log.WarnContext(ctx, "listing load failed",
			slog.String("request", req.Key()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("listing.Load: %w", err)
	}

	pag := page.Pagination
	if pag.Limit <= 0 {
		pag.Limit = max(req.Limit, len(page.Items), 1)
	}
	pag = domain.Pagination{Page: req.Page, Limit: pag.Limit, Total: pag.Total}.Normalize()

	// The requested page no longer exists, e.g. a bulk delete emptied it.
	if followUp && req.Page > pag.Page {
		s.mu.Unlock()
		s.log.DebugContext(ctx, "page past the end, loading last page",
			slog.Int("requested", req.Page),
			slog.Int("last", pag.Page),
		)
		return s.load(ctx, req.WithPage(pag.Page), false)
	}

	changed := !s.state.Loaded || s.state.Request.Key() != req.Key()
	s.state = State{
		Request:    req,
		Items:      slices.Clone(page.Items),
		Pagination: pag,
		Loaded:     true,
	}
	if s.onReplace != nil {
		s.onReplace(req, idsOf(s.state.Items), changed)
	}
	s.mu.Unlock()
	return nil
}

// Reset forgets the loaded page and the latest request. Loads in flight
// are dropped when they return.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.latest = filters.Request{}
	s.requested = false
	s.state = State{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Items = make([]domain.Entity, len(s.state.Items))
	for i, e := range s.state.Items {
		out.Items[i] = e.Clone()
	}
	return out
}

// Mutate applies fn to the loaded row with the given id and reports whether
// the row was found. It is the local half of an optimistic update.
func (s *Store) Mutate(id string, fn func(e *domain.Entity)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			fn(&s.state.Items[i])
			return true
		}
	}
	return false
}

func idsOf(items []domain.Entity) []string {
	ids := make([]string, len(items))
	for i, e := range items {
		ids[i] = e.ID
	}
	return ids
}
