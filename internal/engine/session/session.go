// Package session owns one admin's view session: the filter state, the
// listing, the selection and the coordinators acting on them. It is the
// single writer of each of those.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/bulk"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/detail"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/filters"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/listing"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/optimistic"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/reorder"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/selection"
)

// API is the subset of the marketplace service a session needs.
type API interface {
	List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error)
	Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error)
	Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error)
	Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error)
	Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error
	Reorder(ctx context.Context, coll domain.Collection, ids []string) error
	Categories(ctx context.Context) ([]domain.Category, error)
}

type screen int

const (
	screenOverview screen = iota
	screenList
	screenCategories
)

// Session is safe for concurrent use.
type Session struct {
	api      API
	log      *slog.Logger
	pageSize int

	listing   *listing.Store
	selection *selection.Set
	bulk      *bulk.Coordinator
	detail    *detail.Machine
	reorder   *reorder.Coordinator

	mu      sync.Mutex
	screen  screen
	spec    domain.CollectionSpec
	filters filters.State
	message string
}

// New creates a session on the overview screen.
func New(log *slog.Logger, api API, pageSize int) *Session {
	sel := selection.New()
	store := listing.New(log, api)

	s := &Session{
		api:       api,
		log:       log.With("engine", "session"),
		pageSize:  pageSize,
		listing:   store,
		selection: sel,
		bulk:      bulk.New(log, api, store, sel),
		detail:    detail.New(log, api, store),
		reorder:   reorder.New(log, api),
	}
	store.OnReplace(s.replaced)
	return s
}

// replaced runs under the listing lock after every committed load.
func (s *Session) replaced(req filters.Request, ids []string, changed bool) {
	if changed {
		s.selection.Reset(ids)
	} else {
		s.selection.Retain(ids)
	}
	s.followPage(req)
}

// followPage moves the filter state onto the page the listing settled on,
// e.g. the last page after the requested one disappeared.
func (s *Session) followPage(req filters.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != screenList || req.Page == s.filters.Page() {
		return
	}
	moved := s.filters.WithPage(req.Page)
	if filters.Build(s.spec, moved, s.pageSize).Key() != req.Key() {
		return
	}
	s.filters = moved
}

// View derives the current screen.
func (s *Session) View() View {
	s.mu.Lock()
	scr, coll := s.screen, s.spec.Collection
	s.mu.Unlock()

	switch scr {
	case screenCategories:
		return Categories{}
	case screenList:
		d := s.detail.Snapshot()
		switch {
		case d.Mode == detail.ModeEdit && d.Draft != nil:
			return Edit{Collection: coll, ID: d.ID, Draft: *d.Draft}
		case d.Mode == detail.ModeDetail:
			return Detail{Collection: coll, ID: d.ID}
		}
		return List{Collection: coll}
	default:
		return Overview{}
	}
}

// Start opens the listing of coll with filters taken from an external
// query string. Keys the collection does not recognise are ignored.
func (s *Session) Start(ctx context.Context, coll domain.Collection, initial url.Values) error {
	spec, ok := domain.SpecFor(coll)
	if !ok {
		return domain.NewValidationError("collection", fmt.Sprintf("unknown collection %q", coll))
	}

	s.detail.Reset()
	s.selection.Reset(nil)

	s.mu.Lock()
	switched := s.spec.Collection != spec.Collection
	s.mu.Unlock()
	if switched {
		s.listing.Reset()
	}

	s.mu.Lock()
	s.screen = screenList
	s.spec = spec
	s.filters = filters.Decode(spec, initial)
	s.message = ""
	s.mu.Unlock()

	return s.load(ctx)
}

// SetFilter changes one filter. Any key but page returns to the first page.
func (s *Session) SetFilter(ctx context.Context, key, value string) error {
	s.mu.Lock()
	if err := s.requireLocked(screenList, "SetFilter"); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.spec.AcceptsFilter(key) {
		s.mu.Unlock()
		return domain.NewValidationError("filter", fmt.Sprintf("%q is not a filter of %s", key, s.spec.Collection))
	}
	if v := strings.TrimSpace(value); v != "" && !s.spec.AcceptsValue(key, v) {
		s.mu.Unlock()
		return s.report(domain.NewValidationError(key, fmt.Sprintf("%q is not a %s of %s", v, key, s.spec.Collection)))
	}
	s.filters = s.filters.Set(key, value)
	s.mu.Unlock()

	return s.load(ctx)
}

// SetPage moves to page n keeping the filters.
func (s *Session) SetPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if err := s.requireLocked(screenList, "SetPage"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.filters = s.filters.WithPage(n)
	s.mu.Unlock()

	return s.load(ctx)
}

// Reload re-fetches the current page.
func (s *Session) Reload(ctx context.Context) error {
	return s.listing.Reload(ctx)
}

func (s *Session) load(ctx context.Context) error {
	s.mu.Lock()
	req := filters.Build(s.spec, s.filters, s.pageSize)
	s.mu.Unlock()

	if err := s.listing.Load(ctx, req); err != nil {
		s.setMessage(describe(err))
		return err
	}
	return nil
}

// Filters returns the current filter state.
func (s *Session) Filters() filters.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Query returns the filter state in its external representation.
func (s *Session) Query() url.Values {
	return s.Filters().Encode()
}

// Listing returns the listing state.
func (s *Session) Listing() listing.State {
	return s.listing.Snapshot()
}

// Detail returns the detail machine state.
func (s *Session) Detail() detail.State {
	return s.detail.Snapshot()
}

// CategoryOrder returns the category list state.
func (s *Session) CategoryOrder() reorder.State {
	return s.reorder.Snapshot()
}

// Toggle flips the selection of one row on the current page.
func (s *Session) Toggle(id string) bool {
	return s.selection.Toggle(id)
}

// ToggleAll flips "every row on the page is selected".
func (s *Session) ToggleAll() {
	s.selection.ToggleAll()
}

// Selected returns the selected ids in page order.
func (s *Session) Selected() []string {
	return s.selection.IDs()
}

// AllSelected reports whether the whole page is selected.
func (s *Session) AllSelected() bool {
	return s.selection.AllSelected()
}

// ConfirmBulk returns the confirmation step for applying action to the
// current selection.
func (s *Session) ConfirmBulk(action domain.Action) bulk.ConfirmSpec {
	return bulk.Confirmation(action, s.selection.Len())
}

// RunBulk applies action to the current selection.
func (s *Session) RunBulk(ctx context.Context, action domain.Action, reason string) (bulk.Result, error) {
	s.mu.Lock()
	if err := s.requireLocked(screenList, "RunBulk"); err != nil {
		s.mu.Unlock()
		return bulk.Result{}, err
	}
	coll := s.spec.Collection
	s.mu.Unlock()

	ids := s.selection.IDs()
	res, err := s.bulk.Run(ctx, bulk.Request{
		Collection: coll,
		Action:     action,
		IDs:        ids,
		Reason:     reason,
	})
	switch {
	case err != nil:
		s.setMessage(describe(err))
	case len(ids) > 0:
		s.setMessage(res.Message())
	}
	return res, err
}

// Open shows the detail of id.
func (s *Session) Open(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.requireLocked(screenList, "Open"); err != nil {
		s.mu.Unlock()
		return err
	}
	coll := s.spec.Collection
	s.mu.Unlock()

	return s.report(s.detail.Open(ctx, coll, id))
}

// Edit starts editing the open entity.
func (s *Session) Edit() error {
	return s.detail.Edit()
}

// UpdateDraft changes the draft being edited.
func (s *Session) UpdateDraft(fn func(f *domain.EditableFields)) error {
	return s.detail.UpdateDraft(fn)
}

// Save sends the draft.
func (s *Session) Save(ctx context.Context) error {
	if err := s.detail.Save(ctx); err != nil {
		return s.report(err)
	}
	s.setMessage("Saved")
	return nil
}

// Cancel discards the draft.
func (s *Session) Cancel() error {
	return s.detail.Cancel()
}

// Back returns from detail to the list.
func (s *Session) Back() error {
	return s.detail.Back()
}

// Moderate applies a single-entity transition to the open entity.
func (s *Session) Moderate(ctx context.Context, action domain.Action, reason string) error {
	return s.report(s.detail.Moderate(ctx, action, reason))
}

// ToggleFeatured flips the featured flag of a listed row immediately and
// confirms it with the service. On failure the page is re-fetched.
func (s *Session) ToggleFeatured(ctx context.Context, id string) error {
	s.mu.Lock()
	if err := s.requireLocked(screenList, "ToggleFeatured"); err != nil {
		s.mu.Unlock()
		return err
	}
	spec := s.spec
	s.mu.Unlock()

	if !spec.AcceptsAction(domain.ActionFeature) {
		return domain.NewValidationError("featured", fmt.Sprintf("%s cannot be featured", spec.Collection))
	}

	var featured bool
	err := optimistic.Run(ctx, s.log, optimistic.Command{
		Name: "session.ToggleFeatured",
		Apply: func() bool {
			return s.listing.Mutate(id, func(e *domain.Entity) {
				e.Featured = !e.Featured
				featured = e.Featured
			})
		},
		Commit: func(ctx context.Context) error {
			_, err := s.api.Patch(ctx, spec.Collection, id, domain.Patch{Featured: &featured})
			return err
		},
		Reconcile: s.listing.Reload,
	})
	return s.report(err)
}

// ShowOverview leaves the listing for the overview screen.
func (s *Session) ShowOverview() {
	s.Leave()
}

// ShowCategories leaves the listing and loads the category order.
func (s *Session) ShowCategories(ctx context.Context) error {
	s.Leave()

	s.mu.Lock()
	s.screen = screenCategories
	s.mu.Unlock()

	return s.report(s.reorder.Load(ctx))
}

// MoveCategory moves a category one step up or down.
func (s *Session) MoveCategory(ctx context.Context, id string, dir reorder.Direction) error {
	s.mu.Lock()
	err := s.requireLocked(screenCategories, "MoveCategory")
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.report(s.reorder.Move(ctx, id, dir))
}

// MoveCategoryTo moves a category to position index.
func (s *Session) MoveCategoryTo(ctx context.Context, id string, index int) error {
	s.mu.Lock()
	err := s.requireLocked(screenCategories, "MoveCategoryTo")
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.report(s.reorder.MoveTo(ctx, id, index))
}

// Leave resets the filter state, the listing, the selection and the detail
// machine and returns to the overview.
func (s *Session) Leave() {
	s.detail.Reset()
	s.listing.Reset()
	s.selection.Reset(nil)

	s.mu.Lock()
	s.screen = screenOverview
	s.filters = filters.New()
	s.message = ""
	s.mu.Unlock()
}

// Message returns the last user-facing notice.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Wait blocks until background refreshes have finished.
func (s *Session) Wait() {
	s.detail.Wait()
}

func (s *Session) requireLocked(want screen, op string) error {
	if s.screen != want {
		return fmt.Errorf("session.%s: %w", op, domain.ErrInvalidTransition)
	}
	return nil
}

func (s *Session) setMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

func (s *Session) report(err error) error {
	if err != nil {
		s.setMessage(describe(err))
	}
	return err
}

// describe turns an error into a notice. Validation problems are shown as
// they are; everything else gets a generic retry hint.
func describe(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, bulk.ErrBulkInFlight):
		return "A bulk action is already running"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Not available here"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return "Not allowed"
	default:
		return "Something went wrong, please retry"
	}
}
