// Package detail implements the nested list → detail → edit → detail view
// machine of a single entity with its own fetch and save lifecycle.
package detail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// Mode is the machine's current view.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeDetail:
		return "detail"
	case ModeEdit:
		return "edit"
	default:
		return "list"
	}
}

type detailAPI interface {
	Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error)
	Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error)
	Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error
}

type refresher interface {
	Reload(ctx context.Context) error
}

// State is a point-in-time copy of the machine.
type State struct {
	Mode       Mode
	Collection domain.Collection
	ID         string
	Detail     *domain.EntityDetail
	Draft      *domain.EditableFields
	Loading    bool
	Saving     bool
	Err        error
}

// Machine is safe for concurrent use.
type Machine struct {
	api     detailAPI
	listing refresher
	log     *slog.Logger
	bg      sync.WaitGroup

	mu      sync.Mutex
	seq     uint64
	mode    Mode
	coll    domain.Collection
	id      string
	detail  *domain.EntityDetail
	draft   *domain.EditableFields
	loading bool
	saving  bool
	err     error
}

// New creates a Machine in list mode. listing is refreshed in the
// background after every successful write.
func New(log *slog.Logger, api detailAPI, listing refresher) *Machine {
	return &Machine{
		api:     api,
		listing: listing,
		log:     log.With("engine", "detail"),
	}
}

// Snapshot returns a copy of the current state. It shares no memory with
// the machine.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := State{
		Mode:       m.mode,
		Collection: m.coll,
		ID:         m.id,
		Loading:    m.loading,
		Saving:     m.saving,
		Err:        m.err,
	}
	if m.detail != nil {
		d := m.detail.Clone()
		s.Detail = &d
	}
	if m.draft != nil {
		d := m.draft.Clone()
		s.Draft = &d
	}
	return s
}

// Open fetches the detail of id and switches to detail mode. On failure the
// machine falls back to list mode with the error surfaced. A response to an
// Open that has since been superseded is discarded.
func (m *Machine) Open(ctx context.Context, coll domain.Collection, id string) error {
	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return fmt.Errorf("detail.Open: save in progress: %w", domain.ErrInvalidTransition)
	}
	m.seq++
	seq := m.seq
	m.loading = true
	m.mu.Unlock()

	d, err := m.api.Get(ctx, coll, id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.log.DebugContext(ctx, "stale detail response dropped", slog.String("id", id))
		return nil
	}
	m.loading = false

	if err != nil {
		m.toListLocked()
		m.err = err
		m.log.WarnContext(ctx, "open detail failed",
			slog.String("collection", coll.String()),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("detail.Open: %w", err)
	}

	m.mode = ModeDetail
	m.coll = coll
	m.id = id
	m.detail = d
	m.draft = nil
	m.err = nil
	return nil
}

// Edit seeds a draft from the editable fields of the loaded entity.
func (m *Machine) Edit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeDetail || m.detail == nil {
		return fmt.Errorf("detail.Edit: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	draft := m.detail.Editable()
	m.draft = &draft
	m.mode = ModeEdit
	m.err = nil
	return nil
}

// UpdateDraft applies fn to the draft.
func (m *Machine) UpdateDraft(fn func(f *domain.EditableFields)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeEdit || m.draft == nil {
		return fmt.Errorf("detail.UpdateDraft: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	fn(m.draft)
	return nil
}

// Save validates the draft and sends only the changed fields. Without
// changes it returns to detail without a request. On success the detail is
// re-fetched and the listing is refreshed in the background; on failure the
// machine stays in edit mode and keeps the draft.
func (m *Machine) Save(ctx context.Context) error {
	m.mu.Lock()
	if m.mode != ModeEdit || m.draft == nil {
		m.mu.Unlock()
		return fmt.Errorf("detail.Save: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	if m.saving {
		m.mu.Unlock()
		return fmt.Errorf("detail.Save: already saving: %w", domain.ErrInvalidTransition)
	}

	base := m.detail.Editable()
	if err := m.draft.Validate(base); err != nil {
		m.err = err
		m.mu.Unlock()
		return err
	}

	patch := m.draft.Diff(base)
	if patch.IsEmpty() {
		m.mode = ModeDetail
		m.draft = nil
		m.err = nil
		m.mu.Unlock()
		return nil
	}

	coll, id := m.coll, m.id
	m.saving = true
	m.err = nil
	m.mu.Unlock()

	_, err := m.api.Patch(ctx, coll, id, patch)
	if err != nil {
		m.mu.Lock()
		m.saving = false
		m.err = err
		m.mu.Unlock()
		m.log.WarnContext(ctx, "save failed",
			slog.String("collection", coll.String()),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("detail.Save: %w", err)
	}

	// The echoed entity is not trusted; derived fields are only right after a refetch.
	fresh, ferr := m.api.Get(ctx, coll, id)

	m.mu.Lock()
	m.saving = false
	if m.mode != ModeEdit || m.id != id {
		// Reset while saving; the write went through but nobody is looking.
		m.mu.Unlock()
		m.refreshListing(ctx)
		return nil
	}
	m.mode = ModeDetail
	if ferr == nil {
		m.detail = fresh
		m.err = nil
	} else {
		applyPatch(&m.detail.Entity, patch)
		m.err = ferr
	}
	m.draft = nil
	m.seq++
	m.mu.Unlock()

	m.refreshListing(ctx)

	if ferr != nil {
		m.log.WarnContext(ctx, "refetch after save failed",
			slog.String("id", id),
			slog.String("error", ferr.Error()),
		)
		return fmt.Errorf("detail.Save: refetch: %w", ferr)
	}
	return nil
}

// Cancel discards the draft and returns to detail. Nothing is sent.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeEdit {
		return fmt.Errorf("detail.Cancel: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	if m.saving {
		return fmt.Errorf("detail.Cancel: save in progress: %w", domain.ErrInvalidTransition)
	}
	m.mode = ModeDetail
	m.draft = nil
	m.err = nil
	return nil
}

// Back leaves detail mode for the list.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode != ModeDetail {
		return fmt.Errorf("detail.Back: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	m.toListLocked()
	return nil
}

// Moderate requests a status transition for the open entity. Actions that
// need a reason are refused locally without one.
func (m *Machine) Moderate(ctx context.Context, action domain.Action, reason string) error {
	reason = strings.TrimSpace(reason)

	m.mu.Lock()
	if m.mode != ModeDetail || m.detail == nil {
		m.mu.Unlock()
		return fmt.Errorf("detail.Moderate: from %s: %w", m.mode, domain.ErrInvalidTransition)
	}
	coll, id := m.coll, m.id
	m.mu.Unlock()

	spec, _ := domain.SpecFor(coll)
	if !spec.AcceptsAction(action) {
		return domain.NewValidationError("action", fmt.Sprintf("%q is not available for %s", action, coll))
	}
	if action.RequiresReason() && reason == "" {
		return domain.NewValidationError("reason", "required")
	}

	if err := m.api.Moderate(ctx, coll, id, action, reason); err != nil {
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
		return fmt.Errorf("detail.Moderate: %w", err)
	}

	m.log.InfoContext(ctx, "entity moderated",
		slog.String("collection", coll.String()),
		slog.String("id", id),
		slog.String("action", action.String()),
	)

	err := m.Open(ctx, coll, id)
	m.refreshListing(ctx)
	return err
}

// Reset drops everything and returns to list mode. Late responses of
// pending opens are discarded.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.loading = false
	m.toListLocked()
}

// Wait blocks until background listing refreshes have finished.
func (m *Machine) Wait() {
	m.bg.Wait()
}

func (m *Machine) refreshListing(ctx context.Context) {
	if m.listing == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	m.bg.Add(1)
	go func() {
		defer m.bg.Done()
		if err := m.listing.Reload(ctx); err != nil {
			m.log.WarnContext(ctx, "background listing refresh failed", slog.String("error", err.Error()))
		}
	}()
}

func (m *Machine) toListLocked() {
	m.mode = ModeList
	m.id = ""
	m.detail = nil
	m.draft = nil
	m.err = nil
}

func applyPatch(e *domain.Entity, p domain.Patch) {
	if p.Price != nil {
		v := *p.Price
		e.Price = &v
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Featured != nil {
		e.Featured = *p.Featured
	}
}
