// Package reorder keeps a small ordered collection (categories) in sync
// with the service while moves are shown optimistically.
package reorder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/optimistic"
)

// Direction of a single-step move.
type Direction int

const (
	Up Direction = iota
	Down
)

type reorderAPI interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Reorder(ctx context.Context, coll domain.Collection, ids []string) error
}

// State is a point-in-time copy of the coordinator.
type State struct {
	Items   []domain.Category
	Loading bool
	Err     error
}

// Coordinator is safe for concurrent use.
type Coordinator struct {
	api reorderAPI
	log *slog.Logger

	mu      sync.Mutex
	seq     uint64
	items   []domain.Category
	loading bool
	err     error
}

// New creates an empty Coordinator.
func New(log *slog.Logger, api reorderAPI) *Coordinator {
	return &Coordinator{
		api: api,
		log: log.With("engine", "reorder"),
	}
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Items: slices.Clone(c.items), Loading: c.loading, Err: c.err}
}

// Load replaces the local order with the canonical one.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.mu.Unlock()

	cats, err := c.api.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return fmt.Errorf("reorder.Load: %w", err)
	}
	c.items = sortByOrder(cats)
	c.err = nil
	return nil
}

// Move swaps id with its neighbour in the given direction. Moves past
// either end are no-ops.
func (c *Coordinator) Move(ctx context.Context, id string, dir Direction) error {
	return c.apply(ctx, "reorder.Move", func(items []domain.Category) ([]domain.Category, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, false
		}
		j := i - 1
		if dir == Down {
			j = i + 1
		}
		if j < 0 || j >= len(items) {
			return nil, false
		}
		out := slices.Clone(items)
		out[i], out[j] = out[j], out[i]
		return out, true
	})
}

// MoveTo moves id to position index (clamped), shifting the others.
func (c *Coordinator) MoveTo(ctx context.Context, id string, index int) error {
	return c.apply(ctx, "reorder.MoveTo", func(items []domain.Category) ([]domain.Category, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, false
		}
		index = min(max(index, 0), len(items)-1)
		if index == i {
			return nil, false
		}
		out := slices.Clone(items)
		moved := out[i]
		out = slices.Delete(out, i, i+1)
		out = slices.Insert(out, index, moved)
		return out, true
	})
}

// apply shows the new order immediately, sends the full id list and, on
// failure, re-fetches the canonical order instead of undoing the move.
func (c *Coordinator) apply(ctx context.Context, name string, reorder func([]domain.Category) ([]domain.Category, bool)) error {
	var ids []string

	err := optimistic.Run(ctx, c.log, optimistic.Command{
		Name: name,
		Apply: func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()

			next, ok := reorder(c.items)
			if !ok {
				return false
			}
			c.seq++ // a load still in flight predates this move
			c.items = next
			c.loading = false
			c.err = nil
			ids = idsOf(next)
			return true
		},
		Commit: func(ctx context.Context) error {
			return c.api.Reorder(ctx, domain.CollectionCategories, ids)
		},
		Confirm: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			// Only renumber if no later move reshuffled the list meanwhile.
			if slices.Equal(idsOf(c.items), ids) {
				renumber(c.items)
			}
		},
		Reconcile: c.Load,
	})
	if err != nil {
		c.setErr(err)
	}
	return err
}

func (c *Coordinator) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func sortByOrder(cats []domain.Category) []domain.Category {
	out := slices.Clone(cats)
	slices.SortStableFunc(out, func(a, b domain.Category) int {
		return a.Order - b.Order
	})
	return out
}

func renumber(items []domain.Category) {
	for i := range items {
		items[i].Order = i + 1
	}
}

func indexOf(items []domain.Category, id string) int {
	return slices.IndexFunc(items, func(c domain.Category) bool { return c.ID == id })
}

func idsOf(items []domain.Category) []string {
	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID
	}
	return ids
}
