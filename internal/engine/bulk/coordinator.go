// Package bulk dispatches one moderation action against many entities in a
// single request and reconciles the listing afterwards.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// ErrBulkInFlight is returned when a batch for the same collection is
// still running.
var ErrBulkInFlight = fmt.Errorf("bulk action already in flight: %w", domain.ErrConflict)

type bulkAPI interface {
	Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error)
}

type reloader interface {
	Reload(ctx context.Context) error
}

type clearer interface {
	Clear()
}

// Request is one bulk invocation.
type Request struct {
	Collection domain.Collection
	Action     domain.Action
	IDs        []string
	Reason     string
}

// Result is the per-item outcome reported to the user.
type Result struct {
	Action    domain.Action
	Succeeded int
	Failed    int
	Failures  []domain.ItemFailure
}

// Message formats the outcome for display, e.g. "2 succeeded, 1 failed".
func (r Result) Message() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, r.Failed)
}

// Coordinator runs bulk actions. Batches are serialised per collection.
type Coordinator struct {
	api       bulkAPI
	listing   reloader
	selection clearer
	log       *slog.Logger

	mu       sync.Mutex
	inFlight map[domain.Collection]*semaphore.Weighted
}

// New creates a Coordinator that clears selection and reloads listing after
// every completed batch.
func New(log *slog.Logger, api bulkAPI, listing reloader, selection clearer) *Coordinator {
	return &Coordinator{
		api:       api,
		listing:   listing,
		selection: selection,
		log:       log.With("engine", "bulk"),
		inFlight:  make(map[domain.Collection]*semaphore.Weighted),
	}
}

// Run sends req as one batch. An empty id set is a no-op. A batch that
// fails as a whole leaves selection and listing untouched.
func (c *Coordinator) Run(ctx context.Context, req Request) (Result, error) {
	ids := uniqueIDs(req.IDs)
	if len(ids) == 0 {
		return Result{}, nil
	}

	reason := strings.TrimSpace(req.Reason)
	if err := validate(req.Collection, req.Action, reason); err != nil {
		return Result{}, err
	}

	sem := c.semaphore(req.Collection)
	if !sem.TryAcquire(1) {
		return Result{}, ErrBulkInFlight
	}
	outcome, err := c.api.Bulk(ctx, req.Collection, req.Action, ids, reason)
	sem.Release(1)

	if err != nil {
		c.log.WarnContext(ctx, "bulk action failed",
			slog.String("collection", req.Collection.String()),
			slog.String("action", req.Action.String()),
			slog.Int("ids", len(ids)),
			slog.String("error", err.Error()),
		)
		return Result{}, fmt.Errorf("bulk.Run: %w", err)
	}

	result := Result{
		Action:    req.Action,
		Succeeded: outcome.Succeeded,
		Failed:    outcome.Failed,
		Failures:  outcome.Failures,
	}

	c.log.InfoContext(ctx, "bulk action completed",
		slog.String("collection", req.Collection.String()),
		slog.String("action", req.Action.String()),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
	)

	c.selection.Clear()
	if err := c.listing.Reload(ctx); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		c.log.WarnContext(ctx, "reload after bulk action failed", slog.String("error", err.Error()))
	}
	return result, nil
}

func (c *Coordinator) semaphore(coll domain.Collection) *semaphore.Weighted {
	c.mu.Lock()
	defer c.mu.Unlock()

	sem, ok := c.inFlight[coll]
	if !ok {
		sem = semaphore.NewWeighted(1)
		c.inFlight[coll] = sem
	}
	return sem
}

func validate(coll domain.Collection, action domain.Action, reason string) error {
	spec, ok := domain.SpecFor(coll)
	if !ok {
		return domain.NewValidationError("collection", "unknown collection")
	}
	if !action.IsValid() || !spec.AcceptsAction(action) {
		return domain.NewValidationError("action", fmt.Sprintf("%q is not available for %s", action, coll))
	}
	if action.RequiresReason() && reason == "" {
		return domain.NewValidationError("reason", "required")
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
