// Package optimistic runs a local change ahead of its remote confirmation.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Command is one optimistic mutation.
//
// Apply changes local state and reports whether anything changed; when it
// returns false nothing is sent. Commit confirms the change remotely.
// Reconcile runs only when Commit fails and re-fetches the authoritative
// state instead of undoing Apply. Confirm, when set, runs after a
// successful Commit.
type Command struct {
	Name      string
	Apply     func() bool
	Commit    func(ctx context.Context) error
	Reconcile func(ctx context.Context) error
	Confirm   func()
}

// Run executes cmd. The commit error is returned even when reconciliation
// succeeds; a failed reconciliation is joined to it.
func Run(ctx context.Context, log *slog.Logger, cmd Command) error {
	if !cmd.Apply() {
		return nil
	}

	err := cmd.Commit(ctx)
	if err == nil {
		if cmd.Confirm != nil {
			cmd.Confirm()
		}
		return nil
	}

	log.WarnContext(ctx, "optimistic commit failed, reconciling",
		slog.String("command", cmd.Name),
		slog.String("error", err.Error()),
	)

	if cmd.Reconcile != nil {
		if rerr := cmd.Reconcile(ctx); rerr != nil {
			log.ErrorContext(ctx, "optimistic reconcile failed",
				slog.String("command", cmd.Name),
				slog.String("error", rerr.Error()),
			)
			err = errors.Join(err, fmt.Errorf("reconcile: %w", rerr))
		}
	}
	return fmt.Errorf("%s: %w", cmd.Name, err)
}
