package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrReconcileSnapshotsCommandIsNotConstructed = errors.New(
	"ReconcileSnapshotsCommand must be created via NewReconcileSnapshotsCommand constructor",
)

// ReconcileSnapshotsCommand represents a request to sweep all orders holding
// a live location reference and bring their historical snapshots up to date.
// Without force, only missing snapshots are populated (write-once); with
// force, populated snapshots are resynced from the current catalog data,
// for bulk catalog reloads.
type ReconcileSnapshotsCommand struct { //nolint:recvcheck //using for validation
	force bool

	guard guard.ConstructorGuard
}

// NewReconcileSnapshotsCommand creates a command to reconcile snapshots.
func NewReconcileSnapshotsCommand(force bool) (ReconcileSnapshotsCommand, error) {
	return ReconcileSnapshotsCommand{
		guard: guard.NewConstructorGuard(),
		force: force,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileSnapshotsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileSnapshotsCommandIsNotConstructed)
}

// Force reports whether populated snapshots are resynced too.
func (c ReconcileSnapshotsCommand) Force() bool {
	return c.force
}
