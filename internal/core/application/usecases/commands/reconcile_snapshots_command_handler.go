package commands

import (
	"context"
)

// ReconcileSnapshotsCommandHandler sweeps orders with live location
// references and repairs their historical snapshots. Orders whose snapshots
// need no change are not written.
type ReconcileSnapshotsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReconcileSnapshotsCommandHandler creates a handler for the snapshot
// reconciliation sweep.
func NewReconcileSnapshotsCommandHandler(uowFactory OrderUoWFactory) ReconcileSnapshotsCommandHandler {
	return ReconcileSnapshotsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command.
func (h ReconcileSnapshotsCommandHandler) Handle(ctx context.Context, command ReconcileSnapshotsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetAllWithLocationRef(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		var changed bool
		if command.Force() {
			changed = aggregate.ResyncLocationSnapshot()
		} else {
			changed = aggregate.CaptureLocationSnapshot()
		}

		if !changed {
			continue
		}

		// Snapshots and fees are derived columns; the sweep never touches
		// line items, so the cheaper write suffices.
		if err = orderRepo.UpdateDerived(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
