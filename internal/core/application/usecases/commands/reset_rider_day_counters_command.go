package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrResetRiderDayCountersCommandIsNotConstructed = errors.New(
	"ResetRiderDayCountersCommand must be created via NewResetRiderDayCountersCommand constructor",
)

// ResetRiderDayCountersCommand represents the day-rollover request to zero
// every active rider's per-day delivery counter.
type ResetRiderDayCountersCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewResetRiderDayCountersCommand creates a command for the daily reset.
func NewResetRiderDayCountersCommand() (ResetRiderDayCountersCommand, error) {
	return ResetRiderDayCountersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetRiderDayCountersCommand) Validate() error {
	return c.guard.Validate(ErrResetRiderDayCountersCommandIsNotConstructed)
}
