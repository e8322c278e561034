package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAvailableRidersQueryIsNotConstructed = errors.New(
	"GetAvailableRidersQuery must be created via NewGetAvailableRidersQuery constructor",
)

// GetAvailableRidersQuery retrieves every rider who can take another order
// right now: active, available and below their concurrency cap.
//
// Example:
//
//	query := NewGetAvailableRidersQuery()
//	riders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available riders: %w", err)
//	}
type GetAvailableRidersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableRidersQuery creates a query for dispatchable riders.
func NewGetAvailableRidersQuery() GetAvailableRidersQuery {
	return GetAvailableRidersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableRidersQueryIsNotConstructed)
}

// GetAvailableRidersQueryResponse is one dispatchable rider.
type GetAvailableRidersQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	CurrentOrders       int
	MaxConcurrentOrders int
	TodayDeliveries     int
}
