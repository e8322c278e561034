package http

import (
	"fmt"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AssignRiderRequest dispatches an order to a rider.
type AssignRiderRequest struct {
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

// AdvanceAssignmentRequest moves an assignment one step along its chain.
type AdvanceAssignmentRequest struct {
	Action string `json:"action"`
}

// AvailableRiderResponse is one dispatchable rider.
type AvailableRiderResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	CurrentOrders       int    `json:"current_orders"`
	MaxConcurrentOrders int    `json:"max_concurrent_orders"`
	TodayDeliveries     int    `json:"today_deliveries"`
}

// GetAvailableRiders handles GET /api/v1/riders/available.
func (s *Server) GetAvailableRiders(ctx echo.Context) error {
	query := queries.NewGetAvailableRidersQuery()

	riders, err := s.getAvailableRidersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AvailableRiderResponse, len(riders))
	for i, rider := range riders {
		response[i] = AvailableRiderResponse{
			ID:                  rider.ID.String(),
			Name:                rider.Name,
			Phone:               rider.Phone,
			CurrentOrders:       rider.CurrentOrders,
			MaxConcurrentOrders: rider.MaxConcurrentOrders,
			TodayDeliveries:     rider.TodayDeliveries,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignRider handles POST /api/v1/assignments.
func (s *Server) AssignRider(ctx echo.Context) error {
	var request AssignRiderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewAssignRiderCommand(assignmentID, orderID, riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: assignmentID.String()})
}

// AdvanceAssignment handles POST /api/v1/assignments/:assignmentID/advance.
func (s *Server) AdvanceAssignment(ctx echo.Context) error {
	assignmentID, err := pathUUID(ctx, "assignmentID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request AdvanceAssignmentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := assignmentActionFromString(request.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceAssignmentCommand(assignmentID, action)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.advanceAssignmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteLocation handles DELETE /api/v1/locations/:locationID. Orders
// referencing the location keep their snapshots; the handler archives the
// references before removing the row.
func (s *Server) DeleteLocation(ctx echo.Context) error {
	locationID, err := pathUUID(ctx, "locationID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteLocationCommand(locationID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.deleteLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func assignmentActionFromString(s string) (commands.AssignmentAction, error) {
	switch s {
	case "accept":
		return commands.ActionAccept, nil
	case "pick_up":
		return commands.ActionPickUp, nil
	case "start_transit":
		return commands.ActionStartTransit, nil
	case "deliver":
		return commands.ActionDeliver, nil
	case "return":
		return commands.ActionReturn, nil
	case "cancel":
		return commands.ActionCancel, nil
	default:
		return commands.AssignmentActionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not a valid assignment action", s))
	}
}
