package http

import (
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for POST /api/v1/orders. A location
// reference and a custom location are mutually exclusive.
type CreateOrderRequest struct {
	DeliveryType   string             `json:"delivery_type"`
	CustomerPhone  *string            `json:"customer_phone,omitempty"`
	Items          []OrderItemRequest `json:"items"`
	LocationID     *string            `json:"location_id,omitempty"`
	CustomLocation *string            `json:"custom_location,omitempty"`
	CustomFee      *decimal.Decimal   `json:"custom_fee,omitempty"`
}

// OrderItemRequest is one order line in a create or add-item payload.
type OrderItemRequest struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	ItemType   string          `json:"item_type"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

// ChangeQuantityRequest is the payload for requantifying an order line.
type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ChangeStatusRequest is the payload for moving an order along its workflow.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeLocationRequest re-routes an order. Sending neither a location nor a
// custom location clears the order's location reference.
type ChangeLocationRequest struct {
	LocationID     *string          `json:"location_id,omitempty"`
	CustomLocation *string          `json:"custom_location,omitempty"`
	CustomFee      *decimal.Decimal `json:"custom_fee,omitempty"`
}

// UncompletedOrderResponse is one row of the open order board.
type UncompletedOrderResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Status       string          `json:"status"`
	DeliveryType string          `json:"delivery_type"`
	LocationName string          `json:"location_name,omitempty"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedAgo   string          `json:"created_ago"`
}

// OrderProjectionResponse is the full order read model with its payment
// standing.
type OrderProjectionResponse struct {
	ID            string               `json:"id"`
	Number        string               `json:"number"`
	Status        string               `json:"status"`
	DeliveryType  string               `json:"delivery_type"`
	CustomerPhone *string              `json:"customer_phone,omitempty"`
	LocationName  string               `json:"location_name,omitempty"`
	DeliveryFee   decimal.Decimal      `json:"delivery_fee"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	Items         []OrderItemResponse  `json:"items"`
	Payments      []PaymentRowResponse `json:"payments"`

	PaymentStatus  string          `json:"payment_status"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AmountRefunded decimal.Decimal `json:"amount_refunded"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
	OverpaidAmount decimal.Decimal `json:"overpaid_amount"`

	CreatedAt  time.Time `json:"created_at"`
	CreatedAgo string    `json:"created_ago"`
}

// OrderItemResponse is one order line in the read model.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ItemType  string          `json:"item_type"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentRowResponse is one ledger row in the read model.
type PaymentRowResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference"`
	RecordedAgo string          `json:"recorded_ago"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryType, err := order.DeliveryTypeFromString(request.DeliveryType)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		items = append(items, commands.OrderItemInput{
			MenuItemID: menuItemID,
			Name:       item.Name,
			ItemType:   item.ItemType,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}

	locationID, err := optionalUUID(request.LocationID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, deliveryType, request.CustomerPhone, items,
		locationID, request.CustomLocation, request.CustomFee)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves the order read model.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderProjectionQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	projection, err := s.getOrderProjectionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderProjectionResponse(projection))
}

// GetUncompletedOrders handles GET /api/v1/orders/uncompleted - the open order board.
func (s *Server) GetUncompletedOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]UncompletedOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = UncompletedOrderResponse{
			ID:           row.ID.String(),
			Number:       row.Number,
			Status:       row.Status,
			DeliveryType: row.DeliveryType,
			LocationName: row.LocationName,
			TotalPrice:   row.TotalPrice,
			CreatedAt:    row.CreatedAt,
			CreatedAgo:   row.CreatedAgo,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddOrderItem handles POST /api/v1/orders/:orderID/items - adds a line.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request OrderItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	menuItemID, err := kernel.UUIDFromString(request.MenuItemID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddItemCommand(orderID, commands.OrderItemInput{
		MenuItemID: menuItemID,
		Name:       request.Name,
		ItemType:   request.ItemType,
		UnitPrice:  request.UnitPrice,
		Quantity:   request.Quantity,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.applyItemChangeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderItemQuantity handles PUT /api/v1/orders/:orderID/items/:itemID.
func (s *Server) ChangeOrderItemQuantity(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangeQuantityRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeItemQuantityCommand(orderID, itemID, request.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.applyItemChangeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:orderID/items/:itemID.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveItemCommand(orderID, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.applyItemChangeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles PUT /api/v1/orders/:orderID/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderLocation handles PUT /api/v1/orders/:orderID/location.
func (s *Server) ChangeOrderLocation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangeLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	locationID, err := optionalUUID(request.LocationID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderLocationCommand(
		orderID, locationID, request.CustomLocation, request.CustomFee)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.changeLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderRequest carries the mutable order details. Nil fields are left
// unchanged.
type UpdateOrderRequest struct {
	DeliveryType  *string `json:"delivery_type"`
	CustomerPhone *string `json:"customer_phone"`
}

// UpdateOrder handles PATCH /api/v1/orders/:orderID - switches the order
// between pickup and delivery and updates the customer phone.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request UpdateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var deliveryType *order.DeliveryType
	if request.DeliveryType != nil {
		parsed, typeErr := order.DeliveryTypeFromString(*request.DeliveryType)
		if typeErr != nil {
			return respondError(ctx, typeErr)
		}
		deliveryType = &parsed
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID, deliveryType, request.CustomerPhone)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.updateDetailsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderProjectionResponse(p *queries.GetOrderProjectionQueryResponse) OrderProjectionResponse {
	items := make([]OrderItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			ItemType:  item.ItemType,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	payments := make([]PaymentRowResponse, len(p.Payments))
	for i, row := range p.Payments {
		payments[i] = PaymentRowResponse{
			ID:          row.ID.String(),
			Amount:      row.Amount,
			Method:      row.Method,
			Kind:        row.Kind,
			Status:      row.Status,
			Reference:   row.Reference,
			RecordedAgo: row.RecordedAgo,
		}
	}

	return OrderProjectionResponse{
		ID:             p.ID.String(),
		Number:         p.Number,
		Status:         p.Status,
		DeliveryType:   p.DeliveryType,
		CustomerPhone:  p.CustomerPhone,
		LocationName:   p.LocationName,
		DeliveryFee:    p.DeliveryFee,
		TotalPrice:     p.TotalPrice,
		Items:          items,
		Payments:       payments,
		PaymentStatus:  p.PaymentStatus,
		AmountPaid:     p.AmountPaid,
		AmountRefunded: p.AmountRefunded,
		BalanceDue:     p.BalanceDue,
		OverpaidAmount: p.OverpaidAmount,
		CreatedAt:      p.CreatedAt,
		CreatedAgo:     p.CreatedAgo,
	}
}

func optionalUUID(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
