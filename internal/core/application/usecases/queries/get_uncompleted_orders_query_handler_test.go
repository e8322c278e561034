package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetUncompletedOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUncompletedOrdersQueryHandler
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupSuite() {
	suite.db, suite.container = startQueryTestDB(&suite.Suite)
	suite.handler = queries.NewGetUncompletedOrdersQueryHandler(suite.db)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, locations").Error
	suite.Require().NoError(err)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetUncompletedOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_FiltersTerminalOrders() {
	open := suite.seedOrder(1, order.Pending, false)
	suite.seedOrder(2, order.Fulfilled, true)
	suite.seedOrder(3, order.Cancelled, false)
	ready := suite.seedOrder(4, order.Ready, false)

	query := queries.NewGetUncompletedOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(open.ID(), result[0].ID, "oldest first")
	suite.Equal(order.Pending.String(), result[0].Status)
	suite.Equal(ready.ID(), result[1].ID)
	suite.True(result[0].TotalPrice.Equal(decimal.NewFromInt(50)))
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_CustomLocationNameShownOnBoard() {
	number, err := kernel.NewOrderNumber(time.Now().UTC(), 7)
	suite.Require().NoError(err)

	phone := "0241234567"
	testOrder, err := order.NewOrder(kernel.NewUUID(), number, order.Delivery, &phone, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.SetCustomLocation("Auntie's house", decimal.NewFromInt(8)))
	suite.addItem(testOrder)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))

	query := queries.NewGetUncompletedOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Auntie's house", result[0].LocationName)
	suite.Equal(order.Delivery.String(), result[0].DeliveryType)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetUncompletedOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetUncompletedOrdersQuery constructor")
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) seedOrder(
	sequence int, status order.Status, paymentConfirmed bool,
) *order.Order {
	number, err := kernel.NewOrderNumber(time.Now().UTC(), sequence)
	suite.Require().NoError(err)

	createdAt := time.Now().UTC().Add(time.Duration(sequence) * time.Second)
	testOrder, err := order.NewOrder(kernel.NewUUID(), number, order.Pickup, nil, createdAt)
	suite.Require().NoError(err)
	suite.addItem(testOrder)

	if status != order.Pending {
		suite.Require().NoError(testOrder.ChangeStatus(status, paymentConfirmed))
	}

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) addItem(testOrder *order.Order) {
	jollof, err := order.NewMenuItemSnapshot(
		kernel.NewUUID(), "Jollof Rice", "regular", decimal.NewFromInt(25))
	suite.Require().NoError(err)
	_, err = testOrder.AddItem(kernel.NewUUID(), jollof, 2)
	suite.Require().NoError(err)
}

func TestGetUncompletedOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUncompletedOrdersQueryHandlerTestSuite))
}
