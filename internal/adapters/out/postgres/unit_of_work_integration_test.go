package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and every
// repository against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = postgres_adapter.Migrate(db)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, payments, riders, assignments, locations").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "repeated begin is a no-op")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin must fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("East Legon", 10)
	err := uow.LocationRepository().Add(ctx, location)
	suite.Require().NoError(err)

	testOrder := suite.createDeliveryOrder(1, location)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.Number().String(), restored.Number().String())
	suite.Equal(order.Accepted, restored.Status())
	suite.Len(restored.Items(), 2)
	suite.True(restored.TotalPrice().Equal(testOrder.TotalPrice()))
	suite.Require().NotNil(restored.Location())
	suite.Equal("East Legon", restored.Location().Name())
	suite.Require().NotNil(restored.LocationNameSnapshot())
	suite.Equal("East Legon", *restored.LocationNameSnapshot())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderLocationDeactivationVisibleOnLoad() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("Osu", 15)
	suite.Require().NoError(uow.LocationRepository().Add(ctx, location))

	testOrder := suite.createDeliveryOrder(1, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	location.Deactivate()
	suite.Require().NoError(uow.LocationRepository().Update(ctx, location))

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NotNil(restored.Location())
	suite.False(restored.Location().IsActive(),
		"the live reference reflects the location row, not a stale copy")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCountForDay() {
	ctx := context.Background()
	uow := suite.factory.Create()

	day := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	for seq := 1; seq <= 3; seq++ {
		testOrder := suite.createPickupOrder(day, seq)
		suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	}

	count, err := uow.OrderRepository().CountForDay(ctx, day)
	suite.Require().NoError(err)
	suite.Equal(3, count)

	count, err = uow.OrderRepository().CountForDay(ctx, day.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	suite.Zero(count, "the sequence restarts on the next day")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicateOrderNumberConflict() {
	ctx := context.Background()
	uow := suite.factory.Create()

	day := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	first := suite.createPickupOrder(day, 1)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, first))

	second := suite.createPickupOrder(day, 1)
	err := uow.OrderRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict,
		"two orders can never share a number")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPaymentReferenceIdempotency() {
	ctx := context.Background()
	uow := suite.factory.Create()

	day := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	testOrder := suite.createPickupOrder(day, 1)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	paymentID := kernel.NewUUID()
	row, err := payment.NewPayment(
		paymentID, testOrder.ID(), decimal.NewFromInt(50),
		payment.Cash, payment.KindPayment, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, row))

	// same payment id derives the same reference, so the replay conflicts
	replay, err := payment.NewPayment(
		paymentID, testOrder.ID(), decimal.NewFromInt(50),
		payment.Cash, payment.KindPayment, time.Now())
	suite.Require().NoError(err)

	err = uow.PaymentRepository().Add(ctx, replay)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	rows, err := uow.PaymentRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(rows, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentWorkflowAndStats() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("Labone", 12)
	suite.Require().NoError(uow.LocationRepository().Add(ctx, location))

	testOrder := suite.createDeliveryOrder(1, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	rider, err := delivery.NewRider(kernel.NewUUID(), "Kwame", "0551234567", 3, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RiderRepository().Add(ctx, rider))

	assignment, err := delivery.NewAssignment(
		kernel.NewUUID(), testOrder.ID(), rider.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, assignment))

	exists, err := uow.AssignmentRepository().ExistsNonCancelledForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(exists)

	now := time.Now().UTC()
	suite.Require().NoError(assignment.Accept())
	suite.Require().NoError(assignment.PickUp(now))
	suite.Require().NoError(assignment.StartTransit())
	delivered, err := assignment.Deliver(now)
	suite.Require().NoError(err)
	suite.True(delivered)
	suite.Require().NoError(uow.AssignmentRepository().Update(ctx, assignment))

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := uow.AssignmentRepository().StatsForRider(ctx, rider.ID(), dayStart)
	suite.Require().NoError(err)
	suite.Equal(0, stats.CurrentOrders)
	suite.Equal(1, stats.TotalDeliveries)
	suite.Equal(1, stats.TodayDeliveries)

	active, err := uow.AssignmentRepository().GetActiveByOrderID(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(active)

	// a returned run counts toward the lifetime total but not toward today
	secondOrder := suite.createDeliveryOrder(2, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, secondOrder))

	returned, err := delivery.NewAssignment(
		kernel.NewUUID(), secondOrder.ID(), rider.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, returned))
	suite.Require().NoError(returned.Accept())
	suite.Require().NoError(returned.PickUp(now))
	suite.Require().NoError(returned.StartTransit())
	suite.Require().NoError(returned.Return())
	suite.Require().NoError(uow.AssignmentRepository().Update(ctx, returned))

	stats, err = uow.AssignmentRepository().StatsForRider(ctx, rider.ID(), dayStart)
	suite.Require().NoError(err)
	suite.Equal(0, stats.CurrentOrders)
	suite.Equal(2, stats.TotalDeliveries)
	suite.Equal(1, stats.TodayDeliveries)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSecondActiveAssignmentBlockedByStorage() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("Dansoman", 18)
	suite.Require().NoError(uow.LocationRepository().Add(ctx, location))

	testOrder := suite.createDeliveryOrder(1, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	first, err := delivery.NewRider(kernel.NewUUID(), "Kwame", "0551234567", 3, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RiderRepository().Add(ctx, first))

	second, err := delivery.NewRider(kernel.NewUUID(), "Ama", "0209876543", 3, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RiderRepository().Add(ctx, second))

	assignment, err := delivery.NewAssignment(
		kernel.NewUUID(), testOrder.ID(), first.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, assignment))

	// the index rejects a second claim even when the existence check is
	// skipped, which is what happens when two dispatches race
	rival, err := delivery.NewAssignment(
		kernel.NewUUID(), testOrder.ID(), second.ID(), time.Now())
	suite.Require().NoError(err)
	err = uow.AssignmentRepository().Add(ctx, rival)
	suite.Require().ErrorIs(err, errs.ErrConflict,
		"an order can carry at most one non-cancelled assignment")

	// a cancelled assignment releases the slot
	suite.Require().NoError(assignment.Cancel())
	suite.Require().NoError(uow.AssignmentRepository().Update(ctx, assignment))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, rival))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeleteReferencedLocationRejected() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("Tema", 25)
	suite.Require().NoError(uow.LocationRepository().Add(ctx, location))

	testOrder := suite.createDeliveryOrder(1, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	err := uow.LocationRepository().Delete(ctx, location.ID())
	suite.Require().ErrorIs(err, errs.ErrInvariantViolated,
		"referenced locations must be archived before deletion")

	restored, err := uow.LocationRepository().Get(ctx, location.ID())
	suite.Require().NoError(err)
	suite.Equal("Tema", restored.Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsAllRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	day := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	testOrder := suite.createPickupOrder(day, 1)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	rider, err := delivery.NewRider(kernel.NewUUID(), "Ama", "0209876543", 3, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RiderRepository().Add(ctx, rider))

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "order must not survive the rollback")

	_, err = fresh.RiderRepository().Get(ctx, rider.ID())
	suite.Require().Error(err, "rider must not survive the rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLocationArchiveFlow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	location := suite.createLocation("Cantonments", 20)
	suite.Require().NoError(uow.LocationRepository().Add(ctx, location))

	testOrder := suite.createDeliveryOrder(1, location)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	referencing, err := uow.OrderRepository().GetByLocationID(ctx, location.ID())
	suite.Require().NoError(err)
	suite.Require().Len(referencing, 1)

	referencing[0].ClearLocationRef()
	suite.Require().NoError(uow.OrderRepository().Update(ctx, referencing[0]))
	suite.Require().NoError(uow.LocationRepository().Delete(ctx, location.ID()))

	restored, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Nil(restored.Location())
	suite.Require().NotNil(restored.LocationNameSnapshot())
	suite.Equal("Cantonments", *restored.LocationNameSnapshot(),
		"the snapshot keeps the archived location readable")
	suite.True(restored.DeliveryFee().Equal(decimal.NewFromInt(20)))
}

func (suite *UnitOfWorkIntegrationTestSuite) createLocation(name string, fee int64) *delivery.Location {
	location, err := delivery.NewLocation(
		kernel.NewUUID(), name, decimal.NewFromInt(fee), time.Now())
	suite.Require().NoError(err)
	return location
}

func (suite *UnitOfWorkIntegrationTestSuite) createDeliveryOrder(
	sequence int, location *delivery.Location,
) *order.Order {
	number, err := kernel.NewOrderNumber(time.Now().UTC(), sequence)
	suite.Require().NoError(err)

	phone := "0241234567"
	testOrder, err := order.NewOrder(kernel.NewUUID(), number, order.Delivery, &phone, time.Now())
	suite.Require().NoError(err)

	snapshot, err := location.Snapshot()
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.SetDeliveryLocation(snapshot))

	suite.addItems(testOrder)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createPickupOrder(day time.Time, sequence int) *order.Order {
	number, err := kernel.NewOrderNumber(day, sequence)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), number, order.Pickup, nil, day)
	suite.Require().NoError(err)

	suite.addItems(testOrder)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) addItems(testOrder *order.Order) {
	jollof, err := order.NewMenuItemSnapshot(
		kernel.NewUUID(), "Jollof Rice", "regular", decimal.NewFromInt(25))
	suite.Require().NoError(err)
	_, err = testOrder.AddItem(kernel.NewUUID(), jollof, 2)
	suite.Require().NoError(err)

	chicken, err := order.NewMenuItemSnapshot(
		kernel.NewUUID(), "Grilled Chicken", "regular", decimal.NewFromInt(35))
	suite.Require().NoError(err)
	_, err = testOrder.AddItem(kernel.NewUUID(), chicken, 1)
	suite.Require().NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
