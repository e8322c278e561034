package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/riderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetAvailableRidersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableRidersQueryHandler
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) SetupSuite() {
	suite.db, suite.container = startQueryTestDB(&suite.Suite)
	suite.handler = queries.NewGetAvailableRidersQueryHandler(suite.db)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE riders").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAvailableRidersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_FiltersOutUndispatchableRiders() {
	suite.seedRider("Kwame", func(*delivery.Rider) {})
	suite.seedRider("Ama", func(r *delivery.Rider) {
		r.SetAvailability(false)
	})
	suite.seedRider("Yaw", func(r *delivery.Rider) {
		r.Deactivate()
	})
	suite.seedRider("Efua", func(r *delivery.Rider) {
		for i := 0; i < 3; i++ {
			r.IncrementCurrentOrders()
		}
	})

	query := queries.NewGetAvailableRidersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Kwame", result[0].Name)
	suite.Equal(3, result[0].MaxConcurrentOrders)
	suite.Zero(result[0].CurrentOrders)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_LeastLoadedFirst() {
	suite.seedRider("Kwame", func(r *delivery.Rider) {
		r.IncrementCurrentOrders()
		r.IncrementCurrentOrders()
	})
	suite.seedRider("Ama", func(r *delivery.Rider) {
		r.IncrementCurrentOrders()
	})
	suite.seedRider("Yaw", func(*delivery.Rider) {})

	query := queries.NewGetAvailableRidersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Yaw", result[0].Name)
	suite.Equal("Ama", result[1].Name)
	suite.Equal("Kwame", result[2].Name)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAvailableRidersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAvailableRidersQuery constructor")
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) seedRider(
	name string, mutate func(*delivery.Rider),
) {
	rider, err := delivery.NewRider(kernel.NewUUID(), name, "0551234567", 3, time.Now())
	suite.Require().NoError(err)
	mutate(rider)

	repo := riderrepo.NewGormRiderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), rider))
}

func TestGetAvailableRidersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableRidersQueryHandlerTestSuite))
}
