package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetShipmentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetShipmentsQueryHandler
}

func (suite *GetShipmentsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetShipmentsQueryHandler(db)
}

func (suite *GetShipmentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments").Error
	suite.Require().NoError(err)
}

func (suite *GetShipmentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetShipmentsQueryHandlerTestSuite) createShipment(placedAt time.Time) *shipment.Shipment {
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), placedAt)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetShipmentsQueryHandlerTestSuite) saveShipments(shipments ...*shipment.Shipment) {
	repo := shipmentrepo.NewGormShipmentRepository(suite.db, &mockAggregateTracker{})
	for _, aggregate := range shipments {
		err := repo.Add(context.Background(), aggregate)
		suite.Require().NoError(err)
	}
}

func (suite *GetShipmentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetShipmentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetShipmentsQueryHandlerTestSuite) TestHandle_AllShipmentsOrderedByPlacedAt() {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	second := suite.createShipment(base.Add(time.Hour))
	first := suite.createShipment(base)
	delivered := suite.createShipment(base.Add(2 * time.Hour))
	suite.Require().NoError(delivered.Advance(shipment.StageConfirmed, base.Add(3*time.Hour)))
	suite.Require().NoError(delivered.Advance(shipment.StageInTransit, base.Add(4*time.Hour)))
	suite.Require().NoError(delivered.Advance(shipment.StageOutForDelivery, base.Add(5*time.Hour)))
	suite.Require().NoError(delivered.VerifyDelivery(delivered.PIN(), "recipient", base.Add(6*time.Hour)))

	suite.saveShipments(second, first, delivered)

	query := queries.NewGetShipmentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(delivered.ID(), result[2].ID)

	suite.Equal(shipment.StagePlaced.String(), result[0].Stage)
	suite.Equal(shipment.StageDelivered.String(), result[2].Stage)
	suite.Equal("recipient", result[2].VerifiedBy)
}

func (suite *GetShipmentsQueryHandlerTestSuite) TestHandle_ActiveOnlyExcludesTerminalStages() {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	active := suite.createShipment(base)
	failed := suite.createShipment(base.Add(time.Hour))
	suite.Require().NoError(failed.Fail("vehicle accident", base.Add(2*time.Hour)))

	suite.saveShipments(active, failed)

	query := queries.NewGetActiveShipmentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].ID)
}

func (suite *GetShipmentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetShipmentsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetShipmentsQuery or NewGetActiveShipmentsQuery")
}

func TestGetShipmentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentsQueryHandlerTestSuite))
}
