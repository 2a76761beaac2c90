package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/incidentrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetIncidentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetIncidentsQueryHandler
}

func (suite *GetIncidentsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&incidentrepo.IncidentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetIncidentsQueryHandler(db)
}

func (suite *GetIncidentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE incidents").Error
	suite.Require().NoError(err)
}

func (suite *GetIncidentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetIncidentsQueryHandlerTestSuite) createIncident(incidentType incident.Type,
	description string, reportedAt time.Time) *incident.Incident {
	aggregate, err := incident.NewIncident(kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), incidentType, description, reportedAt)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetIncidentsQueryHandlerTestSuite) saveIncidents(incidents ...*incident.Incident) {
	repo := incidentrepo.NewGormIncidentRepository(suite.db, &mockAggregateTracker{})
	for _, aggregate := range incidents {
		err := repo.Add(context.Background(), aggregate)
		suite.Require().NoError(err)
	}
}

func (suite *GetIncidentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetIncidentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetIncidentsQueryHandlerTestSuite) TestHandle_AllIncidentsIncludeResolved() {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	resolvedAt := base.Add(3 * time.Hour)

	open := suite.createIncident(incident.TypeBreakdown, "engine will not start", base)
	resolved := suite.createIncident(incident.TypeOther, "wrong address on label", base.Add(time.Hour))
	suite.Require().NoError(resolved.Resolve(resolvedAt))

	suite.saveIncidents(open, resolved)

	query := queries.NewGetIncidentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(open.ID(), result[0].ID)
	suite.Equal(string(incident.StatusOpen), result[0].Status)
	suite.True(result[0].ResolvedAt.IsZero())

	suite.Equal(resolved.ID(), result[1].ID)
	suite.Equal(string(incident.StatusResolved), result[1].Status)
	suite.True(resolvedAt.Equal(result[1].ResolvedAt))
}

func (suite *GetIncidentsQueryHandlerTestSuite) TestHandle_OpenOnlyOrderedByReportedAt() {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	late := suite.createIncident(incident.TypePuncture, "flat rear tyre", base.Add(time.Hour))
	early := suite.createIncident(incident.TypeBreakdown, "engine will not start", base)
	resolved := suite.createIncident(incident.TypeOther, "wrong address on label", base.Add(2*time.Hour))
	suite.Require().NoError(resolved.Resolve(base.Add(3 * time.Hour)))

	suite.saveIncidents(late, early, resolved)

	query := queries.NewGetOpenIncidentsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(early.ID(), result[0].ID)
	suite.Equal(string(incident.TypeBreakdown), result[0].IncidentType)
	suite.Equal(string(incident.SeverityHigh), result[0].Severity)
	suite.Equal(early.DelayMinutes(), result[0].DelayMinutes)
	suite.Equal("engine will not start", result[0].Description)

	suite.Equal(late.ID(), result[1].ID)
	suite.Equal(string(incident.SeverityLow), result[1].Severity)
}

func (suite *GetIncidentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetIncidentsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetIncidentsQuery or NewGetOpenIncidentsQuery")
}

func TestGetIncidentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetIncidentsQueryHandlerTestSuite))
}
