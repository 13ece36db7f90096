package accountrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// AccountRepositoryIntegrationTestSuite provides integration tests for the account
// repository using PostgreSQL containers to verify database persistence behavior.
type AccountRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *accountrepo.Repository
	tracker    *MockAggregateTracker
}

func (suite *AccountRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&accountrepo.AccountDTO{}))
}

func (suite *AccountRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE accounts").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = accountrepo.NewRepository(suite.db, suite.tracker)
}

func (suite *AccountRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AccountRepositoryIntegrationTestSuite) TestAdd_And_Get_RoundTripsAllRoles() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	rider := suite.createRider()
	business := suite.createBusiness()

	admin, err := account.NewAccount(
		kernel.NewUUID(), kernel.RoleAdmin, "Ops", "ops@example.com", "", "", "")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, rider))
	suite.Require().NoError(suite.repository.Add(ctx, business))
	suite.Require().NoError(suite.repository.Add(ctx, admin))

	retrievedRider, err := suite.repository.Get(ctx, rider.ID())
	suite.Require().NoError(err)
	suite.True(retrievedRider.IsRider())
	stats, err := retrievedRider.RiderStats()
	suite.Require().NoError(err)
	suite.Equal("bike", stats.Vehicle)
	suite.Zero(stats.ActiveDeliveries)

	retrievedBusiness, err := suite.repository.Get(ctx, business.ID())
	suite.Require().NoError(err)
	suite.True(retrievedBusiness.IsBusiness())
	businessStats, err := retrievedBusiness.BusinessStats()
	suite.Require().NoError(err)
	suite.Equal("Brera Books", businessStats.Company)

	retrievedAdmin, err := suite.repository.Get(ctx, admin.ID())
	suite.Require().NoError(err)
	suite.True(retrievedAdmin.IsAdmin())
}

func (suite *AccountRepositoryIntegrationTestSuite) TestGet_NonExistentAccount_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *AccountRepositoryIntegrationTestSuite) TestDeliveryCounters_AcceptThenComplete() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	rider := suite.createRider()
	suite.Require().NoError(suite.repository.Add(ctx, rider))

	suite.Require().NoError(suite.repository.RegisterAcceptedDelivery(ctx, rider.ID()))
	suite.Require().NoError(suite.repository.RegisterAcceptedDelivery(ctx, rider.ID()))

	earnings, err := kernel.NewMoney(25)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.RegisterCompletedDelivery(ctx, rider.ID(), earnings))

	retrieved, err := suite.repository.Get(ctx, rider.ID())
	suite.Require().NoError(err)

	stats, err := retrieved.RiderStats()
	suite.Require().NoError(err)
	suite.Equal(1, stats.ActiveDeliveries)
	suite.Equal(1, stats.TotalDeliveries)
	suite.InDelta(25, stats.TotalEarnings.Amount(), 1e-9)
}

func (suite *AccountRepositoryIntegrationTestSuite) TestRegisterAcceptedDelivery_NonRider_ReturnsNotFoundError() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	business := suite.createBusiness()
	suite.Require().NoError(suite.repository.Add(ctx, business))

	err := suite.repository.RegisterAcceptedDelivery(ctx, business.ID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *AccountRepositoryIntegrationTestSuite) TestApplyRiderRating_FoldsRunningMean() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	rider := suite.createRider()
	suite.Require().NoError(suite.repository.Add(ctx, rider))

	suite.Require().NoError(suite.repository.ApplyRiderRating(ctx, rider.ID(), 5))
	suite.Require().NoError(suite.repository.ApplyRiderRating(ctx, rider.ID(), 4))
	suite.Require().NoError(suite.repository.ApplyRiderRating(ctx, rider.ID(), 3))

	retrieved, err := suite.repository.Get(ctx, rider.ID())
	suite.Require().NoError(err)

	stats, err := retrieved.RiderStats()
	suite.Require().NoError(err)
	suite.Equal(3, stats.Rating.Count)
	suite.InDelta(4.0, stats.Rating.Average, 1e-9)
}

func (suite *AccountRepositoryIntegrationTestSuite) TestBusinessCounters_PostedAndCompleted() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	business := suite.createBusiness()
	suite.Require().NoError(suite.repository.Add(ctx, business))

	suite.Require().NoError(suite.repository.RegisterPostedOffer(ctx, business.ID()))
	suite.Require().NoError(suite.repository.RegisterPostedOffer(ctx, business.ID()))
	suite.Require().NoError(suite.repository.RegisterCompletedOffer(ctx, business.ID()))
	suite.Require().NoError(suite.repository.ApplyBusinessRating(ctx, business.ID(), 4))

	retrieved, err := suite.repository.Get(ctx, business.ID())
	suite.Require().NoError(err)

	stats, err := retrieved.BusinessStats()
	suite.Require().NoError(err)
	suite.Equal(2, stats.PostedOffers)
	suite.Equal(1, stats.CompletedOffers)
	suite.Equal(1, stats.Rating.Count)
	suite.InDelta(4.0, stats.Rating.Average, 1e-9)
}

func (suite *AccountRepositoryIntegrationTestSuite) createRider() *account.Account {
	rider, err := account.NewAccount(
		kernel.NewUUID(), kernel.RoleRider, "Marco", "marco@example.com", "+39 333 1234567", "bike", "")
	suite.Require().NoError(err)
	return rider
}

func (suite *AccountRepositoryIntegrationTestSuite) createBusiness() *account.Account {
	business, err := account.NewAccount(
		kernel.NewUUID(), kernel.RoleBusiness, "Giulia", "giulia@example.com", "", "", "Brera Books")
	suite.Require().NoError(err)
	return business
}

func TestAccountRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryIntegrationTestSuite))
}
