package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) UpdateTransitioned(ctx context.Context, o *offer.Offer, expectedStatus offer.Status) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOfferRepository) UpdateRatings(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllNearby(
	ctx context.Context, center kernel.GeoPoint, radiusKm float64, filter ports.OfferFilter,
) ([]*offer.Offer, error) {
	args := m.Called(ctx, center, radiusKm, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllByBusiness(ctx context.Context, businessID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetAllByRider(ctx context.Context, riderID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) RegisterAcceptedDelivery(ctx context.Context, riderID kernel.UUID) error {
	args := m.Called(ctx, riderID)
	return args.Error(0)
}

func (m *MockAccountRepository) RegisterCompletedDelivery(ctx context.Context, riderID kernel.UUID, earnings kernel.Money) error {
	args := m.Called(ctx, riderID, earnings)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyRiderRating(ctx context.Context, riderID kernel.UUID, score int) error {
	args := m.Called(ctx, riderID, score)
	return args.Error(0)
}

func (m *MockAccountRepository) RegisterPostedOffer(ctx context.Context, businessID kernel.UUID) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

func (m *MockAccountRepository) RegisterCompletedOffer(ctx context.Context, businessID kernel.UUID) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyBusinessRating(ctx context.Context, businessID kernel.UUID, score int) error {
	args := m.Called(ctx, businessID, score)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetAllUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOfferUoWFactory struct{ mock.Mock }

func (m *MockOfferUoWFactory) Create() commands.OfferUoW {
	args := m.Called()
	return args.Get(0).(commands.OfferUoW)
}

type MockAccountUoWFactory struct{ mock.Mock }

func (m *MockAccountUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]any, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustGeoPoint(lat, lng float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

func mustMoney(amount float64) kernel.Money {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func testWaypoint(address string) offer.Waypoint {
	w, err := offer.NewWaypoint(address, mustGeoPoint(45.4642, 9.19), "Mario", "+3902123456", nil)
	if err != nil {
		panic(err)
	}
	return w
}

func testPackage() offer.Package {
	p, err := offer.NewPackage(2.5, 30, 20, 10, "documents", false)
	if err != nil {
		panic(err)
	}
	return p
}

func testPricing() offer.Pricing {
	return offer.NewPricing(mustMoney(10), mustMoney(12), mustMoney(3))
}

func testPendingOffer(businessID kernel.UUID) *offer.Offer {
	o, err := offer.NewOffer(kernel.NewUUID(), businessID,
		testWaypoint("Via Dante 4"), testWaypoint("Corso Como 10"),
		testPackage(), testPricing())
	if err != nil {
		panic(err)
	}
	return o
}

// testOfferInStatus walks a fresh offer through the lifecycle until it
// reaches the target status, acting as the given rider.
func testOfferInStatus(target offer.Status, businessID, riderID kernel.UUID) *offer.Offer {
	o := testPendingOffer(businessID)
	now := time.Now().UTC()

	steps := []func() error{
		func() error { return o.Accept(riderID, kernel.RoleRider, now) },
		func() error { return o.MarkPickedUp(riderID, kernel.RoleRider, now, "", nil) },
		func() error { return o.StartTransit(riderID, kernel.RoleRider, now, "", nil) },
		func() error { return o.MarkDelivered(riderID, kernel.RoleRider, now, "", nil) },
	}

	for _, step := range steps {
		if o.Status() == target {
			return o
		}
		if err := step(); err != nil {
			panic(err)
		}
	}
	if o.Status() != target {
		panic("unreachable target status " + target.String())
	}
	return o
}

func testRiderAccount(id kernel.UUID) *account.Account {
	a, err := account.NewAccount(id, kernel.RoleRider, "Marco", "marco@example.com", "", "bicycle", "")
	if err != nil {
		panic(err)
	}
	return a
}

func testBusinessAccount(id kernel.UUID) *account.Account {
	a, err := account.NewAccount(id, kernel.RoleBusiness, "Anna", "anna@example.com", "", "", "Panificio Anna")
	if err != nil {
		panic(err)
	}
	return a
}

func testAdminAccount(id kernel.UUID) *account.Account {
	a, err := account.NewAccount(id, kernel.RoleAdmin, "Ops", "ops@example.com", "", "", "")
	if err != nil {
		panic(err)
	}
	return a
}
