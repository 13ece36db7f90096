package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRepository struct {
	mock.Mock
}

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

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNotification(t *testing.T) *notification.Notification {
	t.Helper()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()

	pickupPoint, err := kernel.NewGeoPoint(45.4642, 9.19)
	require.NoError(t, err)
	deliveryPoint, err := kernel.NewGeoPoint(45.4810, 9.1880)
	require.NoError(t, err)

	pickup, err := offer.NewWaypoint("Via Brera 28, Milano", pickupPoint, "Contact", "+39 02 1234567", nil)
	require.NoError(t, err)
	delivery, err := offer.NewWaypoint("Corso Como 10, Milano", deliveryPoint, "Contact", "+39 02 7654321", nil)
	require.NoError(t, err)

	pkg, err := offer.NewPackage(2.5, 30, 20, 10, "documents", false)
	require.NoError(t, err)

	base, err := kernel.NewMoney(10)
	require.NoError(t, err)
	distance, err := kernel.NewMoney(12)
	require.NoError(t, err)
	urgency, err := kernel.NewMoney(3)
	require.NoError(t, err)

	o, err := offer.NewOffer(kernel.NewUUID(), businessID, pickup, delivery, pkg,
		offer.NewPricing(base, distance, urgency))
	require.NoError(t, err)
	require.NoError(t, o.Accept(riderID, kernel.RoleRider, time.Now().UTC()))

	record, err := notification.NewNotification(o, offer.Pending, riderID, time.Now().UTC())
	require.NoError(t, err)
	return record
}

func TestOutboxDispatcherJob_Dispatch_PublishesAndMarks(t *testing.T) {
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	job := NewOutboxDispatcherJob(outbox, publisher, discardLogger())

	record := testNotification(t)

	outbox.On("GetAllUnpublished", mock.Anything, dispatchBatchSize).
		Return([]*notification.Notification{record}, nil).Once()
	publisher.On("Publish", mock.Anything, []byte(record.OfferID().String()), record.Payload()).
		Return(nil).Once()
	outbox.On("Update", mock.Anything, record).Return(nil).Once()

	err := job.dispatch(context.Background())

	require.NoError(t, err)
	assert.True(t, record.IsPublished())
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxDispatcherJob_Dispatch_PublishFailureLeavesRecordUnpublished(t *testing.T) {
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	job := NewOutboxDispatcherJob(outbox, publisher, discardLogger())

	failing := testNotification(t)
	working := testNotification(t)

	outbox.On("GetAllUnpublished", mock.Anything, dispatchBatchSize).
		Return([]*notification.Notification{failing, working}, nil).Once()
	publisher.On("Publish", mock.Anything, []byte(failing.OfferID().String()), failing.Payload()).
		Return(errors.New("broker down")).Once()
	publisher.On("Publish", mock.Anything, []byte(working.OfferID().String()), working.Payload()).
		Return(nil).Once()
	outbox.On("Update", mock.Anything, working).Return(nil).Once()

	err := job.dispatch(context.Background())

	require.NoError(t, err)
	assert.False(t, failing.IsPublished())
	assert.True(t, working.IsPublished())
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxDispatcherJob_Dispatch_LoadFailureReturnsError(t *testing.T) {
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	job := NewOutboxDispatcherJob(outbox, publisher, discardLogger())

	outbox.On("GetAllUnpublished", mock.Anything, dispatchBatchSize).
		Return(nil, errors.New("db down")).Once()

	err := job.dispatch(context.Background())

	require.Error(t, err)
	outbox.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOutboxDispatcherJob_Dispatch_NothingToPublish(t *testing.T) {
	outbox := new(MockOutboxRepository)
	publisher := new(MockPublisher)
	job := NewOutboxDispatcherJob(outbox, publisher, discardLogger())

	outbox.On("GetAllUnpublished", mock.Anything, dispatchBatchSize).
		Return([]*notification.Notification{}, nil).Once()

	err := job.dispatch(context.Background())

	require.NoError(t, err)
	outbox.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
