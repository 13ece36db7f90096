package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOfferCommandHandler_Handle_SuccessWithRating(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	testOffer := testOfferInStatus(offer.Delivered, businessID, riderID)
	testBusiness := testBusinessAccount(businessID)

	rating, err := offer.NewRating(5, "fast and careful")
	require.NoError(t, err)

	cmd, err := commands.NewCompleteOfferCommand(testOffer.ID(), businessID, &rating, "all good")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	cache := new(MockCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, businessID).Return(testBusiness, nil).Once(),
		offerRepo.On("UpdateTransitioned", ctx, mock.AnythingOfType("*offer.Offer"), offer.Delivered).
			Return(nil).Once(),
		accountRepo.On("RegisterCompletedOffer", ctx, businessID).Return(nil).Once(),
		accountRepo.On("ApplyRiderRating", ctx, riderID, 5).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Delete", ctx,
			ports.OfferCacheKey(testOffer.ID()),
			ports.AccountCacheKey(businessID),
			ports.AccountCacheKey(riderID)).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOfferCommandHandler(factory, cache, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, offer.Completed, testOffer.Status())
	require.NotNil(t, testOffer.RiderRating())
	assert.Equal(t, 5, testOffer.RiderRating().Score())

	accountRepo.AssertExpectations(t)
	offerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteOfferCommandHandler_Handle_WithoutRating(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	testOffer := testOfferInStatus(offer.Delivered, businessID, riderID)
	testBusiness := testBusinessAccount(businessID)

	cmd, err := commands.NewCompleteOfferCommand(testOffer.ID(), businessID, nil, "")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	cache := new(MockCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, businessID).Return(testBusiness, nil).Once(),
		offerRepo.On("UpdateTransitioned", ctx, mock.AnythingOfType("*offer.Offer"), offer.Delivered).
			Return(nil).Once(),
		accountRepo.On("RegisterCompletedOffer", ctx, businessID).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Delete", ctx,
			ports.OfferCacheKey(testOffer.ID()),
			ports.AccountCacheKey(businessID),
			ports.AccountCacheKey(riderID)).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOfferCommandHandler(factory, cache, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, testOffer.RiderRating())
	accountRepo.AssertNotCalled(t, "ApplyRiderRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOfferCommandHandler_Handle_AdminMayComplete(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	adminID := kernel.NewUUID()
	testOffer := testOfferInStatus(offer.Delivered, businessID, riderID)

	admin := testAdminAccount(adminID)

	cmd, err := commands.NewCompleteOfferCommand(testOffer.ID(), adminID, nil, "resolved by support")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	cache := new(MockCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, adminID).Return(admin, nil).Once(),
		offerRepo.On("UpdateTransitioned", ctx, mock.AnythingOfType("*offer.Offer"), offer.Delivered).
			Return(nil).Once(),
		accountRepo.On("RegisterCompletedOffer", ctx, businessID).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Delete", ctx,
			ports.OfferCacheKey(testOffer.ID()),
			ports.AccountCacheKey(businessID),
			ports.AccountCacheKey(riderID)).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOfferCommandHandler(factory, cache, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, offer.Completed, testOffer.Status())
}

func TestCompleteOfferCommandHandler_Handle_RiderForbidden(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	testOffer := testOfferInStatus(offer.Delivered, businessID, riderID)
	testRider := testRiderAccount(riderID)

	cmd, err := commands.NewCompleteOfferCommand(testOffer.ID(), riderID, nil, "")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, riderID).Return(testRider, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOfferCommandHandler(factory, new(MockCache), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
