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

func TestCancelOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	testOffer := testPendingOffer(businessID)
	testBusiness := testBusinessAccount(businessID)

	cmd, err := commands.NewCancelOfferCommand(testOffer.ID(), businessID, "no longer needed")
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
		offerRepo.On("UpdateTransitioned", ctx, mock.AnythingOfType("*offer.Offer"), offer.Pending).
			Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Delete", ctx,
			ports.OfferCacheKey(testOffer.ID()),
			ports.AccountCacheKey(businessID)).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOfferCommandHandler(factory, cache, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, offer.Cancelled, testOffer.Status())

	history := testOffer.History()
	require.Len(t, history, 1)
	assert.Equal(t, "no longer needed", history[0].Note())
}

func TestCancelOfferCommandHandler_Handle_AcceptedOfferCannotBeCancelled(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	testOffer := testOfferInStatus(offer.Accepted, businessID, riderID)
	testBusiness := testBusinessAccount(businessID)

	cmd, err := commands.NewCancelOfferCommand(testOffer.ID(), businessID, "")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, businessID).Return(testBusiness, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOfferCommandHandler(factory, new(MockCache), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, offer.Accepted, testOffer.Status())
}

func TestCancelOfferCommandHandler_Handle_OtherBusinessForbidden(t *testing.T) {
	ctx := t.Context()

	businessID := kernel.NewUUID()
	otherBusinessID := kernel.NewUUID()
	testOffer := testPendingOffer(businessID)
	otherBusiness := testBusinessAccount(otherBusinessID)

	cmd, err := commands.NewCancelOfferCommand(testOffer.ID(), otherBusinessID, "")
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfferRepository").Return(offerRepo).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		offerRepo.On("Get", ctx, testOffer.ID()).Return(testOffer, nil).Once(),
		accountRepo.On("Get", ctx, otherBusinessID).Return(otherBusiness, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOfferCommandHandler(factory, new(MockCache), discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
