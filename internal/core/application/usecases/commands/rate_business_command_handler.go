package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// RateBusinessCommandHandler handles the rider's post-completion rating of
// the business. This is not a status transition: the offer stays completed,
// only the attached rating and the business's rating aggregate change.
type RateBusinessCommandHandler struct {
	uowFactory OfferUoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewRateBusinessCommandHandler creates a handler for business ratings.
func NewRateBusinessCommandHandler(uowFactory OfferUoWFactory, cache ports.Cache, logger *slog.Logger) RateBusinessCommandHandler {
	return RateBusinessCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the business rating command.
func (h *RateBusinessCommandHandler) Handle(ctx context.Context, cmd RateBusinessCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offerRepo := uow.OfferRepository()
	accountRepo := uow.AccountRepository()

	aggregate, err := offerRepo.Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	actor, err := accountRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = aggregate.RateBusiness(cmd.RiderID(), actor.Role(), cmd.Rating()); err != nil {
		return err
	}

	if err = offerRepo.UpdateRatings(ctx, aggregate); err != nil {
		return err
	}

	if err = accountRepo.ApplyBusinessRating(ctx, aggregate.Business(), cmd.Rating().Score()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	err = h.cache.Delete(ctx,
		ports.OfferCacheKey(cmd.OfferID()),
		ports.AccountCacheKey(aggregate.Business()))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to invalidate caches after rating",
			slog.String("offer_id", cmd.OfferID().String()),
			slog.Any("error", err))
	}

	return nil
}
