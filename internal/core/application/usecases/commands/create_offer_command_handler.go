package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOfferCommandHandler handles the business logic for posting offers.
// Only business accounts may post; the offer starts in pending status and the
// business's posted offer counter is advanced in the same transaction.
type CreateOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewCreateOfferCommandHandler creates a handler for offer posting operations.
// Requires an OfferUoWFactory for transactional persistence.
func NewCreateOfferCommandHandler(uowFactory OfferUoWFactory, cache ports.Cache, logger *slog.Logger) CreateOfferCommandHandler {
	return CreateOfferCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the offer posting command.
func (h *CreateOfferCommandHandler) Handle(ctx context.Context, cmd CreateOfferCommand) error {
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

	accountRepo := uow.AccountRepository()

	business, err := accountRepo.Get(ctx, cmd.BusinessID())
	if err != nil {
		return err
	}
	if !business.IsBusiness() {
		return errs.NewForbiddenError(business.ID().String(), "post offers")
	}

	aggregate, err := offer.NewOffer(
		cmd.OfferID(), cmd.BusinessID(),
		cmd.Pickup(), cmd.Delivery(), cmd.Package(), cmd.Pricing(),
	)
	if err != nil {
		return err
	}

	if err = uow.OfferRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = accountRepo.RegisterPostedOffer(ctx, cmd.BusinessID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The posted offer counter moved, so the cached business profile is stale.
	if err = h.cache.Delete(ctx, ports.AccountCacheKey(cmd.BusinessID())); err != nil {
		h.logger.WarnContext(ctx, "failed to invalidate account cache",
			slog.String("business_id", cmd.BusinessID().String()),
			slog.Any("error", err))
	}

	return nil
}
