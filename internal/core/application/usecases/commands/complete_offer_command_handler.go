package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// CompleteOfferCommandHandler handles the final confirmation of a delivered
// offer. The business's completed offer counter advances and, when a rating
// was given, the rider's rating aggregate is updated in the same transaction.
type CompleteOfferCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewCompleteOfferCommandHandler creates a handler for offer completions.
func NewCompleteOfferCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) CompleteOfferCommandHandler {
	return CompleteOfferCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the offer completion command.
func (h *CompleteOfferCommandHandler) Handle(ctx context.Context, cmd CompleteOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.ActorID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.Complete(cmd.ActorID(), role, now, cmd.RiderRating(), cmd.Note())
		},
		func(ctx context.Context, accountRepo ports.AccountRepository, o *offer.Offer) error {
			if err := accountRepo.RegisterCompletedOffer(ctx, o.Business()); err != nil {
				return err
			}
			if rating := o.RiderRating(); rating != nil && o.Rider() != nil {
				return accountRepo.ApplyRiderRating(ctx, *o.Rider(), rating.Score())
			}
			return nil
		},
	)
}
