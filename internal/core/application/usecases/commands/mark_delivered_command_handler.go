package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// MarkDeliveredCommandHandler handles the delivery confirmation step.
// On success the rider's active delivery becomes a completed one and the
// offer's total price is credited to the rider's earnings, all in the same
// transaction as the status change.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmations.
func NewMarkDeliveredCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the delivery confirmation command.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.RiderID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.MarkDelivered(cmd.RiderID(), role, now, cmd.Note(), cmd.Location())
		},
		func(ctx context.Context, accountRepo ports.AccountRepository, o *offer.Offer) error {
			return accountRepo.RegisterCompletedDelivery(ctx, cmd.RiderID(), o.Pricing().Total())
		},
	)
}
