package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// CancelOfferCommandHandler handles offer withdrawal. Cancellation is only
// possible while the offer is still pending, so no rider statistics are
// involved.
type CancelOfferCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewCancelOfferCommandHandler creates a handler for offer cancellations.
func NewCancelOfferCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) CancelOfferCommandHandler {
	return CancelOfferCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the offer cancellation command.
func (h *CancelOfferCommandHandler) Handle(ctx context.Context, cmd CancelOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.ActorID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.Cancel(cmd.ActorID(), role, now, cmd.Note())
		},
		nil,
	)
}
