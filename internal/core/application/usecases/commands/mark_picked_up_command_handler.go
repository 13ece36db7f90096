package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// MarkPickedUpCommandHandler handles the pickup confirmation step of the
// delivery leg. Only the assigned rider may confirm pickup.
type MarkPickedUpCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewMarkPickedUpCommandHandler creates a handler for pickup confirmations.
func NewMarkPickedUpCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the pickup confirmation command.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.RiderID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.MarkPickedUp(cmd.RiderID(), role, now, cmd.Note(), cmd.Location())
		},
		nil,
	)
}
