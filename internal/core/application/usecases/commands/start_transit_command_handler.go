package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// StartTransitCommandHandler handles the transit step of the delivery leg.
// Only the assigned rider may start transit, and only from picked_up.
type StartTransitCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewStartTransitCommandHandler creates a handler for transit reports.
func NewStartTransitCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the start of transit command.
func (h *StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.RiderID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.StartTransit(cmd.RiderID(), role, now, cmd.Note(), cmd.Location())
		},
		nil,
	)
}
