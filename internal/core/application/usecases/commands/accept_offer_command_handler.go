package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// AcceptOfferCommandHandler handles the business logic for offer acceptance.
// Moves the offer from pending to accepted, assigns the rider, bumps the
// rider's active delivery counter and records the lifecycle event.
//
// Example:
//
//	handler := NewAcceptOfferCommandHandler(uowFactory, cache, logger)
//	cmd, _ := NewAcceptOfferCommand(offerID, riderID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("offer acceptance failed: %w", err)
//	}
type AcceptOfferCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance operations.
func NewAcceptOfferCommandHandler(uowFactory UoWFactory, cache ports.Cache, logger *slog.Logger) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the offer acceptance command.
// The conditional status write guarantees that of several riders racing for
// the same pending offer exactly one acceptance is persisted.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionOffer(ctx, h.uowFactory, h.cache, h.logger, cmd.OfferID(), cmd.RiderID(),
		func(o *offer.Offer, role kernel.Role, now time.Time) error {
			return o.Accept(cmd.RiderID(), role, now)
		},
		func(ctx context.Context, accountRepo ports.AccountRepository, _ *offer.Offer) error {
			return accountRepo.RegisterAcceptedDelivery(ctx, cmd.RiderID())
		},
	)
}
