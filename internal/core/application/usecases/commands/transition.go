package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
)

// applyFunc performs the aggregate-level transition. The actor's role is
// resolved from the accounts store before it is called.
type applyFunc func(o *offer.Offer, role kernel.Role, now time.Time) error

// effectFunc applies the account statistic updates that belong to the
// transition, inside the same transaction. May be nil.
type effectFunc func(ctx context.Context, accountRepo ports.AccountRepository, o *offer.Offer) error

// transitionOffer is the single execution path for offer status transitions.
//
// Within one transaction it loads the offer and the acting account, applies the
// aggregate transition, persists it conditionally on the previously observed
// status, applies the account statistic effects, and appends the outbox record.
// If a concurrent request transitioned the offer first, the conditional write
// reports a conflict and everything rolls back.
//
// After a successful commit the cached offer read model and the profiles of
// the accounts whose statistics moved with it are invalidated. Invalidation
// failures are logged and swallowed: the cache entries expire by TTL anyway,
// and the transition itself must not fail on cache trouble.
func transitionOffer(
	ctx context.Context,
	uowFactory UoWFactory,
	cache ports.Cache,
	logger *slog.Logger,
	offerID kernel.UUID,
	actorID kernel.UUID,
	apply applyFunc,
	effect effectFunc,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offerRepo := uow.OfferRepository()
	accountRepo := uow.AccountRepository()

	aggregate, err := offerRepo.Get(ctx, offerID)
	if err != nil {
		return err
	}

	actor, err := accountRepo.Get(ctx, actorID)
	if err != nil {
		return err
	}

	from := aggregate.Status()
	now := time.Now().UTC()

	if err = apply(aggregate, actor.Role(), now); err != nil {
		return err
	}

	if err = offerRepo.UpdateTransitioned(ctx, aggregate, from); err != nil {
		return err
	}

	if effect != nil {
		if err = effect(ctx, accountRepo, aggregate); err != nil {
			return err
		}
	}

	record, err := notification.NewNotification(aggregate, from, actorID, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	keys := []string{
		ports.OfferCacheKey(offerID),
		ports.AccountCacheKey(aggregate.Business()),
	}
	if rider := aggregate.Rider(); rider != nil {
		keys = append(keys, ports.AccountCacheKey(*rider))
	}

	if err = cache.Delete(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "failed to invalidate caches after transition",
			slog.String("offer_id", offerID.String()),
			slog.Any("error", err))
	}

	return nil
}
