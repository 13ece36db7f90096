package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOfferQueryHandler retrieves a single offer read model, reading through
// the TTL cache. A cache hit skips the database entirely; a miss loads the
// row, repopulates the cache and returns. Cache failures in either direction
// are logged and treated as misses so the database remains the fallback.
type GetOfferQueryHandler struct {
	db     *gorm.DB
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetOfferQueryHandler creates a handler for single offer queries.
func NewGetOfferQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration, logger *slog.Logger) GetOfferQueryHandler {
	return GetOfferQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Handle executes the query to retrieve one offer.
// Returns ObjectNotFoundError if no offer exists with the given identifier.
func (h GetOfferQueryHandler) Handle(ctx context.Context, query GetOfferQuery) (OfferResponse, error) {
	if err := query.Validate(); err != nil {
		return OfferResponse{}, err
	}

	key := ports.OfferCacheKey(query.OfferID())

	cached, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "offer cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
	} else if ok {
		var resp OfferResponse
		if err = json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		h.logger.WarnContext(ctx, "dropping undecodable offer cache entry",
			slog.String("key", key),
			slog.Any("error", err))
	}

	resp, err := h.load(ctx, query)
	if err != nil {
		return OfferResponse{}, err
	}

	if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
		if err = h.cache.Set(ctx, key, string(payload), h.ttl); err != nil {
			h.logger.WarnContext(ctx, "offer cache write failed",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return resp, nil
}

func (h GetOfferQueryHandler) load(ctx context.Context, query GetOfferQuery) (OfferResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+offerColumns+`
		FROM offers
		WHERE id = ?
	`, query.OfferID().Bytes()).Rows()
	if err != nil {
		return OfferResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OfferResponse{}, err
		}
		return OfferResponse{}, errs.NewObjectNotFoundError("offerId", query.OfferID())
	}

	resp, err := scanOfferRow(rows)
	if err != nil {
		return OfferResponse{}, err
	}

	return resp, nil
}
