package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GetNearbyOffersQueryHandler retrieves pending offers around a center point.
//
// The database prefilters candidates with a latitude/longitude bounding box
// derived from the radius, which an index on the pickup coordinates can serve.
// The box overshoots at the corners, so the handler computes the exact
// great-circle distance for each candidate and drops the ones outside the
// radius before sorting.
//
// Results are cached under a key derived from the full filter set. The cache
// is never invalidated by commands; the short TTL bounds how long a claimed
// offer can linger in a cached result page.
type GetNearbyOffersQueryHandler struct {
	db     *gorm.DB
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetNearbyOffersQueryHandler creates a handler for nearby offer queries.
func NewGetNearbyOffersQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration, logger *slog.Logger) GetNearbyOffersQueryHandler {
	return GetNearbyOffersQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// nearbyCacheKey folds every query parameter into the key, so two searches
// share a cache entry only when they would produce the same result set.
func nearbyCacheKey(query GetNearbyOffersQuery) string {
	h := fnv.New64a()

	fragile := "nil"
	if query.Fragile() != nil {
		fragile = fmt.Sprintf("%t", *query.Fragile())
	}

	fmt.Fprintf(h, "%.6f:%.6f:%.3f:%s:%.2f:%.3f:%s",
		query.Center().Lat(), query.Center().Lng(),
		query.RadiusKm(), query.SortBy(),
		query.MinPrice(), query.MaxWeightKg(), fragile)

	return fmt.Sprintf("offers:nearby:%x", h.Sum64())
}

// Handle executes the nearby offers query.
// Only pending offers are returned; claimed and finished offers are not
// discoverable.
func (h GetNearbyOffersQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyOffersQuery,
) ([]NearbyOfferResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := nearbyCacheKey(query)

	cached, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "nearby cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
	} else if ok {
		var offers []NearbyOfferResponse
		if err = json.Unmarshal([]byte(cached), &offers); err == nil {
			return offers, nil
		}
		h.logger.WarnContext(ctx, "dropping undecodable nearby cache entry",
			slog.String("key", key),
			slog.Any("error", err))
	}

	offers, err := h.load(ctx, query)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(offers); marshalErr == nil {
		if err = h.cache.Set(ctx, key, string(payload), h.ttl); err != nil {
			h.logger.WarnContext(ctx, "nearby cache write failed",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return offers, nil
}

func (h GetNearbyOffersQueryHandler) load(
	ctx context.Context,
	query GetNearbyOffersQuery,
) ([]NearbyOfferResponse, error) {
	minLat, maxLat, minLng, maxLng := query.Center().BoundingBox(query.RadiusKm())

	sql := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE status = ?
		  AND pickup_lat BETWEEN ? AND ?
		  AND pickup_lng BETWEEN ? AND ?`
	args := []any{offer.Pending.String(), minLat, maxLat, minLng, maxLng}

	if query.MinPrice() > 0 {
		sql += `
		  AND price_base + price_distance + price_urgency >= ?`
		args = append(args, query.MinPrice())
	}
	if query.MaxWeightKg() > 0 {
		sql += `
		  AND weight_kg <= ?`
		args = append(args, query.MaxWeightKg())
	}
	if query.Fragile() != nil {
		sql += `
		  AND fragile = ?`
		args = append(args, *query.Fragile())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]NearbyOfferResponse, 0)

	for rows.Next() {
		resp, scanErr := scanOfferRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		pickupPoint, pointErr := kernel.NewGeoPoint(resp.Pickup.Lat, resp.Pickup.Lng)
		if pointErr != nil {
			return nil, pointErr
		}

		distance := query.Center().DistanceKmTo(pickupPoint)
		if distance > query.RadiusKm() {
			continue
		}

		offers = append(offers, NearbyOfferResponse{
			OfferResponse: resp,
			DistanceKm:    distance,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	switch query.SortBy() {
	case NearbySortPrice:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Pricing.Total > offers[j].Pricing.Total
		})
	case NearbySortCreated:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].CreatedAt.After(offers[j].CreatedAt)
		})
	default:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].DistanceKm < offers[j].DistanceKm
		})
	}

	return offers, nil
}
