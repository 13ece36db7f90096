package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAccountQueryHandler retrieves one account profile, reading through the
// TTL cache. Commands that change an account's statistics delete the cached
// profile, so a fresh read after any mutation repopulates it.
type GetAccountQueryHandler struct {
	db     *gorm.DB
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetAccountQueryHandler creates a handler for account profile queries.
func NewGetAccountQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration, logger *slog.Logger) GetAccountQueryHandler {
	return GetAccountQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Handle executes the query to retrieve one account.
// Returns ObjectNotFoundError if no account exists with the given identifier.
func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (AccountResponse, error) {
	if err := query.Validate(); err != nil {
		return AccountResponse{}, err
	}

	key := ports.AccountCacheKey(query.AccountID())

	cached, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "account cache read failed",
			slog.String("key", key),
			slog.Any("error", err))
	} else if ok {
		var resp AccountResponse
		if err = json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		h.logger.WarnContext(ctx, "dropping undecodable account cache entry",
			slog.String("key", key),
			slog.Any("error", err))
	}

	resp, err := h.load(ctx, query)
	if err != nil {
		return AccountResponse{}, err
	}

	if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
		if err = h.cache.Set(ctx, key, string(payload), h.ttl); err != nil {
			h.logger.WarnContext(ctx, "account cache write failed",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return resp, nil
}

func (h GetAccountQueryHandler) load(ctx context.Context, query GetAccountQuery) (AccountResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, role, name, email, phone, created_at,
			vehicle, active_deliveries, total_deliveries, total_earnings,
			company, posted_offers, completed_offers,
			rating_average, rating_count
		FROM accounts
		WHERE id = ?
	`, query.AccountID().Bytes()).Rows()
	if err != nil {
		return AccountResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return AccountResponse{}, err
		}
		return AccountResponse{}, errs.NewObjectNotFoundError("accountId", query.AccountID())
	}

	var (
		resp AccountResponse
		id   uuid.UUID

		phone   sql.NullString
		vehicle sql.NullString
		company sql.NullString

		activeDeliveries, totalDeliveries sql.NullInt64
		totalEarnings                     sql.NullFloat64
		postedOffers, completedOffers     sql.NullInt64
		ratingAverage                     sql.NullFloat64
		ratingCount                       sql.NullInt64
	)

	err = rows.Scan(
		&id, &resp.Role, &resp.Name, &resp.Email, &phone, &resp.CreatedAt,
		&vehicle, &activeDeliveries, &totalDeliveries, &totalEarnings,
		&company, &postedOffers, &completedOffers,
		&ratingAverage, &ratingCount,
	)
	if err != nil {
		return AccountResponse{}, err
	}

	resp.ID = id.String()
	resp.Phone = phone.String

	switch kernel.Role(resp.Role) {
	case kernel.RoleRider:
		resp.Rider = &RiderStatsResponse{
			Vehicle:          vehicle.String,
			ActiveDeliveries: int(activeDeliveries.Int64),
			TotalDeliveries:  int(totalDeliveries.Int64),
			TotalEarnings:    totalEarnings.Float64,
			RatingAverage:    ratingAverage.Float64,
			RatingCount:      int(ratingCount.Int64),
		}
	case kernel.RoleBusiness:
		resp.Business = &BusinessStatsResponse{
			Company:         company.String,
			PostedOffers:    int(postedOffers.Int64),
			CompletedOffers: int(completedOffers.Int64),
			RatingAverage:   ratingAverage.Float64,
			RatingCount:     int(ratingCount.Int64),
		}
	case kernel.RoleAdmin:
	}

	return resp, nil
}
