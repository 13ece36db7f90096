package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAccountQueryIsNotConstructed = errors.New(
	"GetAccountQuery must be created via NewGetAccountQuery constructor",
)

// GetAccountQuery retrieves an account profile with its role-specific
// statistics.
type GetAccountQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAccountQuery creates a query for one account by its identifier.
func NewGetAccountQuery(accountID kernel.UUID) (GetAccountQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetAccountQuery{}, err
	}

	return GetAccountQuery{
		accountID: accountID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

// AccountID returns the identifier of the requested account.
func (q GetAccountQuery) AccountID() kernel.UUID {
	return q.accountID
}

// RiderStatsResponse is the read model of a rider's statistics.
type RiderStatsResponse struct {
	Vehicle          string  `json:"vehicle"`
	ActiveDeliveries int     `json:"active_deliveries"`
	TotalDeliveries  int     `json:"total_deliveries"`
	TotalEarnings    float64 `json:"total_earnings"`
	RatingAverage    float64 `json:"rating_average"`
	RatingCount      int     `json:"rating_count"`
}

// BusinessStatsResponse is the read model of a business's statistics.
type BusinessStatsResponse struct {
	Company         string  `json:"company"`
	PostedOffers    int     `json:"posted_offers"`
	CompletedOffers int     `json:"completed_offers"`
	RatingAverage   float64 `json:"rating_average"`
	RatingCount     int     `json:"rating_count"`
}

// AccountResponse is the read model of an account profile. Exactly one of
// Rider and Business is set, matching the account's role; both are nil for
// admins.
type AccountResponse struct {
	ID        string                 `json:"id"`
	Role      string                 `json:"role"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Rider     *RiderStatsResponse    `json:"rider,omitempty"`
	Business  *BusinessStatsResponse `json:"business,omitempty"`
}
