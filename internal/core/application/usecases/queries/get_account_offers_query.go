package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAccountOffersQueryIsNotConstructed = errors.New(
	"GetAccountOffersQuery must be created via NewGetAccountOffersQuery constructor",
)

// GetAccountOffersQuery retrieves the offers an account participates in:
// offers posted by a business, or offers assigned to a rider. The account's
// role decides which relation applies.
type GetAccountOffersQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAccountOffersQuery creates a query for an account's offers.
func NewGetAccountOffersQuery(accountID kernel.UUID) (GetAccountOffersQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetAccountOffersQuery{}, err
	}

	return GetAccountOffersQuery{
		accountID: accountID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountOffersQueryIsNotConstructed)
}

// AccountID returns the identifier of the account.
func (q GetAccountOffersQuery) AccountID() kernel.UUID {
	return q.accountID
}
