// Package accountrepo provides data transfer objects and mapping functions for account persistence.
// This package implements the repository pattern for the account domain aggregate, handling
// the conversion between domain entities and database representations.
package accountrepo

import (
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account aggregates.
// All roles share one table discriminated by the role column. The role-specific
// columns are nullable; counters live in non-null columns so the statistics
// mutators can issue plain atomic increments.
type AccountDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(16);index"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	Phone     string
	CreatedAt time.Time

	Vehicle          *string
	ActiveDeliveries int
	TotalDeliveries  int
	TotalEarnings    float64

	Company         *string
	PostedOffers    int
	CompletedOffers int

	RatingAverage float64
	RatingCount   int
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	dto := AccountDTO{
		ID:    aggregate.ID().Bytes(),
		Role:  aggregate.Role().String(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
		Phone: aggregate.Phone(),
	}

	if stats, err := aggregate.RiderStats(); err == nil {
		vehicle := stats.Vehicle
		dto.Vehicle = &vehicle
		dto.ActiveDeliveries = stats.ActiveDeliveries
		dto.TotalDeliveries = stats.TotalDeliveries
		dto.TotalEarnings = stats.TotalEarnings.Amount()
		dto.RatingAverage = stats.Rating.Average
		dto.RatingCount = stats.Rating.Count
	}

	if stats, err := aggregate.BusinessStats(); err == nil {
		company := stats.Company
		dto.Company = &company
		dto.PostedOffers = stats.PostedOffers
		dto.CompletedOffers = stats.CompletedOffers
		dto.RatingAverage = stats.Rating.Average
		dto.RatingCount = stats.Rating.Count
	}

	return dto
}

// toDomain converts a database DTO to an account domain aggregate.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role := kernel.Role(dto.Role)

	var rider *account.RiderStats
	if role == kernel.RoleRider {
		earnings, moneyErr := kernel.NewMoney(dto.TotalEarnings)
		if moneyErr != nil {
			return nil, moneyErr
		}

		var vehicle string
		if dto.Vehicle != nil {
			vehicle = *dto.Vehicle
		}

		rider = &account.RiderStats{
			Vehicle:          vehicle,
			ActiveDeliveries: dto.ActiveDeliveries,
			TotalDeliveries:  dto.TotalDeliveries,
			TotalEarnings:    earnings,
			Rating:           account.RatingAggregate{Average: dto.RatingAverage, Count: dto.RatingCount},
		}
	}

	var business *account.BusinessStats
	if role == kernel.RoleBusiness {
		var company string
		if dto.Company != nil {
			company = *dto.Company
		}

		business = &account.BusinessStats{
			Company:         company,
			PostedOffers:    dto.PostedOffers,
			CompletedOffers: dto.CompletedOffers,
			Rating:          account.RatingAggregate{Average: dto.RatingAverage, Count: dto.RatingCount},
		}
	}

	return account.RestoreAccount(id, role, dto.Name, dto.Email, dto.Phone, rider, business)
}
