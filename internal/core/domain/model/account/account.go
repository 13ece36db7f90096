package account

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
	// ErrNameIsRequired is returned when attempting to create an account without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create an account without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrVehicleIsRequired is returned when creating a rider account without a vehicle.
	ErrVehicleIsRequired = errs.NewValueIsRequiredError("vehicle")
	// ErrCompanyIsRequired is returned when creating a business account without a company name.
	ErrCompanyIsRequired = errs.NewValueIsRequiredError("company")
)

// Account represents a marketplace participant. The role tag discriminates the
// variant: instead of one sparsely-populated schema, each role has a fixed
// field set, and the role-specific accessors are guarded so a business account
// can never expose rider statistics and vice versa.
//
//   - business accounts carry a company name, posted/completed offer counters
//     and the rating riders gave them
//   - rider accounts carry a vehicle description, delivery counters, accumulated
//     earnings and the rating businesses gave them
//   - admin accounts carry identity only
//
// The delivery and rating counters are mirrored here for reads; under
// concurrent completions they are advanced with atomic store-level increments
// (see ports.AccountRepository), not by loading and saving this aggregate.
type Account struct {
	id    kernel.UUID
	role  kernel.Role
	name  string
	email string
	phone string

	rider    *RiderStats
	business *BusinessStats

	guard guard.ConstructorGuard
}

// RiderStats is the rider variant's fixed field set.
type RiderStats struct {
	Vehicle          string
	ActiveDeliveries int
	TotalDeliveries  int
	TotalEarnings    kernel.Money
	Rating           RatingAggregate
}

// BusinessStats is the business variant's fixed field set.
type BusinessStats struct {
	Company         string
	PostedOffers    int
	CompletedOffers int
	Rating          RatingAggregate
}

// NewAccount creates an Account of the given role.
// Vehicle is required for riders and ignored otherwise; company is required for
// businesses and ignored otherwise. Counters start at zero.
func NewAccount(
	id kernel.UUID,
	role kernel.Role,
	name, email, phone string,
	vehicle, company string,
) (*Account, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if email == "" {
		return nil, ErrEmailIsRequired
	}

	a := &Account{
		id:    id,
		role:  role,
		name:  name,
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}

	switch role {
	case kernel.RoleRider:
		if vehicle == "" {
			return nil, ErrVehicleIsRequired
		}
		a.rider = &RiderStats{Vehicle: vehicle}
	case kernel.RoleBusiness:
		if company == "" {
			return nil, ErrCompanyIsRequired
		}
		a.business = &BusinessStats{Company: company}
	case kernel.RoleAdmin:
		// identity only
	}

	return a, nil
}

// RestoreAccount reconstructs an Account from persistence, including its
// role-specific statistics. The repository is the only intended caller.
func RestoreAccount(
	id kernel.UUID,
	role kernel.Role,
	name, email, phone string,
	rider *RiderStats,
	business *BusinessStats,
) (*Account, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	if role == kernel.RoleRider && rider == nil {
		return nil, errs.NewValueIsRequiredError("riderStats")
	}
	if role == kernel.RoleBusiness && business == nil {
		return nil, errs.NewValueIsRequiredError("businessStats")
	}
	if role != kernel.RoleRider {
		rider = nil
	}
	if role != kernel.RoleBusiness {
		business = nil
	}

	return &Account{
		id:       id,
		role:     role,
		name:     name,
		email:    email,
		phone:    phone,
		rider:    rider,
		business: business,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Account instance was properly constructed.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Role returns the account's role tag.
func (a *Account) Role() kernel.Role {
	return a.role
}

// Name returns the account holder's name.
func (a *Account) Name() string {
	return a.name
}

// Email returns the account's email address.
func (a *Account) Email() string {
	return a.email
}

// Phone returns the account's phone number, if any.
func (a *Account) Phone() string {
	return a.phone
}

// IsRider reports whether the account is a rider.
func (a *Account) IsRider() bool {
	return a.role == kernel.RoleRider
}

// IsBusiness reports whether the account is a business.
func (a *Account) IsBusiness() bool {
	return a.role == kernel.RoleBusiness
}

// IsAdmin reports whether the account is an admin.
func (a *Account) IsAdmin() bool {
	return a.role == kernel.RoleAdmin
}

// RiderStats returns the rider variant's statistics.
// Returns an error for non-rider accounts.
func (a *Account) RiderStats() (RiderStats, error) {
	if a.rider == nil {
		return RiderStats{}, errs.NewValueIsInvalidErrorWithCause("role",
			errors.New("account has no rider statistics"))
	}
	return *a.rider, nil
}

// BusinessStats returns the business variant's statistics.
// Returns an error for non-business accounts.
func (a *Account) BusinessStats() (BusinessStats, error) {
	if a.business == nil {
		return BusinessStats{}, errs.NewValueIsInvalidErrorWithCause("role",
			errors.New("account has no business statistics"))
	}
	return *a.business, nil
}
