package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role identifies the kind of account acting on the marketplace.
// It discriminates the account variants and drives the transition guard's
// actor checks: riders move offers through the delivery leg, businesses own
// offers and close them out, admins may act in place of the owning business.
type Role string

const (
	// RoleBusiness is an account that posts delivery offers.
	RoleBusiness Role = "business"
	// RoleRider is an account that accepts and fulfills delivery offers.
	RoleRider Role = "rider"
	// RoleAdmin is an operator account that may complete or cancel any offer.
	RoleAdmin Role = "admin"
)

// RoleFromString parses a role from its wire representation.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleBusiness, RoleRider, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}
