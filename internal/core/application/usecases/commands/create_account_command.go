package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateAccountCommandIsNotConstructed = errors.New(
		"CreateAccountCommand must be created via NewCreateAccountCommand constructor",
	)
	ErrNameIsRequired  = errors.New("name is required")
	ErrEmailIsRequired = errors.New("email is required")
)

// CreateAccountCommand represents a request to register a marketplace
// participant. The role determines which of the optional fields apply:
// vehicle for riders, company for businesses.
type CreateAccountCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	role      kernel.Role
	name      string
	email     string
	phone     string
	vehicle   string
	company   string

	guard guard.ConstructorGuard
}

// NewCreateAccountCommand creates a command to register a new account.
// Validates that the account ID and role are valid and that name and email
// are present. Role-specific requirements are enforced by the aggregate.
func NewCreateAccountCommand(
	accountID kernel.UUID,
	role kernel.Role,
	name, email, phone string,
	vehicle, company string,
) (CreateAccountCommand, error) {
	accountCommand := CreateAccountCommand{
		phone:   phone,
		vehicle: vehicle,
		company: company,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		accountCommand.setAccountID(accountID),
		accountCommand.setRole(role),
		accountCommand.setName(name),
		accountCommand.setEmail(email),
	); err != nil {
		return CreateAccountCommand{}, err
	}

	return accountCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAccountCommand) Validate() error {
	return c.guard.Validate(ErrCreateAccountCommandIsNotConstructed)
}

// AccountID returns the unique identifier for the new account.
func (c CreateAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Role returns the requested account role.
func (c CreateAccountCommand) Role() kernel.Role {
	return c.role
}

// Name returns the account holder's name.
func (c CreateAccountCommand) Name() string {
	return c.name
}

// Email returns the account's email address.
func (c CreateAccountCommand) Email() string {
	return c.email
}

// Phone returns the account's phone number, if any.
func (c CreateAccountCommand) Phone() string {
	return c.phone
}

// Vehicle returns the rider's vehicle description, if any.
func (c CreateAccountCommand) Vehicle() string {
	return c.vehicle
}

// Company returns the business's company name, if any.
func (c CreateAccountCommand) Company() string {
	return c.company
}

func (c *CreateAccountCommand) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}

	c.accountID = accountID
	return nil
}

func (c *CreateAccountCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *CreateAccountCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateAccountCommand) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = email
	return nil
}
