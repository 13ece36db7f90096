package commands

import (
	"context"

	"marketplace/internal/core/domain/model/account"
)

// CreateAccountCommandHandler handles the business logic for account registration.
type CreateAccountCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewCreateAccountCommandHandler creates a handler for account registration.
// Requires an AccountUoWFactory for transactional persistence.
func NewCreateAccountCommandHandler(uowFactory AccountUoWFactory) CreateAccountCommandHandler {
	return CreateAccountCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the account registration command.
// Creates the role-specific aggregate with zeroed statistics and persists it.
func (h *CreateAccountCommandHandler) Handle(ctx context.Context, cmd CreateAccountCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := account.NewAccount(
		cmd.AccountID(), cmd.Role(),
		cmd.Name(), cmd.Email(), cmd.Phone(),
		cmd.Vehicle(), cmd.Company(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AccountRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
