package commands

import (
	"errors"
	"time"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
		"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
	)
)

// ExpirePendingOrdersCommand cancels orders that sat in Pending status past
// the payment window. Run periodically by the job scheduler.
//
// Example:
//
//	cmd, _ := NewExpirePendingOrdersCommand(15 * time.Minute)
//	handler := NewExpirePendingOrdersCommandHandler(uowFactory, locks, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("expiry sweep failed: %v", err)
//	}
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a command to expire stale pending
// orders. The TTL is the payment window measured from order creation.
func NewExpirePendingOrdersCommand(ttl time.Duration) (ExpirePendingOrdersCommand, error) {
	command := ExpirePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidError("ttl")
	}
	command.ttl = ttl

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpirePendingOrdersCommandIsNotConstructed if validation fails.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// TTL returns the payment window.
func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}
