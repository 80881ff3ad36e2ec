package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// Role classifies an identity for authorization decisions.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// User is the read-only identity projection used for event payloads and
// authorization. User management itself lives outside this system.
type User struct {
	ID    kernel.UUID
	Name  string
	Phone string
	Role  Role
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserDirectory resolves identities by id. Lookups are read-only per request.
type UserDirectory interface {
	// Get retrieves a user by id.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (User, error)
}
