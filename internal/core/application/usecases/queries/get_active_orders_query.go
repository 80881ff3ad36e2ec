package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves every order that has not yet reached a
// terminal status, newest first. Feeds the kitchen board on the admin
// dashboard, so only admins may run it.
type GetActiveOrdersQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to list active orders on behalf
// of an actor.
func NewGetActiveOrdersQuery(actorID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// ActorID returns the identity requesting the list.
func (q GetActiveOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetActiveOrdersQueryResponse is one row on the kitchen board.
type GetActiveOrdersQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	Status                string
	StatusLabel           string
	StatusColor           string
	ProgressPercentage    int
	Total                 string
	DeliveryAddress       string
	ItemCount             int
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
}
