package queries_test

import (
	"testing"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery_Valid(t *testing.T) {
	actorID := kernel.NewUUID()

	query, err := queries.NewGetActiveOrdersQuery(actorID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.Equal(t, actorID, query.ActorID())
}

func TestNewGetActiveOrdersQuery_InvalidActorID(t *testing.T) {
	_, err := queries.NewGetActiveOrdersQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetActiveOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
