package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/application/construction/commands"
	"github.com/andrescamacho/manoria-go/internal/application/construction/queries"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

func TestGetQueueStatus(t *testing.T) {
	ctx := context.Background()
	e := helpers.NewEconomy(t)
	s := e.FoundSettlement(t, "Ashford", "FFF", "GGG", "GGG")
	enqueue := commands.NewEnqueueConstructionHandler(e.Transactor, e.Catalog, e.Locks, e.Clock, 2*time.Minute)
	for x := 1; x <= 3; x++ {
		_, err := enqueue.Handle(ctx, &commands.EnqueueConstructionCommand{
			SettlementID: s.ID().Value(), BuildingKind: "lumber_camp", X: x, Y: 1,
		})
		require.NoError(t, err)
	}

	h := queries.NewGetQueueStatusHandler(e.Stores.Settlements, e.Stores.Entries, e.Clock)
	asOf := helpers.T0.Add(3 * time.Minute)
	resp, err := h.Handle(ctx, &queries.GetQueueStatusQuery{SettlementID: s.ID().Value(), AsOf: &asOf})
	require.NoError(t, err)
	status := resp.(*queries.GetQueueStatusResponse)

	require.Len(t, status.Built, 1)
	assert.Equal(t, 1, status.Built[0].X)
	assert.Equal(t, "built", status.Built[0].Status)

	require.NotNil(t, status.UnderConstruction)
	assert.Equal(t, 2, status.UnderConstruction.X)

	require.Len(t, status.Pending, 2)
	assert.Equal(t, "under_construction", status.Pending[0].Status)
	assert.Equal(t, "queued", status.Pending[1].Status)
	assert.Equal(t, 3, status.Pending[1].X)

	resp, err = h.Handle(ctx, &queries.GetQueueStatusQuery{SettlementID: s.ID().Value()})
	require.NoError(t, err)
	now := resp.(*queries.GetQueueStatusResponse)
	assert.True(t, now.AsOf.Equal(helpers.T0), "defaults to the clock")
	assert.Empty(t, now.Built)

	_, err = h.Handle(ctx, &queries.GetQueueStatusQuery{SettlementID: 99})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
