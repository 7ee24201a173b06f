package queries_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/manoria-go/internal/application/resource/queries"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

func TestGetCurrentAmount(t *testing.T) {
	e := helpers.NewEconomy(t)
	s := e.FoundSettlement(t, "Ashford", "F")
	h := queries.NewGetCurrentAmountHandler(e.Stores.Snapshots, e.Catalog, e.Clock)
	id := strconv.Itoa(s.ID().Value())

	e.Clock.Advance(6 * time.Minute)
	resp, err := h.Handle(context.Background(), &queries.GetCurrentAmountQuery{
		SubjectType: "settlement", SubjectID: id, ResourceKind: "wood",
	})
	require.NoError(t, err)
	amount := resp.(*queries.GetCurrentAmountResponse).Amount
	assert.Equal(t, 101, amount.Amount, "defaults to now")
	assert.Equal(t, "10", amount.Rate)
	assert.Equal(t, 0, amount.Limit)

	asOf := helpers.T0.Add(time.Hour)
	resp, err = h.Handle(context.Background(), &queries.GetCurrentAmountQuery{
		SubjectType: "settlement", SubjectID: id, ResourceKind: "wood", AsOf: &asOf,
	})
	require.NoError(t, err)
	assert.Equal(t, 110, resp.(*queries.GetCurrentAmountResponse).Amount.Amount)

	again, err := h.Handle(context.Background(), &queries.GetCurrentAmountQuery{
		SubjectType: "settlement", SubjectID: id, ResourceKind: "wood", AsOf: &asOf,
	})
	require.NoError(t, err)
	assert.Equal(t, resp, again, "reads are idempotent")
}

func TestGetCurrentAmount_Errors(t *testing.T) {
	e := helpers.NewEconomy(t)
	e.FoundSettlement(t, "Ashford", "F")
	h := queries.NewGetCurrentAmountHandler(e.Stores.Snapshots, e.Catalog, e.Clock)
	ctx := context.Background()

	before := helpers.T0.Add(-time.Second)
	_, err := h.Handle(ctx, &queries.GetCurrentAmountQuery{SubjectType: "settlement", SubjectID: "1", ResourceKind: "wood", AsOf: &before})
	assert.ErrorIs(t, err, shared.ErrNotFound, "missing history is surfaced, never zero")

	_, err = h.Handle(ctx, &queries.GetCurrentAmountQuery{SubjectType: "settlement", SubjectID: "42", ResourceKind: "wood"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var validation *shared.ValidationError
	_, err = h.Handle(ctx, &queries.GetCurrentAmountQuery{SubjectType: "ship", SubjectID: "1", ResourceKind: "wood"})
	assert.ErrorAs(t, err, &validation)
	_, err = h.Handle(ctx, &queries.GetCurrentAmountQuery{SubjectType: "settlement", SubjectID: "1", ResourceKind: "mana"})
	assert.ErrorAs(t, err, &validation)
	_, err = h.Handle(ctx, &queries.GetCurrentAmountQuery{SubjectType: "settlement", ResourceKind: "wood"})
	assert.ErrorAs(t, err, &validation)
}

func TestGetSnapshotHistory(t *testing.T) {
	ctx := context.Background()
	e := helpers.NewEconomy(t)
	s := e.FoundSettlement(t, "Ashford", "F")
	subject := resource.SettlementSubject(s.ID().Value())
	_, err := resource.NewLedger(e.Stores.Snapshots).Adjust(ctx, subject, "food", 5, helpers.T0.Add(time.Minute))
	require.NoError(t, err)

	h := queries.NewGetSnapshotHistoryHandler(e.Stores.Snapshots, e.Catalog)
	resp, err := h.Handle(ctx, &queries.GetSnapshotHistoryQuery{
		SubjectType: "settlement", SubjectID: subject.ID(), ResourceKind: "food",
	})
	require.NoError(t, err)

	history := resp.(*queries.GetSnapshotHistoryResponse).Snapshots
	require.Len(t, history, 2)
	assert.Equal(t, 40, history[0].Count)
	assert.Equal(t, 45, history[1].Count)
	assert.Equal(t, 50, history[1].Limit)
	assert.True(t, history[1].Timestamp.Equal(helpers.T0.Add(time.Minute)))
}

func TestGetSettlementResources(t *testing.T) {
	e := helpers.NewEconomy(t)
	s := e.FoundSettlement(t, "Ashford", "F")
	h := queries.NewGetSettlementResourcesHandler(e.Stores.Settlements, e.Stores.Snapshots, e.Catalog, e.Clock)

	asOf := helpers.T0.Add(2 * time.Hour)
	resp, err := h.Handle(context.Background(), &queries.GetSettlementResourcesQuery{SettlementID: s.ID().Value(), AsOf: &asOf})
	require.NoError(t, err)
	r := resp.(*queries.GetSettlementResourcesResponse)

	require.Len(t, r.Amounts, 3)
	amounts := map[string]int{}
	for _, a := range r.Amounts {
		amounts[a.ResourceKind] = a.Amount
	}
	assert.Equal(t, map[string]int{"wood": 120, "stone": 0, "food": 40}, amounts)
	assert.Equal(t, "wood", r.Amounts[0].ResourceKind, "catalog order")
	assert.Empty(t, r.Untracked)

	_, err = h.Handle(context.Background(), &queries.GetSettlementResourcesQuery{SettlementID: 77})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
