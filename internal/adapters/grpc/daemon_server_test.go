package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	settlementCmd "github.com/andrescamacho/manoria-go/internal/application/settlement/commands"
	"github.com/andrescamacho/manoria-go/internal/application/setup"
	"github.com/andrescamacho/manoria-go/internal/domain/construction"
	"github.com/andrescamacho/manoria-go/internal/domain/player"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/settlement"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

const buildTime = 2 * time.Minute

type harness struct {
	economy  *helpers.Economy
	mediator mediator.Mediator
	client   *DaemonClient
}

func startHarness(t *testing.T, opts ServerOptions) *harness {
	t.Helper()

	e := helpers.NewEconomy(t)
	registry := setup.NewHandlerRegistry(e.Transactor, e.Stores, e.Catalog, e.Clock, setup.Options{
		BuildDuration:  buildTime,
		SettlementGrid: 4,
		PlacementSeed:  7,
	})
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	listener := bufconn.Listen(1 << 20)
	server := NewDaemonServerWithListener(m, listener, opts)
	go func() { _ = server.Start() }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	client := NewDaemonClientWithConn(conn)
	t.Cleanup(func() { _ = client.Close() })

	return &harness{economy: e, mediator: m, client: client}
}

func TestDaemon_ConstructionRoundTrip(t *testing.T) {
	h := startHarness(t, ServerOptions{})
	ctx := context.Background()
	s := h.economy.FoundSettlement(t, "Ashford", "FFF", "GGG", "GGW")

	enqueued, err := h.client.EnqueueConstruction(ctx, EnqueueConstructionRequest{
		SettlementID: s.ID().Value(),
		BuildingKind: "farm",
		X:            1,
		Y:            2,
	})
	require.NoError(t, err)
	assert.Equal(t, "farm", enqueued.Entry.BuildingKind)
	assert.True(t, enqueued.Entry.ConstructionStart.Equal(helpers.T0))
	assert.True(t, enqueued.Entry.ConstructionEnd.Equal(helpers.T0.Add(buildTime)))

	later := helpers.T0.Add(time.Hour)
	queue, err := h.client.QueueStatus(ctx, QueueStatusRequest{SettlementID: s.ID().Value(), AsOf: &later})
	require.NoError(t, err)
	assert.Empty(t, queue.Pending)
	assert.Nil(t, queue.UnderConstruction)
	require.Len(t, queue.Built, 1)
	assert.Equal(t, "built", queue.Built[0].Status)

	amount, err := h.client.CurrentAmount(ctx, CurrentAmountRequest{
		SubjectType:  "settlement",
		SubjectID:    s.ID().String(),
		ResourceKind: "wood",
		AsOf:         &later,
	})
	require.NoError(t, err)
	assert.Equal(t, 110, amount.Amount.Amount)
	assert.Equal(t, "10", amount.Amount.Rate)

	resources, err := h.client.SettlementResources(ctx, SettlementResourcesRequest{SettlementID: s.ID().Value(), AsOf: &later})
	require.NoError(t, err)
	require.Len(t, resources.Amounts, 3)
	assert.Equal(t, "wood", resources.Amounts[0].ResourceKind)

	history, err := h.client.SnapshotHistory(ctx, SnapshotHistoryRequest{
		SubjectType:  "settlement",
		SubjectID:    s.ID().String(),
		ResourceKind: "food",
	})
	require.NoError(t, err)
	// starting snapshot plus the farm's rate boost at completion
	assert.Len(t, history.Snapshots, 2)
}

func TestDaemon_PlayerAndSettlement(t *testing.T) {
	h := startHarness(t, ServerOptions{})
	ctx := context.Background()

	resp, err := h.mediator.Send(ctx, &settlementCmd.EnsureContinentCommand{Name: "Westmarch", Width: 5, Height: 5})
	require.NoError(t, err)
	continentID := resp.(*settlementCmd.EnsureContinentResponse).Continent.ID

	p, err := h.client.CreatePlayer(ctx, CreatePlayerRequest{Name: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", p.Name)
	assert.Positive(t, p.ID)

	founded, err := h.client.FoundSettlement(ctx, FoundSettlementRequest{
		PlayerName:  "ada",
		ContinentID: continentID,
		Name:        "Greywater",
	})
	require.NoError(t, err)
	assert.Equal(t, "Greywater", founded.Settlement.Name)
	assert.Equal(t, "homestead", founded.Settlement.Kind)
	assert.Len(t, founded.Terrain, 16)

	fetched, err := h.client.GetSettlement(ctx, GetSettlementRequest{SettlementID: founded.Settlement.ID})
	require.NoError(t, err)
	assert.Equal(t, founded.Settlement, fetched.Settlement)

	listed, err := h.client.ListSettlements(ctx, ListSettlementsRequest{PlayerID: p.ID})
	require.NoError(t, err)
	require.Len(t, listed.Settlements, 1)
	assert.Equal(t, "Greywater", listed.Settlements[0].Name)

	adjusted, err := h.client.AdjustResource(ctx, AdjustResourceRequest{
		SubjectType:  "player",
		SubjectID:    fmt.Sprint(p.ID),
		ResourceKind: "wood",
		Delta:        -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, adjusted.Snapshot.Count)

	_, err = h.client.CreatePlayer(ctx, CreatePlayerRequest{Name: "ada"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestDaemon_ErrorCodes(t *testing.T) {
	h := startHarness(t, ServerOptions{})
	ctx := context.Background()
	s := h.economy.FoundSettlement(t, "Ashford", "FFF", "GGG", "GGW")

	_, err := h.client.CurrentAmount(ctx, CurrentAmountRequest{SubjectType: "settlement", SubjectID: "999", ResourceKind: "wood"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.client.CurrentAmount(ctx, CurrentAmountRequest{SubjectType: "guild", SubjectID: "1", ResourceKind: "wood"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.EnqueueConstruction(ctx, EnqueueConstructionRequest{SettlementID: s.ID().Value(), BuildingKind: "farm", X: 3, Y: 3})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err), "water is not buildable")

	_, err = h.client.EnqueueConstruction(ctx, EnqueueConstructionRequest{SettlementID: s.ID().Value(), BuildingKind: "farm", X: 2, Y: 2})
	require.NoError(t, err)
	_, err = h.client.EnqueueConstruction(ctx, EnqueueConstructionRequest{SettlementID: s.ID().Value(), BuildingKind: "house", X: 2, Y: 2})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestDaemon_RateLimit(t *testing.T) {
	h := startHarness(t, ServerOptions{RateLimit: 1, Burst: 1})
	ctx := context.Background()

	_, err := h.client.ListSettlements(ctx, ListSettlementsRequest{PlayerName: "nobody"})
	assert.NotEqual(t, codes.ResourceExhausted, status.Code(err))

	_, err = h.client.ListSettlements(ctx, ListSettlementsRequest{PlayerName: "nobody"})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", shared.NewValidationError("x", "must be positive"), codes.InvalidArgument},
		{"not found", fmt.Errorf("lookup: %w", shared.NewNotFoundError("settlement", 4)), codes.NotFound},
		{"snapshot not found", &resource.SnapshotNotFoundError{}, codes.NotFound},
		{"position occupied", construction.ErrPositionOccupied, codes.AlreadyExists},
		{"name taken", player.ErrNameTaken, codes.AlreadyExists},
		{"terrain", construction.ErrTerrainNotBuildable, codes.FailedPrecondition},
		{"settlement full", construction.ErrSettlementFull, codes.FailedPrecondition},
		{"continent full", settlement.ErrContinentFull, codes.FailedPrecondition},
		{"insufficient", &resource.InsufficientResourcesError{Kind: "wood", Required: 5}, codes.FailedPrecondition},
		{"invalid timestamp", &resource.InvalidTimestampError{}, codes.Internal},
		{"canceled", context.Canceled, codes.Canceled},
		{"unknown", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeFor(tt.err))
		})
	}
}

func TestToStatus_KeepsExistingStatus(t *testing.T) {
	original := status.Error(codes.ResourceExhausted, "slow down")
	assert.Equal(t, original, toStatus(original))
	assert.NoError(t, toStatus(nil))
}
