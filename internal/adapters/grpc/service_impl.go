package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	constructionCmd "github.com/andrescamacho/manoria-go/internal/application/construction/commands"
	constructionQuery "github.com/andrescamacho/manoria-go/internal/application/construction/queries"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/manoria-go/internal/application/player/commands"
	resourceCmd "github.com/andrescamacho/manoria-go/internal/application/resource/commands"
	resourceQuery "github.com/andrescamacho/manoria-go/internal/application/resource/queries"
	settlementCmd "github.com/andrescamacho/manoria-go/internal/application/settlement/commands"
	settlementQuery "github.com/andrescamacho/manoria-go/internal/application/settlement/queries"
)

// settlementServiceImpl translates wire messages into mediator requests
type settlementServiceImpl struct {
	mediator mediator.Mediator
}

func newSettlementServiceImpl(m mediator.Mediator) *settlementServiceImpl {
	return &settlementServiceImpl{mediator: m}
}

// decode reads a request message; malformed input is the caller's fault
func decode(in *structpb.Struct, v any) error {
	if err := fromStruct(in, v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// send dispatches a request and checks the response type
func send[T any](ctx context.Context, m mediator.Mediator, request mediator.Request) (*T, error) {
	resp, err := m.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

func (s *settlementServiceImpl) CurrentAmount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CurrentAmountRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[resourceQuery.GetCurrentAmountResponse](ctx, s.mediator, &resourceQuery.GetCurrentAmountQuery{
		SubjectType:  req.SubjectType,
		SubjectID:    req.SubjectID,
		ResourceKind: req.ResourceKind,
		AsOf:         req.AsOf,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(CurrentAmountReply{
		SubjectType: req.SubjectType,
		SubjectID:   req.SubjectID,
		Amount:      resp.Amount,
	})
}

func (s *settlementServiceImpl) SnapshotHistory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SnapshotHistoryRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[resourceQuery.GetSnapshotHistoryResponse](ctx, s.mediator, &resourceQuery.GetSnapshotHistoryQuery{
		SubjectType:  req.SubjectType,
		SubjectID:    req.SubjectID,
		ResourceKind: req.ResourceKind,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(SnapshotHistoryReply{Snapshots: resp.Snapshots})
}

func (s *settlementServiceImpl) SettlementResources(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SettlementResourcesRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[resourceQuery.GetSettlementResourcesResponse](ctx, s.mediator, &resourceQuery.GetSettlementResourcesQuery{
		SettlementID: req.SettlementID,
		AsOf:         req.AsOf,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(SettlementResourcesReply{
		SettlementID: resp.SettlementID,
		AsOf:         resp.AsOf,
		Amounts:      resp.Amounts,
		Untracked:    resp.Untracked,
	})
}

func (s *settlementServiceImpl) EnqueueConstruction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EnqueueConstructionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[constructionCmd.EnqueueConstructionResponse](ctx, s.mediator, &constructionCmd.EnqueueConstructionCommand{
		SettlementID: req.SettlementID,
		BuildingKind: req.BuildingKind,
		X:            req.X,
		Y:            req.Y,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(EnqueueConstructionReply{Entry: resp.Entry})
}

func (s *settlementServiceImpl) QueueStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req QueueStatusRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[constructionQuery.GetQueueStatusResponse](ctx, s.mediator, &constructionQuery.GetQueueStatusQuery{
		SettlementID: req.SettlementID,
		AsOf:         req.AsOf,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(QueueStatusReply{
		SettlementID:      resp.SettlementID,
		AsOf:              resp.AsOf,
		Pending:           resp.Pending,
		UnderConstruction: resp.UnderConstruction,
		Built:             resp.Built,
	})
}

func (s *settlementServiceImpl) AdjustResource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AdjustResourceRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[resourceCmd.AdjustResourceResponse](ctx, s.mediator, &resourceCmd.AdjustResourceCommand{
		SubjectType:  req.SubjectType,
		SubjectID:    req.SubjectID,
		ResourceKind: req.ResourceKind,
		Delta:        req.Delta,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(AdjustResourceReply{Snapshot: resp.Snapshot})
}

func (s *settlementServiceImpl) CreatePlayer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CreatePlayerRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[playerCmd.CreatePlayerResponse](ctx, s.mediator, &playerCmd.CreatePlayerCommand{Name: req.Name})
	if err != nil {
		return nil, err
	}

	return toStruct(PlayerReply{
		ID:        resp.Player.ID.Value(),
		Name:      resp.Player.Name,
		CreatedAt: resp.Player.CreatedAt,
	})
}

func (s *settlementServiceImpl) FoundSettlement(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req FoundSettlementRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[settlementCmd.FoundSettlementResponse](ctx, s.mediator, &settlementCmd.FoundSettlementCommand{
		PlayerID:    req.PlayerID,
		PlayerName:  req.PlayerName,
		ContinentID: req.ContinentID,
		Name:        req.Name,
		Kind:        req.Kind,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(SettlementReply{Settlement: resp.Settlement, Terrain: resp.Terrain})
}

func (s *settlementServiceImpl) GetSettlement(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req GetSettlementRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[settlementQuery.GetSettlementResponse](ctx, s.mediator, &settlementQuery.GetSettlementQuery{
		SettlementID: req.SettlementID,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(SettlementReply{Settlement: resp.Settlement, Terrain: resp.Terrain})
}

func (s *settlementServiceImpl) ListSettlements(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ListSettlementsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	resp, err := send[settlementQuery.ListSettlementsResponse](ctx, s.mediator, &settlementQuery.ListSettlementsQuery{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		return nil, err
	}

	return toStruct(ListSettlementsReply{Settlements: resp.Settlements})
}
