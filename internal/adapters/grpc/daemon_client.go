package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// DaemonClient calls the settlement service of a running daemon
type DaemonClient struct {
	conn *grpc.ClientConn
}

// NewDaemonClient connects to the daemon's unix socket.
// socketPath is a filesystem path such as "/tmp/manoria-daemon.sock".
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return NewDaemonClientWithConn(conn), nil
}

// NewDaemonClientWithConn wraps an established connection
func NewDaemonClientWithConn(conn *grpc.ClientConn) *DaemonClient {
	return &DaemonClient{conn: conn}
}

// Close closes the gRPC connection
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *DaemonClient) invoke(ctx context.Context, method string, req any, reply any) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return err
	}
	return fromStruct(out, reply)
}

func (c *DaemonClient) CurrentAmount(ctx context.Context, req CurrentAmountRequest) (*CurrentAmountReply, error) {
	var reply CurrentAmountReply
	if err := c.invoke(ctx, "CurrentAmount", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) SnapshotHistory(ctx context.Context, req SnapshotHistoryRequest) (*SnapshotHistoryReply, error) {
	var reply SnapshotHistoryReply
	if err := c.invoke(ctx, "SnapshotHistory", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) SettlementResources(ctx context.Context, req SettlementResourcesRequest) (*SettlementResourcesReply, error) {
	var reply SettlementResourcesReply
	if err := c.invoke(ctx, "SettlementResources", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) EnqueueConstruction(ctx context.Context, req EnqueueConstructionRequest) (*EnqueueConstructionReply, error) {
	var reply EnqueueConstructionReply
	if err := c.invoke(ctx, "EnqueueConstruction", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) QueueStatus(ctx context.Context, req QueueStatusRequest) (*QueueStatusReply, error) {
	var reply QueueStatusReply
	if err := c.invoke(ctx, "QueueStatus", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) AdjustResource(ctx context.Context, req AdjustResourceRequest) (*AdjustResourceReply, error) {
	var reply AdjustResourceReply
	if err := c.invoke(ctx, "AdjustResource", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*PlayerReply, error) {
	var reply PlayerReply
	if err := c.invoke(ctx, "CreatePlayer", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) FoundSettlement(ctx context.Context, req FoundSettlementRequest) (*SettlementReply, error) {
	var reply SettlementReply
	if err := c.invoke(ctx, "FoundSettlement", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) GetSettlement(ctx context.Context, req GetSettlementRequest) (*SettlementReply, error) {
	var reply SettlementReply
	if err := c.invoke(ctx, "GetSettlement", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *DaemonClient) ListSettlements(ctx context.Context, req ListSettlementsRequest) (*ListSettlementsReply, error) {
	var reply ListSettlementsReply
	if err := c.invoke(ctx, "ListSettlements", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
