package grpc

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	constructionDtos "github.com/andrescamacho/manoria-go/internal/application/construction/dtos"
	resourceDtos "github.com/andrescamacho/manoria-go/internal/application/resource/dtos"
	settlementDtos "github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
)

// Wire messages travel as google.protobuf.Struct. Each request and reply below
// is the JSON shape of one of those structs.

type CurrentAmountRequest struct {
	SubjectType  string     `json:"subject_type"`
	SubjectID    string     `json:"subject_id"`
	ResourceKind string     `json:"resource_kind"`
	AsOf         *time.Time `json:"as_of,omitempty"`
}

type CurrentAmountReply struct {
	SubjectType string                 `json:"subject_type"`
	SubjectID   string                 `json:"subject_id"`
	Amount      resourceDtos.AmountDTO `json:"amount"`
}

type SnapshotHistoryRequest struct {
	SubjectType  string `json:"subject_type"`
	SubjectID    string `json:"subject_id"`
	ResourceKind string `json:"resource_kind"`
}

type SnapshotHistoryReply struct {
	Snapshots []resourceDtos.SnapshotDTO `json:"snapshots"`
}

type SettlementResourcesRequest struct {
	SettlementID int        `json:"settlement_id"`
	AsOf         *time.Time `json:"as_of,omitempty"`
}

type SettlementResourcesReply struct {
	SettlementID int                      `json:"settlement_id"`
	AsOf         time.Time                `json:"as_of"`
	Amounts      []resourceDtos.AmountDTO `json:"amounts"`
	Untracked    []string                 `json:"untracked,omitempty"`
}

type EnqueueConstructionRequest struct {
	SettlementID int    `json:"settlement_id"`
	BuildingKind string `json:"building_kind"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
}

type EnqueueConstructionReply struct {
	Entry constructionDtos.EntryDTO `json:"entry"`
}

type QueueStatusRequest struct {
	SettlementID int        `json:"settlement_id"`
	AsOf         *time.Time `json:"as_of,omitempty"`
}

type QueueStatusReply struct {
	SettlementID      int                         `json:"settlement_id"`
	AsOf              time.Time                   `json:"as_of"`
	Pending           []constructionDtos.EntryDTO `json:"pending"`
	UnderConstruction *constructionDtos.EntryDTO  `json:"under_construction,omitempty"`
	Built             []constructionDtos.EntryDTO `json:"built"`
}

type AdjustResourceRequest struct {
	SubjectType  string `json:"subject_type"`
	SubjectID    string `json:"subject_id"`
	ResourceKind string `json:"resource_kind"`
	Delta        int    `json:"delta"`
}

type AdjustResourceReply struct {
	Snapshot resourceDtos.SnapshotDTO `json:"snapshot"`
}

type CreatePlayerRequest struct {
	Name string `json:"name"`
}

type PlayerReply struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type FoundSettlementRequest struct {
	PlayerID    int    `json:"player_id,omitempty"`
	PlayerName  string `json:"player_name,omitempty"`
	ContinentID int    `json:"continent_id"`
	Name        string `json:"name"`
	Kind        string `json:"kind,omitempty"`
}

type SettlementReply struct {
	Settlement settlementDtos.SettlementDTO `json:"settlement"`
	Terrain    []settlementDtos.TileDTO     `json:"terrain"`
}

type GetSettlementRequest struct {
	SettlementID int `json:"settlement_id"`
}

type ListSettlementsRequest struct {
	PlayerID   int    `json:"player_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
}

type ListSettlementsReply struct {
	Settlements []settlementDtos.SettlementDTO `json:"settlements"`
}

// toStruct encodes a wire message as a protobuf Struct
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to build struct from %T: %w", v, err)
	}
	return s, nil
}

// fromStruct decodes a protobuf Struct into a wire message
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}

	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode struct: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}
