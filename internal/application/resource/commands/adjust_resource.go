package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andrescamacho/manoria-go/internal/adapters/metrics"
	"github.com/andrescamacho/manoria-go/internal/application/common"
	"github.com/andrescamacho/manoria-go/internal/application/logging"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	"github.com/andrescamacho/manoria-go/internal/application/resource/dtos"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
)

// AdjustResourceCommand adds Delta units to a ledger, or spends them when negative
type AdjustResourceCommand struct {
	SubjectType  string `validate:"required"`
	SubjectID    string `validate:"required"`
	ResourceKind string `validate:"required"`
	Delta        int    `validate:"required"`
}

// AdjustResourceResponse carries the snapshot that recorded the change
type AdjustResourceResponse struct {
	Snapshot dtos.SnapshotDTO
}

// AdjustResourceHandler handles the AdjustResource command
type AdjustResourceHandler struct {
	transactor common.Transactor
	catalog    *catalog.Catalog
	locks      *common.KeyedLocker
	clock      shared.Clock
}

// NewAdjustResourceHandler creates a new AdjustResourceHandler
func NewAdjustResourceHandler(
	transactor common.Transactor,
	cat *catalog.Catalog,
	locks *common.KeyedLocker,
	clock shared.Clock,
) *AdjustResourceHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if locks == nil {
		locks = common.NewKeyedLocker()
	}
	return &AdjustResourceHandler{
		transactor: transactor,
		catalog:    cat,
		locks:      locks,
		clock:      clock,
	}
}

// Handle executes the AdjustResource command
func (h *AdjustResourceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdjustResourceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdjustResourceCommand")
	}
	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	subject, kind, err := common.ParseLedgerRef(h.catalog, cmd.SubjectType, cmd.SubjectID, cmd.ResourceKind)
	if err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(lockKey(subject))
	defer unlock()
	ctx = context.WithoutCancel(ctx)

	var snapshot *resource.Snapshot
	err = h.transactor.WithinTransaction(ctx, func(ctx context.Context, stores common.Stores) error {
		var txErr error
		snapshot, txErr = resource.NewLedger(stores.Snapshots).Adjust(ctx, subject, kind, cmd.Delta, h.clock.Now())
		return txErr
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordResourceAdjusted(subject.Type().String(), kind.String(), cmd.Delta)
	logging.LoggerFromContext(ctx).InfoContext(ctx, "resource adjusted",
		"subject", subject.String(),
		"resource_kind", kind.String(),
		"delta", cmd.Delta,
		"count", snapshot.Count(),
		"effective_at", snapshot.Timestamp(),
	)

	return &AdjustResourceResponse{Snapshot: dtos.SnapshotToDTO(snapshot)}, nil
}

// lockKey shares the scheduler's lock for settlement ledgers
func lockKey(subject resource.Subject) string {
	if subject.Type() == resource.SubjectSettlement {
		if id, err := strconv.Atoi(subject.ID()); err == nil {
			if sid, err := shared.NewSettlementID(id); err == nil {
				return common.SettlementLockKey(sid)
			}
		}
	}
	return "ledger:" + subject.String()
}
