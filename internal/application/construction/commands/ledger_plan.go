package commands

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/manoria-go/internal/domain/resource"
)

// ledgerPlan collects the snapshots an enqueue will append, so that later
// projections in the same enqueue build on earlier planned ones (a building
// that costs wood and produces wood is charged before its rate changes).
type ledgerPlan struct {
	ledger    *resource.Ledger
	subject   resource.Subject
	snapshots []*resource.Snapshot
	latest    map[resource.Kind]*resource.Snapshot
}

func newLedgerPlan(ledger *resource.Ledger, subject resource.Subject) *ledgerPlan {
	return &ledgerPlan{
		ledger:  ledger,
		subject: subject,
		latest:  make(map[resource.Kind]*resource.Snapshot),
	}
}

// project extrapolates kind to t from the newest planned snapshot, falling
// back to the stored ledger
func (p *ledgerPlan) project(ctx context.Context, kind resource.Kind, t time.Time) (int, *resource.Snapshot, error) {
	if planned, ok := p.latest[kind]; ok && !planned.Timestamp().After(t) {
		return planned.AmountAt(t), planned, nil
	}
	projection, err := p.ledger.Project(ctx, p.subject, kind, t)
	if err != nil {
		return 0, nil, err
	}
	return projection.Amount, projection.Basis, nil
}

// charge plans a spend of amount at t, failing if the projected stock is short
func (p *ledgerPlan) charge(ctx context.Context, kind resource.Kind, amount int, t time.Time) error {
	available, basis, err := p.project(ctx, kind, t)
	if err != nil {
		return err
	}
	if available < amount {
		return &resource.InsufficientResourcesError{Kind: kind, Required: amount, Available: available}
	}

	next, err := basis.Successor(available-amount, t, basis.RateAdjustment(), basis.Limit())
	if err != nil {
		return err
	}
	p.add(next)
	return nil
}

// boostRate plans a snapshot at t that carries the projected amount forward and
// raises the rate adjustment by delta. The new snapshot is uncapped.
func (p *ledgerPlan) boostRate(ctx context.Context, kind resource.Kind, delta int, t time.Time) error {
	amount, basis, err := p.project(ctx, kind, t)
	if err != nil {
		return err
	}

	adjustment := basis.RateAdjustment().Add(decimal.NewFromInt(int64(delta)))
	next, err := basis.Successor(amount, t, adjustment, 0)
	if err != nil {
		return err
	}
	p.add(next)
	return nil
}

func (p *ledgerPlan) add(s *resource.Snapshot) {
	p.snapshots = append(p.snapshots, s)
	p.latest[s.Kind()] = s
}
