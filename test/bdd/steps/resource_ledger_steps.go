package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/manoria-go/internal/adapters/persistence"
	"github.com/andrescamacho/manoria-go/internal/domain/resource"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

type ledgerContext struct {
	ledger  *resource.Ledger
	subject resource.Subject
	kind    resource.Kind
	amount  int
	err     error
}

func (lc *ledgerContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	lc.ledger = resource.NewLedger(persistence.NewGormSnapshotRepository(helpers.SharedTestDB))
	lc.subject = resource.SettlementSubject(1)
	lc.kind = ""
	lc.amount = 0
	lc.err = nil
	return nil
}

func (lc *ledgerContext) aSnapshotTakenAt(kind string, count int, rate string, limit int, at string) error {
	timestamp, err := parseInstant(at)
	if err != nil {
		return err
	}
	naturalRate, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	lc.kind = resource.Kind(kind)
	snapshot, err := resource.NewSnapshot(lc.subject, lc.kind, count, timestamp, naturalRate, decimal.Zero, limit)
	if err != nil {
		return err
	}
	return lc.ledger.AppendSnapshot(context.Background(), snapshot)
}

func (lc *ledgerContext) iReadTheLedgerAt(at string) error {
	asOf, err := parseInstant(at)
	if err != nil {
		return err
	}
	lc.amount, lc.err = lc.ledger.CurrentAmount(context.Background(), lc.subject, lc.kind, asOf)
	return nil
}

func (lc *ledgerContext) theAmountShouldBe(expected int) error {
	if lc.err != nil {
		return fmt.Errorf("read failed: %w", lc.err)
	}
	if lc.amount != expected {
		return fmt.Errorf("expected amount %d, got %d", expected, lc.amount)
	}
	return nil
}

func (lc *ledgerContext) theLedgerShouldHoldSnapshots(expected int) error {
	history, err := lc.ledger.History(context.Background(), lc.subject, lc.kind)
	if err != nil {
		return err
	}
	if len(history) != expected {
		return fmt.Errorf("expected %d snapshots, got %d", expected, len(history))
	}
	return nil
}

func (lc *ledgerContext) theReadShouldFailWith(name string) error {
	return expectError(lc.err, name)
}

// InitializeResourceLedgerScenario registers ledger extrapolation steps
func InitializeResourceLedgerScenario(ctx *godog.ScenarioContext) {
	lc := &ledgerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, lc.reset()
	})

	ctx.Step(`^a "([^"]*)" snapshot of (\d+) at (-?\d+(?:\.\d+)?) per hour with limit (\d+) taken at "([^"]*)"$`,
		lc.aSnapshotTakenAt)
	ctx.Step(`^I read the ledger at "([^"]*)"$`, lc.iReadTheLedgerAt)
	ctx.Step(`^the amount should be (\d+)$`, lc.theAmountShouldBe)
	ctx.Step(`^the ledger should hold (\d+) snapshots?$`, lc.theLedgerShouldHoldSnapshots)
	ctx.Step(`^the read should fail with "([^"]*)"$`, lc.theReadShouldFailWith)
}
