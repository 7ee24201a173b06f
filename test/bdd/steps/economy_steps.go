package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/manoria-go/internal/application/construction/commands"
	"github.com/andrescamacho/manoria-go/internal/application/construction/dtos"
	constructionQuery "github.com/andrescamacho/manoria-go/internal/application/construction/queries"
	"github.com/andrescamacho/manoria-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/manoria-go/internal/application/player/commands"
	resourceQuery "github.com/andrescamacho/manoria-go/internal/application/resource/queries"
	settlementCmd "github.com/andrescamacho/manoria-go/internal/application/settlement/commands"
	settlementQuery "github.com/andrescamacho/manoria-go/internal/application/settlement/queries"
	"github.com/andrescamacho/manoria-go/internal/application/setup"
	"github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/domain/shared"
	"github.com/andrescamacho/manoria-go/test/helpers"
)

type economyContext struct {
	economy       *helpers.Economy
	buildDuration time.Duration
	med           mediator.Mediator

	settlementID int
	continents   map[string]int
	players      map[string]int

	lastEntry  *dtos.EntryDTO
	enqueueErr error
	foundErr   error
	foundTiles int
	playerErr  error
}

func (ec *economyContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	cat, err := catalog.New(helpers.TestCatalogDefinition())
	if err != nil {
		return err
	}

	ec.economy = helpers.NewEconomyWithDB(helpers.SharedTestDB, cat)
	ec.buildDuration = 2 * time.Minute
	ec.med = nil
	ec.settlementID = 0
	ec.continents = make(map[string]int)
	ec.players = make(map[string]int)
	ec.lastEntry = nil
	ec.enqueueErr = nil
	ec.foundErr = nil
	ec.foundTiles = 0
	ec.playerErr = nil
	return nil
}

// bus is built lazily so Given steps can still change the build duration
func (ec *economyContext) bus() (mediator.Mediator, error) {
	if ec.med != nil {
		return ec.med, nil
	}
	registry := setup.NewHandlerRegistry(
		ec.economy.Transactor,
		ec.economy.Stores,
		ec.economy.Catalog,
		ec.economy.Clock,
		setup.Options{
			BuildDuration:  ec.buildDuration,
			SettlementGrid: 3,
			PlacementSeed:  42,
		},
	)
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return nil, err
	}
	ec.med = med
	return med, nil
}

func (ec *economyContext) send(request mediator.Request) (mediator.Response, error) {
	med, err := ec.bus()
	if err != nil {
		return nil, err
	}
	return med.Send(context.Background(), request)
}

// ============================================================================
// Clock
// ============================================================================

func (ec *economyContext) theTimeIs(at string) error {
	t, err := parseInstant(at)
	if err != nil {
		return err
	}
	ec.economy.Clock.SetTime(t)
	return nil
}

func (ec *economyContext) buildsTakeMinutes(minutes int) error {
	ec.buildDuration = time.Duration(minutes) * time.Minute
	return nil
}

func (ec *economyContext) hoursPass(hours int) error {
	ec.economy.Clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

// ============================================================================
// Construction
// ============================================================================

func (ec *economyContext) aHomesteadWithTerrain(name string, table *godog.Table) error {
	rows := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, strings.Join(cellValues(row), ""))
	}

	s, err := ec.economy.TryFoundSettlement(context.Background(), name, rows...)
	if err != nil {
		return fmt.Errorf("failed to found %s: %w", name, err)
	}
	ec.settlementID = s.ID().Value()
	return nil
}

func (ec *economyContext) iEnqueueAt(building string, x, y int) error {
	resp, err := ec.send(&commands.EnqueueConstructionCommand{
		SettlementID: ec.settlementID,
		BuildingKind: building,
		X:            x,
		Y:            y,
	})
	ec.enqueueErr = err
	if err != nil {
		return nil
	}
	entry := resp.(*commands.EnqueueConstructionResponse).Entry
	ec.lastEntry = &entry
	return nil
}

func (ec *economyContext) theEnqueueShouldFailWith(name string) error {
	return expectError(ec.enqueueErr, name)
}

func (ec *economyContext) theLastEntryShouldStartAt(at string) error {
	if ec.enqueueErr != nil {
		return fmt.Errorf("last enqueue failed: %w", ec.enqueueErr)
	}
	expected, err := parseInstant(at)
	if err != nil {
		return err
	}
	if !ec.lastEntry.ConstructionStart.Equal(expected) {
		return fmt.Errorf("expected start %s, got %s",
			expected.Format(time.RFC3339), ec.lastEntry.ConstructionStart.Format(time.RFC3339))
	}
	return nil
}

func (ec *economyContext) queueAt(at string) ([]dtos.EntryDTO, error) {
	asOf, err := parseInstant(at)
	if err != nil {
		return nil, err
	}
	resp, err := ec.send(&constructionQuery.GetQueueStatusQuery{SettlementID: ec.settlementID, AsOf: &asOf})
	if err != nil {
		return nil, err
	}
	status := resp.(*constructionQuery.GetQueueStatusResponse)
	return append(append([]dtos.EntryDTO{}, status.Built...), status.Pending...), nil
}

func (ec *economyContext) theConstructionQueueAtShouldBe(at string, table *godog.Table) error {
	entries, err := ec.queueAt(at)
	if err != nil {
		return err
	}
	expected := table.Rows[1:]
	if len(entries) != len(expected) {
		return fmt.Errorf("expected %d entries, got %d", len(expected), len(entries))
	}

	for i, row := range expected {
		entry := entries[i]
		actual := map[string]string{
			"building": entry.BuildingKind,
			"x":        strconv.Itoa(entry.X),
			"y":        strconv.Itoa(entry.Y),
			"start":    entry.ConstructionStart.UTC().Format(time.RFC3339),
			"end":      entry.ConstructionEnd.UTC().Format(time.RFC3339),
			"status":   entry.Status,
		}
		for column, value := range actual {
			want := getCellValue(table, row, column)
			if want != "" && want != value {
				return fmt.Errorf("entry %d: expected %s %q, got %q", i+1, column, want, value)
			}
		}
	}
	return nil
}

func (ec *economyContext) theQueueShouldHoldEntries(expected int) error {
	settlementID, err := shared.NewSettlementID(ec.settlementID)
	if err != nil {
		return err
	}
	entries, err := ec.economy.Stores.Entries.FindBySettlement(context.Background(), settlementID)
	if err != nil {
		return err
	}
	if len(entries) != expected {
		return fmt.Errorf("expected %d queued entries, got %d", expected, len(entries))
	}
	return nil
}

// ============================================================================
// Ledgers
// ============================================================================

func (ec *economyContext) amountAt(subjectType, subjectID, kind, at string) (int, error) {
	asOf, err := parseInstant(at)
	if err != nil {
		return 0, err
	}
	resp, err := ec.send(&resourceQuery.GetCurrentAmountQuery{
		SubjectType:  subjectType,
		SubjectID:    subjectID,
		ResourceKind: kind,
		AsOf:         &asOf,
	})
	if err != nil {
		return 0, err
	}
	return resp.(*resourceQuery.GetCurrentAmountResponse).Amount.Amount, nil
}

func (ec *economyContext) theSettlementShouldHaveAt(expected int, kind, at string) error {
	amount, err := ec.amountAt("settlement", strconv.Itoa(ec.settlementID), kind, at)
	if err != nil {
		return err
	}
	if amount != expected {
		return fmt.Errorf("expected %d %s at %s, got %d", expected, kind, at, amount)
	}
	return nil
}

func (ec *economyContext) playerShouldHaveAt(name string, expected int, kind, at string) error {
	playerID, ok := ec.players[name]
	if !ok {
		return fmt.Errorf("player %s was never created", name)
	}
	amount, err := ec.amountAt("player", strconv.Itoa(playerID), kind, at)
	if err != nil {
		return err
	}
	if amount != expected {
		return fmt.Errorf("expected %s to have %d %s, got %d", name, expected, kind, amount)
	}
	return nil
}

// ============================================================================
// Players and settlements
// ============================================================================

func (ec *economyContext) aContinentOfBy(name string, width, height int) error {
	resp, err := ec.send(&settlementCmd.EnsureContinentCommand{Name: name, Width: width, Height: height})
	if err != nil {
		return err
	}
	ec.continents[name] = resp.(*settlementCmd.EnsureContinentResponse).Continent.ID
	return nil
}

func (ec *economyContext) iCreateAPlayer(name string) error {
	resp, err := ec.send(&playerCmd.CreatePlayerCommand{Name: name})
	ec.playerErr = err
	if err != nil {
		return nil
	}
	ec.players[name] = resp.(*playerCmd.CreatePlayerResponse).Player.ID.Value()
	return nil
}

func (ec *economyContext) aPlayer(name string) error {
	if err := ec.iCreateAPlayer(name); err != nil {
		return err
	}
	return ec.playerErr
}

func (ec *economyContext) thePlayerCreationShouldFailWith(name string) error {
	return expectError(ec.playerErr, name)
}

func (ec *economyContext) foundsASettlementOn(playerName, name, continent string) error {
	continentID, ok := ec.continents[continent]
	if !ok {
		return fmt.Errorf("unknown continent %s", continent)
	}
	resp, err := ec.send(&settlementCmd.FoundSettlementCommand{
		PlayerName:  playerName,
		ContinentID: continentID,
		Name:        name,
	})
	ec.foundErr = err
	if err != nil {
		return nil
	}
	founded := resp.(*settlementCmd.FoundSettlementResponse)
	ec.settlementID = founded.Settlement.ID
	ec.foundTiles = len(founded.Terrain)
	return nil
}

func (ec *economyContext) theFoundingShouldSucceed() error {
	if ec.foundErr != nil {
		return fmt.Errorf("expected founding to succeed, got %w", ec.foundErr)
	}
	return nil
}

func (ec *economyContext) theFoundingShouldFailWith(name string) error {
	return expectError(ec.foundErr, name)
}

func (ec *economyContext) theSettlementShouldHaveATerrainGrid(width, height int) error {
	resp, err := ec.send(&settlementQuery.GetSettlementQuery{SettlementID: ec.settlementID})
	if err != nil {
		return err
	}
	s := resp.(*settlementQuery.GetSettlementResponse)
	if s.Settlement.GridSize != width || width != height {
		return fmt.Errorf("expected a %dx%d grid, got %dx%d", width, height, s.Settlement.GridSize, s.Settlement.GridSize)
	}
	if len(s.Terrain) != width*height || ec.foundTiles != width*height {
		return fmt.Errorf("expected %d tiles, got %d stored and %d returned", width*height, len(s.Terrain), ec.foundTiles)
	}
	return nil
}

func (ec *economyContext) shouldOwnSettlementsOnDistinctCells(playerName string, expected int) error {
	resp, err := ec.send(&settlementQuery.ListSettlementsQuery{PlayerName: playerName})
	if err != nil {
		return err
	}
	settlements := resp.(*settlementQuery.ListSettlementsResponse).Settlements
	if len(settlements) != expected {
		return fmt.Errorf("expected %s to own %d settlements, got %d", playerName, expected, len(settlements))
	}

	cells := make(map[[2]int]string, len(settlements))
	for _, s := range settlements {
		cell := [2]int{s.X, s.Y}
		if other, taken := cells[cell]; taken {
			return fmt.Errorf("%s and %s share cell (%d, %d)", other, s.Name, s.X, s.Y)
		}
		cells[cell] = s.Name
	}
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func cellValues(row *messages.PickleTableRow) []string {
	values := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		values = append(values, cell.Value)
	}
	return values
}

// getCellValue finds a cell by column name, using the first row as header
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

// InitializeEconomyScenario registers construction, founding and player steps
func InitializeEconomyScenario(ctx *godog.ScenarioContext) {
	ec := &economyContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, ec.reset()
	})

	ctx.Step(`^the time is "([^"]*)"$`, ec.theTimeIs)
	ctx.Step(`^builds take (\d+) minutes?$`, ec.buildsTakeMinutes)
	ctx.Step(`^(\d+) hours? pass(?:es)?$`, ec.hoursPass)

	ctx.Step(`^a homestead "([^"]*)" with terrain:$`, ec.aHomesteadWithTerrain)
	ctx.Step(`^I enqueue a "([^"]*)" at \((\d+), (\d+)\)$`, ec.iEnqueueAt)
	ctx.Step(`^the enqueue should fail with "([^"]*)"$`, ec.theEnqueueShouldFailWith)
	ctx.Step(`^the last entry should start at "([^"]*)"$`, ec.theLastEntryShouldStartAt)
	ctx.Step(`^the construction queue at "([^"]*)" should be:$`, ec.theConstructionQueueAtShouldBe)
	ctx.Step(`^the queue should hold (\d+) entries$`, ec.theQueueShouldHoldEntries)

	ctx.Step(`^the settlement should have (\d+) "([^"]*)" at "([^"]*)"$`, ec.theSettlementShouldHaveAt)
	ctx.Step(`^"([^"]*)" should have (\d+) "([^"]*)" at "([^"]*)"$`, ec.playerShouldHaveAt)

	ctx.Step(`^a continent "([^"]*)" of (\d+) by (\d+)$`, ec.aContinentOfBy)
	ctx.Step(`^a player "([^"]*)"$`, ec.aPlayer)
	ctx.Step(`^I create a player "([^"]*)"$`, ec.iCreateAPlayer)
	ctx.Step(`^the player creation should fail with "([^"]*)"$`, ec.thePlayerCreationShouldFailWith)
	ctx.Step(`^"([^"]*)" founds a settlement "([^"]*)" on "([^"]*)"$`, ec.foundsASettlementOn)
	ctx.Step(`^the founding should succeed$`, ec.theFoundingShouldSucceed)
	ctx.Step(`^the founding should fail with "([^"]*)"$`, ec.theFoundingShouldFailWith)
	ctx.Step(`^the settlement should have a (\d+) by (\d+) terrain grid$`, ec.theSettlementShouldHaveATerrainGrid)
	ctx.Step(`^"([^"]*)" should own (\d+) settlements on distinct cells$`, ec.shouldOwnSettlementsOnDistinctCells)
}
