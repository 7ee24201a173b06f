package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/manoria-go/internal/adapters/grpc"
	settlementDtos "github.com/andrescamacho/manoria-go/internal/application/settlement/dtos"
)

// NewSettlementCommand creates the settlement command with subcommands
func NewSettlementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlement",
		Short: "Found and inspect settlements",
		Long: `Found settlements on a continent and inspect their terrain and stock.

Examples:
  manoria settlement found --player ada --continent 1 --name Greywater
  manoria settlement list --player ada
  manoria settlement show --settlement 1
  manoria settlement resources --settlement 1 --as-of 2024-03-01T13:00:00Z`,
	}

	cmd.AddCommand(newSettlementFoundCommand())
	cmd.AddCommand(newSettlementListCommand())
	cmd.AddCommand(newSettlementShowCommand())
	cmd.AddCommand(newSettlementResourcesCommand())

	return cmd
}

func newSettlementFoundCommand() *cobra.Command {
	var (
		playerID    int
		playerName  string
		continentID int
		name        string
		kind        string
	)

	cmd := &cobra.Command{
		Use:   "found",
		Short: "Found a settlement at a free location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 && playerName == "" {
				return fmt.Errorf("--player-id or --player is required")
			}
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.FoundSettlement(ctx, daemon.FoundSettlementRequest{
					PlayerID:    playerID,
					PlayerName:  playerName,
					ContinentID: continentID,
					Name:        name,
					Kind:        kind,
				})
				if err != nil {
					return err
				}

				s := reply.Settlement
				successColor.Fprintln(out, "✓ Settlement founded")
				fmt.Fprintf(out, "  Name:          %s (%s)\n", s.Name, s.Kind)
				fmt.Fprintf(out, "  Settlement ID: %d\n", s.ID)
				fmt.Fprintf(out, "  Location:      (%d, %d) on continent %d\n", s.X, s.Y, s.ContinentID)
				fmt.Fprintln(out)
				printTerrain(s.GridSize, reply.Terrain)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&playerID, "player-id", 0, "Owning player ID")
	cmd.Flags().StringVar(&playerName, "player", "", "Owning player name")
	cmd.Flags().IntVar(&continentID, "continent", 1, "Continent ID")
	cmd.Flags().StringVar(&name, "name", "", "Settlement name (required)")
	cmd.Flags().StringVar(&kind, "kind", "", "Settlement kind: homestead, hamlet, village or town")

	return cmd
}

func newSettlementListCommand() *cobra.Command {
	var (
		playerID   int
		playerName string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a player's settlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 && playerName == "" {
				return fmt.Errorf("--player-id or --player is required")
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.ListSettlements(ctx, daemon.ListSettlementsRequest{
					PlayerID:   playerID,
					PlayerName: playerName,
				})
				if err != nil {
					return err
				}

				if len(reply.Settlements) == 0 {
					infoColor.Fprintln(out, "No settlements found")
					return nil
				}

				table := newTable("ID", "Name", "Kind", "Continent", "Location", "Grid")
				for _, s := range reply.Settlements {
					if err := table.Append([]string{
						fmt.Sprintf("%d", s.ID),
						s.Name,
						s.Kind,
						fmt.Sprintf("%d", s.ContinentID),
						fmt.Sprintf("(%d, %d)", s.X, s.Y),
						fmt.Sprintf("%dx%d", s.GridSize, s.GridSize),
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().IntVar(&playerID, "player-id", 0, "Player ID")
	cmd.Flags().StringVar(&playerName, "player", "", "Player name")

	return cmd
}

func newSettlementShowCommand() *cobra.Command {
	var settlementID int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a settlement and its terrain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.GetSettlement(ctx, daemon.GetSettlementRequest{SettlementID: settlementID})
				if err != nil {
					return err
				}

				s := reply.Settlement
				titleColor.Fprintf(out, "%s (%s)\n", s.Name, s.Kind)
				fmt.Fprintf(out, "  Settlement ID: %d\n", s.ID)
				fmt.Fprintf(out, "  Player ID:     %d\n", s.PlayerID)
				fmt.Fprintf(out, "  Location:      (%d, %d) on continent %d\n", s.X, s.Y, s.ContinentID)
				fmt.Fprintln(out)
				printTerrain(s.GridSize, reply.Terrain)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&settlementID, "settlement", 0, "Settlement ID (required)")
	_ = cmd.MarkFlagRequired("settlement")

	return cmd
}

func newSettlementResourcesCommand() *cobra.Command {
	var (
		settlementID int
		asOf         string
	)

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Show every resource of a settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.SettlementResources(ctx, daemon.SettlementResourcesRequest{
					SettlementID: settlementID,
					AsOf:         at,
				})
				if err != nil {
					return err
				}

				titleColor.Fprintf(out, "Settlement %d resources as of %s\n", reply.SettlementID, formatTime(reply.AsOf))
				table := newTable("Resource", "Amount", "Rate/h", "Limit")
				for _, a := range reply.Amounts {
					if err := table.Append([]string{a.ResourceKind, fmt.Sprintf("%d", a.Amount), a.Rate, formatLimit(a.Limit)}); err != nil {
						return err
					}
				}
				if err := table.Render(); err != nil {
					return err
				}
				if len(reply.Untracked) > 0 {
					infoColor.Fprintf(out, "Not tracked: %s\n", strings.Join(reply.Untracked, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&settlementID, "settlement", 0, "Settlement ID (required)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Instant to read at (RFC 3339); defaults to now")
	_ = cmd.MarkFlagRequired("settlement")

	return cmd
}

// printTerrain draws the plot grid, one letter per tile, row y=1 first
func printTerrain(gridSize int, tiles []settlementDtos.TileDTO) {
	if gridSize <= 0 || len(tiles) == 0 {
		return
	}

	grid := make([][]string, gridSize)
	for y := range grid {
		grid[y] = make([]string, gridSize)
		for x := range grid[y] {
			grid[y][x] = "?"
		}
	}
	legend := map[string]string{}
	for _, tile := range tiles {
		if tile.X < 1 || tile.Y < 1 || tile.X > gridSize || tile.Y > gridSize || tile.Terrain == "" {
			continue
		}
		letter := strings.ToUpper(tile.Terrain[:1])
		grid[tile.Y-1][tile.X-1] = letter
		legend[letter] = tile.Terrain
	}

	titleColor.Fprintln(out, "Terrain:")
	for _, row := range grid {
		fmt.Fprintf(out, "  %s\n", strings.Join(row, " "))
	}

	parts := make([]string, 0, len(legend))
	for letter, terrain := range legend {
		parts = append(parts, letter+"="+terrain)
	}
	sort.Strings(parts)
	fmt.Fprintf(out, "  %s\n", strings.Join(parts, "  "))
}

func formatLimit(limit int) string {
	if limit == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", limit)
}
