package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/manoria-go/internal/adapters/grpc"
	constructionDtos "github.com/andrescamacho/manoria-go/internal/application/construction/dtos"
)

// NewConstructionCommand creates the construction command with subcommands
func NewConstructionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "construction",
		Short: "Queue buildings and inspect the construction queue",
		Long: `Queue buildings on a settlement's plots. Buildings are built one at a
time; a new entry starts when the previous one ends.

Examples:
  manoria construction enqueue --settlement 1 --building farm --x 2 --y 3
  manoria construction queue --settlement 1
  manoria construction queue --settlement 1 --as-of 2024-03-01T13:00:00Z`,
	}

	cmd.AddCommand(newConstructionEnqueueCommand())
	cmd.AddCommand(newConstructionQueueCommand())

	return cmd
}

func newConstructionEnqueueCommand() *cobra.Command {
	var (
		settlementID int
		building     string
		x, y         int
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue a building at a plot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.EnqueueConstruction(ctx, daemon.EnqueueConstructionRequest{
					SettlementID: settlementID,
					BuildingKind: building,
					X:            x,
					Y:            y,
				})
				if err != nil {
					return err
				}

				e := reply.Entry
				successColor.Fprintf(out, "✓ %s queued at (%d, %d)\n", e.BuildingKind, e.X, e.Y)
				fmt.Fprintf(out, "  Start:   %s\n", formatTime(e.ConstructionStart))
				fmt.Fprintf(out, "  End:     %s\n", formatTime(e.ConstructionEnd))
				fmt.Fprintf(out, "  Status:  %s\n", e.Status)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&settlementID, "settlement", 0, "Settlement ID (required)")
	cmd.Flags().StringVar(&building, "building", "", "Building kind (required)")
	cmd.Flags().IntVar(&x, "x", 0, "Plot column, from 1 (required)")
	cmd.Flags().IntVar(&y, "y", 0, "Plot row, from 1 (required)")
	for _, name := range []string{"settlement", "building", "x", "y"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newConstructionQueueCommand() *cobra.Command {
	var (
		settlementID int
		asOf         string
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show queued, in-progress and finished buildings",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.QueueStatus(ctx, daemon.QueueStatusRequest{SettlementID: settlementID, AsOf: at})
				if err != nil {
					return err
				}

				titleColor.Fprintf(out, "Settlement %d construction as of %s\n", reply.SettlementID, formatTime(reply.AsOf))
				if reply.UnderConstruction != nil {
					e := reply.UnderConstruction
					infoColor.Fprintf(out, "Building %s at (%d, %d) until %s\n",
						e.BuildingKind, e.X, e.Y, formatTime(e.ConstructionEnd))
				}

				entries := append(append([]constructionDtos.EntryDTO{}, reply.Built...), reply.Pending...)
				if len(entries) == 0 {
					infoColor.Fprintln(out, "Nothing queued")
					return nil
				}

				table := newTable("Building", "Plot", "Start", "End", "Status")
				for _, e := range entries {
					if err := table.Append([]string{
						e.BuildingKind,
						fmt.Sprintf("(%d, %d)", e.X, e.Y),
						formatTime(e.ConstructionStart),
						formatTime(e.ConstructionEnd),
						e.Status,
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().IntVar(&settlementID, "settlement", 0, "Settlement ID (required)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Instant to read at (RFC 3339); defaults to now")
	_ = cmd.MarkFlagRequired("settlement")

	return cmd
}
