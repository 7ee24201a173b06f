package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/manoria-go/internal/adapters/grpc"
)

// subjectFlags selects the ledger owner: a settlement or a player
type subjectFlags struct {
	settlementID int
	playerID     int
}

func (f *subjectFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.settlementID, "settlement", 0, "Settlement ID owning the ledger")
	cmd.Flags().IntVar(&f.playerID, "player-id", 0, "Player ID owning the ledger")
}

func (f *subjectFlags) resolve() (subjectType string, subjectID string, err error) {
	switch {
	case f.settlementID > 0 && f.playerID > 0:
		return "", "", fmt.Errorf("use either --settlement or --player-id, not both")
	case f.settlementID > 0:
		return "settlement", strconv.Itoa(f.settlementID), nil
	case f.playerID > 0:
		return "player", strconv.Itoa(f.playerID), nil
	default:
		return "", "", fmt.Errorf("--settlement or --player-id is required")
	}
}

// NewResourceCommand creates the resource command with subcommands
func NewResourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Read and adjust resource ledgers",
		Long: `Read and adjust resource ledgers of settlements and players.

Amounts are extrapolated from the latest snapshot at or before the requested
instant; nothing is written by a read.

Examples:
  manoria resource get --settlement 1 --kind wood
  manoria resource get --player-id 1 --kind gold --as-of 2024-03-01T13:00:00Z
  manoria resource history --settlement 1 --kind food
  manoria resource adjust --settlement 1 --kind stone --delta -10`,
	}

	cmd.AddCommand(newResourceGetCommand())
	cmd.AddCommand(newResourceHistoryCommand())
	cmd.AddCommand(newResourceAdjustCommand())

	return cmd
}

func newResourceGetCommand() *cobra.Command {
	var (
		subject subjectFlags
		kind    string
		asOf    string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the amount of one resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectType, subjectID, err := subject.resolve()
			if err != nil {
				return err
			}
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.CurrentAmount(ctx, daemon.CurrentAmountRequest{
					SubjectType:  subjectType,
					SubjectID:    subjectID,
					ResourceKind: kind,
					AsOf:         at,
				})
				if err != nil {
					return err
				}

				a := reply.Amount
				titleColor.Fprintf(out, "%s %s: %s\n", subjectType, subjectID, a.ResourceKind)
				fmt.Fprintf(out, "  Amount:  %d\n", a.Amount)
				fmt.Fprintf(out, "  Rate:    %s/h\n", a.Rate)
				fmt.Fprintf(out, "  Limit:   %s\n", formatLimit(a.Limit))
				fmt.Fprintf(out, "  As of:   %s\n", formatTime(a.AsOf))
				return nil
			})
		},
	}

	subject.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "Resource kind (required)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Instant to read at (RFC 3339); defaults to now")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func newResourceHistoryCommand() *cobra.Command {
	var (
		subject subjectFlags
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the snapshots of one ledger, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectType, subjectID, err := subject.resolve()
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.SnapshotHistory(ctx, daemon.SnapshotHistoryRequest{
					SubjectType:  subjectType,
					SubjectID:    subjectID,
					ResourceKind: kind,
				})
				if err != nil {
					return err
				}

				if len(reply.Snapshots) == 0 {
					infoColor.Fprintln(out, "No snapshots recorded")
					return nil
				}

				table := newTable("Timestamp", "Count", "Natural", "Adjustment", "Rate/h", "Limit")
				for _, s := range reply.Snapshots {
					if err := table.Append([]string{
						formatTime(s.Timestamp),
						fmt.Sprintf("%d", s.Count),
						s.NaturalRate,
						s.RateAdjustment,
						s.Rate,
						formatLimit(s.Limit),
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}

	subject.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "Resource kind (required)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func newResourceAdjustCommand() *cobra.Command {
	var (
		subject subjectFlags
		kind    string
		delta   int
	)

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Add to or spend from a ledger now",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectType, subjectID, err := subject.resolve()
			if err != nil {
				return err
			}
			if delta == 0 {
				return fmt.Errorf("--delta must be non-zero")
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				reply, err := client.AdjustResource(ctx, daemon.AdjustResourceRequest{
					SubjectType:  subjectType,
					SubjectID:    subjectID,
					ResourceKind: kind,
					Delta:        delta,
				})
				if err != nil {
					return err
				}

				s := reply.Snapshot
				successColor.Fprintf(out, "✓ %s adjusted by %+d\n", s.ResourceKind, delta)
				fmt.Fprintf(out, "  Count:   %d at %s\n", s.Count, formatTime(s.Timestamp))
				fmt.Fprintf(out, "  Rate:    %s/h\n", s.Rate)
				return nil
			})
		},
	}

	subject.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "Resource kind (required)")
	cmd.Flags().IntVar(&delta, "delta", 0, "Signed change to apply (required)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
