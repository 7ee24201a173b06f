package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/manoria-go/internal/adapters/grpc"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
		Long: `Manage players. A new player starts with the player ledgers
defined in the production catalog.

Examples:
  manoria player create --name ada`,
	}

	cmd.AddCommand(newPlayerCreateCommand())

	return cmd
}

func newPlayerCreateCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			return withClient(func(ctx context.Context, client *daemon.DaemonClient) error {
				p, err := client.CreatePlayer(ctx, daemon.CreatePlayerRequest{Name: name})
				if err != nil {
					return err
				}

				successColor.Fprintln(out, "✓ Player created")
				fmt.Fprintf(out, "  Name:       %s\n", p.Name)
				fmt.Fprintf(out, "  Player ID:  %d\n", p.ID)
				fmt.Fprintf(out, "  Created:    %s\n", formatTime(p.CreatedAt))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name, at most 20 characters (required)")

	return cmd
}
