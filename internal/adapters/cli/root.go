package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	socketPath string
	configPath string
	timeout    int
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "manoria",
		Short: "Manoria CLI - Interact with the settlement economy daemon",
		Long: `Manoria CLI manages players, settlements, resources and construction.
The CLI communicates with the daemon via Unix socket.

Examples:
  manoria player create --name ada
  manoria settlement found --player ada --continent 1 --name Greywater
  manoria settlement resources --settlement 1
  manoria resource get --settlement 1 --kind wood --as-of 2024-03-01T13:00:00Z
  manoria construction enqueue --settlement 1 --building farm --x 2 --y 3
  manoria construction queue --settlement 1`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (config show only)")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30,
		"Request timeout in seconds")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewSettlementCommand())
	rootCmd.AddCommand(NewResourceCommand())
	rootCmd.AddCommand(NewConstructionCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("MANORIA_SOCKET"); path != "" {
		return path
	}
	return "/tmp/manoria-daemon.sock"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
