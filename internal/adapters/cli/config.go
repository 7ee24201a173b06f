package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	domainCatalog "github.com/andrescamacho/manoria-go/internal/domain/catalog"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/catalog"
	"github.com/andrescamacho/manoria-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Manoria configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (MANORIA_* prefix, DATABASE_URL)
2. Config file (config.yaml in ., ./configs or /etc/manoria)
3. Default values

Example:
  manoria config show
  manoria config show --config ./configs/config.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration and production catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				infoColor.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			printConfig(cfg)

			cat, err := catalog.Load(cfg.Economy.CatalogPath)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			fmt.Fprintln(out)
			return printCatalog(cat)
		},
	}

	return cmd
}

func printConfig(cfg *config.Config) {
	titleColor.Fprintln(out, "Manoria Configuration")
	fmt.Fprintln(out, "=====================")

	fmt.Fprintln(out, "Database:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
		fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
	}

	fmt.Fprintln(out, "\nDaemon:")
	fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
	fmt.Fprintf(out, "  PID File:         %s\n", cfg.Daemon.PIDFile)
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
		cfg.Daemon.RateLimit.Requests, cfg.Daemon.RateLimit.Burst)
	fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Daemon.ShutdownTimeout)

	fmt.Fprintln(out, "\nEconomy:")
	fmt.Fprintf(out, "  Build Duration:   %s\n", cfg.Economy.BuildDuration)
	catalogPath := cfg.Economy.CatalogPath
	if catalogPath == "" {
		catalogPath = "(built-in)"
	}
	fmt.Fprintf(out, "  Catalog:          %s\n", catalogPath)
	fmt.Fprintf(out, "  Continent:        %s (%dx%d)\n",
		cfg.Economy.Continent.Name, cfg.Economy.Continent.Width, cfg.Economy.Continent.Height)
	fmt.Fprintf(out, "  Settlement Grid:  %dx%d\n", cfg.Economy.SettlementGrid, cfg.Economy.SettlementGrid)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

	fmt.Fprintln(out, "\nMetrics:")
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	} else {
		fmt.Fprintln(out, "  Endpoint:         (disabled)")
	}
}

func printCatalog(cat *domainCatalog.Catalog) error {
	titleColor.Fprintln(out, "Production Catalog")

	table := newTable("Building", "Produces", "On Terrain", "Costs")
	for _, name := range cat.BuildingNames() {
		building, err := cat.Building(name)
		if err != nil {
			return err
		}

		produces := make([]string, 0, len(building.Rules))
		terrain := make([]string, 0, len(building.Rules))
		for _, rule := range building.Rules {
			produces = append(produces, fmt.Sprintf("%s %d/h", rule.Resource, rule.BaseRate))
			source := rule.SourceTerrain
			if source == "" {
				source = "any"
			}
			terrain = append(terrain, source)
		}
		costs := make([]string, 0, len(building.Costs))
		for _, cost := range building.Costs {
			costs = append(costs, fmt.Sprintf("%d %s", cost.Amount, cost.Resource))
		}

		if err := table.Append([]string{name, strings.Join(produces, ", "), strings.Join(terrain, ", "), strings.Join(costs, ", ")}); err != nil {
			return err
		}
	}
	return table.Render()
}

// maskPassword hides the password component of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
