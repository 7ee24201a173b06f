package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the daemon and the CLI read at start-up
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Economy  EconomyConfig  `mapstructure:"economy"`
}

// LoadConfig merges, strongest first: MANORIA_* environment variables (a
// local .env file included), the YAML file, then SetDefaults. The result is
// validated before it is returned.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/manoria")
	}

	// MANORIA_DATABASE_TYPE, MANORIA_ECONOMY_BUILD_DURATION, ...
	v.SetEnvPrefix("MANORIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without the prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers every key so AutomaticEnv also fills keys that are
// absent from the config file (viper only consults env for known keys on Unmarshal)
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"database.type", "database.url", "database.host", "database.port", "database.user",
		"database.password", "database.name", "database.sslmode", "database.path",
		"daemon.socket_path", "daemon.pid_file", "daemon.shutdown_timeout",
		"daemon.rate_limit.requests", "daemon.rate_limit.burst",
		"logging.level", "logging.format", "logging.output", "logging.file_path",
		"metrics.enabled", "metrics.host", "metrics.port", "metrics.path",
		"economy.build_duration", "economy.catalog_path", "economy.settlement_grid", "economy.placement_seed",
		"economy.continent.name", "economy.continent.width", "economy.continent.height",
	} {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault is LoadConfig for callers that can run on defaults alone
func LoadConfigOrDefault(configPath string) *Config {
	if cfg, err := LoadConfig(configPath); err == nil {
		return cfg
	}
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}
