package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "manoria.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "manoria"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "manoria"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/manoria-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/manoria-daemon.pid"
	}
	if cfg.Daemon.RateLimit.Requests == 0 {
		cfg.Daemon.RateLimit.Requests = 50
	}
	if cfg.Daemon.RateLimit.Burst == 0 {
		cfg.Daemon.RateLimit.Burst = 100
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Economy defaults
	if cfg.Economy.BuildDuration == 0 {
		cfg.Economy.BuildDuration = 2 * time.Minute
	}
	if cfg.Economy.Continent.Name == "" {
		cfg.Economy.Continent.Name = "Manoria"
	}
	if cfg.Economy.Continent.Width == 0 {
		cfg.Economy.Continent.Width = 10
	}
	if cfg.Economy.Continent.Height == 0 {
		cfg.Economy.Continent.Height = 10
	}
	if cfg.Economy.SettlementGrid == 0 {
		cfg.Economy.SettlementGrid = 10
	}
}
