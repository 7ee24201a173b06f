package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}

	SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "manoria.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Minute, cfg.Economy.BuildDuration)
	assert.Equal(t, 10, cfg.Economy.Continent.Width)
	assert.Equal(t, 10, cfg.Economy.Continent.Height)
	assert.Equal(t, 10, cfg.Economy.SettlementGrid)
	assert.Equal(t, "/tmp/manoria-daemon.sock", cfg.Daemon.SocketPath)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: sqlite
  path: ":memory:"
economy:
  build_duration: 90s
  continent:
    name: Westmarch
    width: 4
    height: 3
logging:
  level: debug
  format: text
`), 0o644))

	t.Setenv("MANORIA_ECONOMY_SETTLEMENT_GRID", "6")
	t.Setenv("MANORIA_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 90*time.Second, cfg.Economy.BuildDuration)
	assert.Equal(t, "Westmarch", cfg.Economy.Continent.Name)
	assert.Equal(t, 4, cfg.Economy.Continent.Width)
	assert.Equal(t, 6, cfg.Economy.SettlementGrid)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestValidateConfig_RejectsBadValues(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Logging.Level = "verbose"

	err := ValidateConfig(cfg)

	assert.ErrorContains(t, err, "Level")
}

func TestValidateConfig_FileOutputNeedsPath(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Logging.Output = "file"

	err := ValidateConfig(cfg)

	assert.ErrorContains(t, err, "FilePath")
}

func TestValidateConfig_EconomyRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"sub-second builds", func(c *Config) { c.Economy.BuildDuration = 500 * time.Millisecond }, "min_one_second"},
		{"oversized continent", func(c *Config) { c.Economy.Continent.Width, c.Economy.Continent.Height = 2048, 1024 }, "max_cells"},
		{"idle pool above open pool", func(c *Config) { c.Database.Pool.MaxIdle = 50 }, "ltefield"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "startswith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			SetDefaults(cfg)
			tt.mutate(cfg)

			assert.ErrorContains(t, ValidateConfig(cfg), tt.want)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", pg.DSN())

	pg.URL = "postgresql://u:p@db/n"
	assert.Equal(t, "postgresql://u:p@db/n", pg.DSN())

	assert.Equal(t, ":memory:", DatabaseConfig{Type: "sqlite"}.DSN())
	assert.Equal(t, "x.db", DatabaseConfig{Type: "sqlite", Path: "x.db"}.DSN())
}

func TestMetricsConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:9090", MetricsConfig{Host: "localhost", Port: 9090}.Address())
}
