package config

import (
	"fmt"
	"time"
)

// DatabaseConfig selects the store behind every repository. SQLite suits a
// single daemon; Postgres is used when several daemons share one economy.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL wins over the discrete Postgres fields when set
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite file; ":memory:" keeps everything in one connection
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig sizes the Postgres pool. SQLite ignores it.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1,ltefield=MaxOpen"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN is the driver connection string for the configured type
func (d DatabaseConfig) DSN() string {
	switch d.Type {
	case "postgres":
		if d.URL != "" {
			return d.URL
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	default:
		if d.Path == "" {
			return ":memory:"
		}
		return d.Path
	}
}
