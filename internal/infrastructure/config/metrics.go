package config

import (
	"net"
	"strconv"
)

// MetricsConfig controls the Prometheus endpoint. Collectors are only
// registered when Enabled is set.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Address is the host:port the metrics server listens on
func (m MetricsConfig) Address() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}
