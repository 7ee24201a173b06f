package config

import "time"

// EconomyConfig holds the tunables of the settlement economy
type EconomyConfig struct {
	// Time one building takes from start to completion
	BuildDuration time.Duration `mapstructure:"build_duration" validate:"gt=0"`

	// YAML catalog file; empty uses the built-in catalog
	CatalogPath string `mapstructure:"catalog_path"`

	// Continent the daemon ensures at start-up
	Continent ContinentConfig `mapstructure:"continent"`

	// Edge length of a settlement's plot grid
	SettlementGrid int `mapstructure:"settlement_grid" validate:"min=1,max=64"`

	// Seed for placement and terrain; 0 picks a random seed at start-up
	PlacementSeed int64 `mapstructure:"placement_seed"`
}

// ContinentConfig describes the default continent
type ContinentConfig struct {
	Name   string `mapstructure:"name" validate:"required"`
	Width  int    `mapstructure:"width" validate:"min=1"`
	Height int    `mapstructure:"height" validate:"min=1"`
}
