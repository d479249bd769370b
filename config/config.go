// Package config loads chaincode process settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls how the chaincode process starts.
type Config struct {
	// ServerAddress switches the chaincode to chaincode-as-a-service mode,
	// listening on this address instead of dialing the peer.
	ServerAddress string `env:"CHAINCODE_SERVER_ADDRESS"`
	// ChaincodeID is the package ID assigned by the peer. Required with ServerAddress.
	ChaincodeID string `env:"CHAINCODE_ID"`
	// LogSpec is a flogging spec such as "info" or "employeenft.access=debug:info".
	LogSpec string `env:"CHAINCODE_LOG_SPEC" envDefault:"info"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// External reports whether the chaincode runs as an external service.
func (c Config) External() bool {
	return c.ServerAddress != ""
}

// Validate checks option combinations.
func (c Config) Validate() error {
	if c.External() && c.ChaincodeID == "" {
		return errors.New("CHAINCODE_ID is required when CHAINCODE_SERVER_ADDRESS is set")
	}
	return nil
}
