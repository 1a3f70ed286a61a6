// Package server parses ledger server flags and launches the service.
package server

import (
	"context"
	"flag"

	"github.com/PauloHenriqueGrancieri/finances/internal/ledger/app"
	entrypoint "github.com/PauloHenriqueGrancieri/finances/internal/platform/cmd"
)

// Config holds ledger server command configuration.
type Config struct {
	Port int `env:"FINANCES_HTTP_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The ledger HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the ledger HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLedger, func(context.Context) error {
		return app.Run(ctx, cfg.Port)
	})
}
