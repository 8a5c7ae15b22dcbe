// Package cli wires configuration, logging and storage for cmd/budgman and
// holds its cobra command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"budgman/internal/backend"
	"budgman/internal/config"
	"budgman/internal/log"
)

// SetupLogger initializes structured logging on stderr at the configured
// level and sets it as the default logger.
func SetupLogger(cfg *config.Config) *log.Logger {
	logCfg := log.DefaultConfig()
	if cfg != nil {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logCfg.Level = level
		}
	}
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file of the working directory, if any.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitStore opens the configured backend, bootstrapping the store file on
// first run.
func InitStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		log.NewStructuredLogger(log.FromSlog(logger, log.ComponentStorage)).
			LogError(ctx, "Failed to initialize store", err, log.ComponentStorage, log.OpStartup, log.LogFields{
				log.FieldBackend: backendCfg.Type.String(),
				log.FieldPath:    backendCfg.SQLiteDBPath,
			})
		return nil, err
	}
	return res, nil
}

// Main is the whole program behind cmd/budgman. It returns the exit code.
func Main(ctx context.Context, args []string) int {
	LoadEnvFile()

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "budgman: %v\n", err)
		return 1
	}
	logger := SetupLogger(cfg)

	res, err := InitStore(ctx, logger.Logger, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "budgman: %v\n", err)
		return 1
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Failed to close store",
					log.FieldOperation, log.OpShutdown,
					log.FieldError, err)
			}
		}()
	}

	err = Run(ctx, Deps{
		Store:  res.Backend,
		Budget: cfg.Budget,
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: logger.Logger,
	}, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "budgman: %v\n", err)
		return 1
	}
	return 0
}
