package runtime

import (
	"fmt"
	"log/slog"

	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/storage"
)

// Option is a functional option for configuring a Bridge.
type Option func(*Bridge) error

// WithConfigFile loads configuration from path and reloads the generator
// metadata when the file changes.
func WithConfigFile(path string) Option {
	return func(b *Bridge) error {
		w, err := config.NewWatcher(path, b.logger)
		if err != nil {
			return fmt.Errorf("create config watcher: %w", err)
		}
		cfg, err := w.Load()
		if err != nil {
			return err
		}
		b.watcher = w
		b.cfg = cfg
		return nil
	}
}

// WithConfig uses a fixed configuration.
func WithConfig(cfg *config.Config) Option {
	return func(b *Bridge) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		b.cfg = cfg
		return nil
	}
}

// WithLogger sets a custom logger. Apply it before the config options so
// they log through it.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) error {
		b.logger = logger
		return nil
	}
}

// WithStore uses store instead of the one named in the config.
func WithStore(store storage.TruthStore) Option {
	return func(b *Bridge) error {
		b.store = store
		return nil
	}
}

// WithSpecies uses species instead of the configured table.
func WithSpecies(species pdg.Table) Option {
	return func(b *Bridge) error {
		b.species = species
		return nil
	}
}

// WithRunOptions shares an existing generator selection, so that every
// bridge of a process builds the same tune.
func WithRunOptions(run *config.RunOptions) Option {
	return func(b *Bridge) error {
		b.run = run
		return nil
	}
}
