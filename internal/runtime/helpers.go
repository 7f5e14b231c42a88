package runtime

import (
	"fmt"
	"log/slog"

	"github.com/nugen/evgb/internal/auth"
	"github.com/nugen/evgb/internal/codec/mctruth"
	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/storage"
	"github.com/nugen/evgb/internal/storage/archive"
	"github.com/nugen/evgb/internal/storage/memory"
	"github.com/nugen/evgb/internal/storage/sqldb"
	"github.com/nugen/evgb/internal/units"
)

// EventGeneratorListKey is the generator config entry holding the selected
// event generator list.
const EventGeneratorListKey = "event_generator_list"

// OpenStore opens the truth store named by cfg.
func OpenStore(cfg config.StorageConfig) (storage.TruthStore, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite", "postgres":
		store, err := sqldb.New(sqldb.Config{Driver: cfg.Driver, DSN: cfg.DSN, CacheSize: cfg.CacheSize})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// OpenSink returns the store, teed into the object archive when enabled.
func OpenSink(store storage.TruthStore, cfg config.ArchiveConfig) (storage.Sink, error) {
	if !cfg.Enabled {
		return store, nil
	}
	a, err := archive.New(archive.Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
		Prefix:    cfg.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return storage.Tee(store, a), nil
}

// LoadSpecies returns the built-in species table, overlaid with the file at
// path when set. path may be an environment reference.
func LoadSpecies(path string, logger *slog.Logger) (pdg.Table, error) {
	if path == "" {
		return pdg.Default(), nil
	}
	resolved, err := config.ExpandEnvVar(path)
	if err != nil {
		return nil, fmt.Errorf("species table: %w", err)
	}
	t, err := pdg.Load(resolved)
	if err != nil {
		return nil, err
	}
	logger.Info("species table loaded", slog.String("path", resolved), slog.Int("species", len(t)))
	return t, nil
}

// SelectGenerator applies the generator list and tune of cfg to run.
func SelectGenerator(run *config.RunOptions, cfg config.GeneratorConfig) error {
	return run.SetEventGeneratorListAndTune(cfg.EventGeneratorList, cfg.Tune)
}

// PipelineOptions builds the translation options from cfg and the selected
// generator list and tune.
func PipelineOptions(cfg *config.Config, run *config.RunOptions) pipeline.Options {
	g := cfg.Generator
	genCfg := make(map[string]string, len(g.Config)+1)
	for k, v := range g.Config {
		genCfg[k] = v
	}
	if list := run.EventGeneratorList(); list != "" {
		if _, ok := genCfg[EventGeneratorListKey]; !ok {
			genCfg[EventGeneratorListKey] = list
		}
	}

	return pipeline.Options{
		Translation: mctruth.Options{
			AddVertexTime:    g.AddVertexTime,
			GeneratorVersion: g.Version,
			Tune:             run.Tune(),
			GeneratorConfig:  genCfg,
		},
		GlobalTimeOffset: units.Nanoseconds(g.GlobalTimeOffsetNs),
		RandomTimeOffset: units.Nanoseconds(g.RandomTimeOffsetNs),
		Workers:          cfg.Pipeline.Workers,
	}
}

// NewAuthenticator builds the write-key authenticator of the server config.
func NewAuthenticator(cfg config.ServerConfig) (*auth.Authenticator, error) {
	a, err := auth.NewAuthenticator(cfg.APIKeys)
	if err != nil {
		return nil, fmt.Errorf("server.api_keys: %w", err)
	}
	return a, nil
}
