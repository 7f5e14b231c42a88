// Package runtime wires configuration, storage, the translation pipeline and
// the HTTP server into a running bridge.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nugen/evgb/internal/codec/ghep"
	"github.com/nugen/evgb/internal/config"
	"github.com/nugen/evgb/internal/metrics"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/roundtrip"
	"github.com/nugen/evgb/internal/server"
	"github.com/nugen/evgb/internal/storage"
	"github.com/nugen/evgb/internal/telemetry"
)

// Bridge is the evgb daemon: it accepts generated events over HTTP,
// translates them and serves the stored truth records.
type Bridge struct {
	cfg     *config.Config
	watcher *config.Watcher
	run     *config.RunOptions
	species pdg.Table
	store   storage.TruthStore
	sink    storage.Sink
	metrics *metrics.Metrics

	processor *pipeline.Processor
	server    *server.Server
	logger    *slog.Logger

	shutdownTracer func(context.Context) error

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	done   chan error
}

// New creates a Bridge with the given options. A tune that conflicts with
// the one already selected in the shared run options fails with
// config.ErrTuneNameMismatch.
func New(opts ...Option) (*Bridge, error) {
	b := &Bridge{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	if b.cfg == nil {
		return nil, errors.New("config required (use WithConfigFile or WithConfig)")
	}
	if b.run == nil {
		b.run = config.NewRunOptions(b.logger)
	}
	if err := SelectGenerator(b.run, b.cfg.Generator); err != nil {
		return nil, err
	}

	if b.species == nil {
		species, err := LoadSpecies(b.cfg.Species.Path, b.logger)
		if err != nil {
			return nil, err
		}
		b.species = species
	}

	if b.store == nil {
		store, err := OpenStore(b.cfg.Storage)
		if err != nil {
			return nil, err
		}
		b.store = store
	}
	sink, err := OpenSink(b.store, b.cfg.Archive)
	if err != nil {
		b.store.Close()
		return nil, err
	}
	b.sink = sink

	authenticator, err := NewAuthenticator(b.cfg.Server)
	if err != nil {
		b.store.Close()
		return nil, err
	}

	b.metrics = metrics.New()
	popts := PipelineOptions(b.cfg, b.run)
	b.processor = pipeline.NewProcessor(b.species, b.sink, b.metrics, popts, b.logger)

	handlers := server.NewHandlers(
		b.store,
		b.processor,
		ghep.New(b.species, b.logger),
		roundtrip.NewChecker(b.species, popts.Translation, b.logger),
		b.metrics,
	)
	b.server = server.New(server.Config{
		Port:           b.cfg.Server.Port,
		RequestTimeout: b.cfg.Server.RequestTimeout,
		Authenticator:  authenticator,
	}, handlers, b.logger)

	b.logger.Info("bridge configured",
		slog.String("storage", b.cfg.Storage.Driver),
		slog.Bool("archive", b.cfg.Archive.Enabled),
		slog.String("tune", b.run.Tune()),
		slog.Int("workers", popts.Workers))
	return b, nil
}

// Handler returns the HTTP handler of the bridge.
func (b *Bridge) Handler() http.Handler { return b.server.Router }

// Processor returns the translation pipeline.
func (b *Bridge) Processor() *pipeline.Processor { return b.processor }

// Store returns the truth store.
func (b *Bridge) Store() storage.TruthStore { return b.store }

// Start begins serving in the background. Done reports when serving stops.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ctx, b.cancel = context.WithCancel(ctx)

	if b.cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(telemetry.Options{ServiceName: b.cfg.Telemetry.ServiceName}, b.logger)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		b.shutdownTracer = shutdown
	}

	if b.watcher != nil {
		// a missing file leaves the defaults in place without reloads
		if err := b.watcher.Watch(b.ctx, b.onConfigChange); err != nil {
			b.logger.Warn("config reload disabled", slog.String("error", err.Error()))
		}
	}

	b.done = make(chan error, 1)
	go func() {
		b.done <- b.server.Start()
	}()

	b.logger.Info("bridge started", slog.Int("port", b.cfg.Server.Port))
	return nil
}

// Done returns a channel receiving the server result once it stops.
func (b *Bridge) Done() <-chan error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

// onConfigChange applies reloaded generator metadata. Storage, server and
// species settings take effect on restart only.
func (b *Bridge) onConfigChange(cfg *config.Config) {
	if err := b.Reload(cfg); err != nil {
		b.logger.Error("failed to apply reloaded config", slog.String("error", err.Error()))
	}
}

// Reload switches the pipeline to the generator metadata of cfg. A tune
// different from the built one is rejected and the current options are
// kept.
func (b *Bridge) Reload(cfg *config.Config) error {
	if err := SelectGenerator(b.run, cfg.Generator); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.Generator = cfg.Generator
	b.cfg.Pipeline = cfg.Pipeline
	b.processor.SetOptions(PipelineOptions(b.cfg, b.run))
	b.logger.Info("generator options reloaded",
		slog.String("version", cfg.Generator.Version),
		slog.Int("workers", cfg.Pipeline.Workers))
	return nil
}

// Shutdown gracefully stops the bridge.
func (b *Bridge) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Info("shutting down bridge")
	if b.cancel != nil {
		b.cancel()
	}

	var errs []error
	if err := b.server.Shutdown(ctx); err != nil {
		b.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if b.watcher != nil {
		if err := b.watcher.Close(); err != nil {
			b.logger.Error("failed to close config watcher", slog.String("error", err.Error()))
		}
	}
	if err := b.store.Close(); err != nil {
		b.logger.Error("failed to close storage", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if b.shutdownTracer != nil {
		if err := b.shutdownTracer(ctx); err != nil {
			b.logger.Error("failed to flush traces", slog.String("error", err.Error()))
		}
	}

	b.logger.Info("bridge shutdown complete")
	return errors.Join(errs...)
}
