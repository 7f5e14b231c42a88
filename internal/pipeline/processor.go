package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nugen/evgb/internal/codec/gtruth"
	"github.com/nugen/evgb/internal/codec/mcflux"
	"github.com/nugen/evgb/internal/codec/mctruth"
	"github.com/nugen/evgb/internal/metrics"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/storage"
	"github.com/nugen/evgb/internal/telemetry"
	"github.com/nugen/evgb/internal/units"
)

// Options control how events are translated.
type Options struct {
	// Translation carries the generator metadata and vertex time flag. Its
	// Offset is replaced by the spill offset of each event.
	Translation mctruth.Options

	// Each event is shifted by GlobalTimeOffset + U(0,1)*RandomTimeOffset.
	GlobalTimeOffset units.Nanoseconds
	RandomTimeOffset units.Nanoseconds

	// Workers bounds ProcessBatch concurrency. Zero means one.
	Workers int
}

// Processor translates and saves events. It is safe for concurrent use.
type Processor struct {
	codec  *mctruth.Codec
	flux   *mcflux.Translator
	sink   storage.Sink
	m      *metrics.Metrics
	logger *slog.Logger
	tracer trace.Tracer
	opts   atomic.Pointer[Options]

	uniform func() float64
	newID   func() string
	now     func() time.Time
}

// NewProcessor returns a processor saving to sink. m may be nil.
func NewProcessor(species pdg.Table, sink storage.Sink, m *metrics.Metrics, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		codec:   mctruth.New(species, logger),
		flux:    mcflux.NewTranslator(logger),
		sink:    sink,
		m:       m,
		logger:  logger,
		tracer:  telemetry.Tracer(),
		uniform: rand.Float64,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	p.opts.Store(&opts)
	return p
}

// SetOptions replaces the options used for subsequent events.
func (p *Processor) SetOptions(opts Options) {
	p.opts.Store(&opts)
}

// Options returns the current options.
func (p *Processor) Options() Options {
	return *p.opts.Load()
}

// SpillOffset draws the time shift for one event.
func (p *Processor) SpillOffset() units.Nanoseconds {
	opts := p.opts.Load()
	return opts.GlobalTimeOffset + units.Nanoseconds(p.uniform())*opts.RandomTimeOffset
}

// Translate builds the truth records of ev without saving them.
func (p *Processor) Translate(ctx context.Context, ev *GeneratedEvent) (*storage.EventTruth, error) {
	_, span := p.tracer.Start(ctx, "pipeline.translate", trace.WithAttributes(
		attribute.Int("evgb.run", ev.Run),
		attribute.Int("evgb.event", ev.Event),
	))
	defer span.End()

	if ev.Record == nil {
		span.SetStatus(codes.Error, ErrMissingRecord.Error())
		p.failed(StageTranslate)
		return nil, &StageError{Stage: StageTranslate, Index: -1, Err: ErrMissingRecord}
	}

	start := time.Now()
	opts := p.opts.Load().Translation
	opts.Offset = mctruth.SpillOffset(p.SpillOffset())

	out := &storage.EventTruth{
		ID:        ev.ID,
		Run:       ev.Run,
		Event:     ev.Event,
		MCTruth:   &simb.MCTruth{},
		GTruth:    &simb.GTruth{},
		CreatedAt: p.now().UTC(),
	}
	if out.ID == "" {
		out.ID = p.newID()
	}

	p.codec.Fill(ev.Record, opts, out.MCTruth)
	gtruth.Fill(ev.Record, out.GTruth)

	if ev.Flux != nil {
		drv, err := ev.Flux.Driver()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.failed(StageTranslate)
			return nil, &StageError{Stage: StageTranslate, Index: -1, Err: err}
		}
		out.MCFlux = simb.NewMCFlux()
		if !p.flux.Fill(drv, out.MCFlux) && p.m != nil {
			p.m.FluxUnsupported.Inc()
		}
	}

	mode := out.MCTruth.Neutrino.Mode.String()
	span.SetAttributes(
		attribute.String("evgb.id", out.ID),
		attribute.String("evgb.mode", mode),
		attribute.Int("evgb.particles", out.MCTruth.NParticles()),
	)
	if p.m != nil {
		p.m.EventsTranslated.WithLabelValues(mode).Inc()
		metrics.ObserveSince(p.m.TranslateSeconds, start)
	}
	return out, nil
}

// Process translates ev and saves the result.
func (p *Processor) Process(ctx context.Context, ev *GeneratedEvent) (*storage.EventTruth, error) {
	out, err := p.Translate(ctx, ev)
	if err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.save", trace.WithAttributes(attribute.String("evgb.id", out.ID)))
	defer span.End()

	start := time.Now()
	if err := p.sink.SaveEvent(ctx, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.failed(StageSave)
		return nil, &StageError{Stage: StageSave, Index: -1, Err: err}
	}
	if p.m != nil {
		metrics.ObserveSince(p.m.SaveSeconds, start)
	}

	p.logger.Debug("event saved",
		slog.String("id", out.ID),
		slog.Int("run", out.Run),
		slog.Int("event", out.Event))
	return out, nil
}

// ProcessBatch processes events concurrently and returns the results in
// input order. It stops at the first failure or when ctx is done; events
// already saved stay saved.
func (p *Processor) ProcessBatch(ctx context.Context, events []*GeneratedEvent) ([]*storage.EventTruth, error) {
	workers := p.opts.Load().Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]*storage.EventTruth, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, ev := range events {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.Process(gctx, ev)
			if err != nil {
				var se *StageError
				if errors.As(err, &se) {
					se.Index = i
				}
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) failed(stage Stage) {
	if p.m != nil {
		p.m.EventsFailed.WithLabelValues(string(stage)).Inc()
	}
}
