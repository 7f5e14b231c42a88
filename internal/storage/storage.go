// Package storage defines the persistence sink for translated events.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nugen/evgb/internal/simb"
)

var (
	// ErrNotFound is returned when no event has the requested id.
	ErrNotFound = errors.New("event not found")
	// ErrInvalidEvent is returned for an event missing its id or truth records.
	ErrInvalidEvent = errors.New("invalid event")
)

// EventTruth is the persisted truth of one generated event. MCFlux is nil for
// events generated without a flux driver.
type EventTruth struct {
	ID        string        `json:"id"`
	Run       int           `json:"run"`
	Event     int           `json:"event"`
	MCTruth   *simb.MCTruth `json:"mctruth"`
	GTruth    *simb.GTruth  `json:"gtruth"`
	MCFlux    *simb.MCFlux  `json:"mcflux,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Validate checks that e can be stored.
func (e *EventTruth) Validate() error {
	switch {
	case e == nil:
		return ErrInvalidEvent
	case e.ID == "":
		return errors.Join(ErrInvalidEvent, errors.New("missing id"))
	case e.MCTruth == nil || e.GTruth == nil:
		return errors.Join(ErrInvalidEvent, errors.New("missing truth records"))
	}
	return nil
}

// Summary returns the listing view of e.
func (e *EventTruth) Summary() *EventSummary {
	s := &EventSummary{
		ID:        e.ID,
		Run:       e.Run,
		Event:     e.Event,
		CreatedAt: e.CreatedAt,
	}
	if e.MCTruth != nil {
		s.NParticles = e.MCTruth.NParticles()
		s.CCNC = e.MCTruth.Neutrino.CCNC
		s.Mode = e.MCTruth.Neutrino.Mode
		s.InteractionType = e.MCTruth.Neutrino.InteractionType
	}
	return s
}

// EventSummary is a lightweight view for listing events.
type EventSummary struct {
	ID              string               `json:"id" db:"id"`
	Run             int                  `json:"run" db:"run"`
	Event           int                  `json:"event" db:"event"`
	CCNC            simb.CurrentType     `json:"ccnc" db:"ccnc"`
	Mode            simb.InteractionMode `json:"mode" db:"mode"`
	InteractionType int                  `json:"interaction_type" db:"interaction_type"`
	NParticles      int                  `json:"n_particles" db:"n_particles"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
}

// ListOptions filters and pages event listings.
type ListOptions struct {
	// Run restricts the listing to one run when non-nil
	Run    *int
	Limit  int
	Offset int
}

// DefaultListLimit applies when ListOptions.Limit is zero.
const DefaultListLimit = 100

// Sink accepts translated events.
type Sink interface {
	SaveEvent(ctx context.Context, e *EventTruth) error
}

// TruthStore persists and serves translated events.
type TruthStore interface {
	Sink
	GetEvent(ctx context.Context, id string) (*EventTruth, error)
	// ListEvents returns summaries newest first.
	ListEvents(ctx context.Context, opts ListOptions) ([]*EventSummary, error)
	DeleteEvent(ctx context.Context, id string) error
	Close() error
}

// Tee returns a sink saving to every sink in order, stopping at the first
// error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) SaveEvent(ctx context.Context, e *EventTruth) error {
	for _, s := range t {
		if err := s.SaveEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
