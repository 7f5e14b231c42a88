package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nugen/evgb/internal/codec/mcflux"
	"github.com/nugen/evgb/internal/genie"
)

// ErrMissingRecord is returned for an event without generator record.
var ErrMissingRecord = errors.New("event has no generator record")

// GeneratedEvent is one generator output. ID is assigned by the processor when
// empty.
type GeneratedEvent struct {
	ID     string             `json:"id,omitempty"`
	Run    int                `json:"run"`
	Event  int                `json:"event"`
	Record *genie.EventRecord `json:"record"`
	Flux   *mcflux.Envelope   `json:"flux,omitempty"`
}

// Decoder reads JSON-lines events.
type Decoder struct {
	dec *json.Decoder
	n   int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next returns the next event, or io.EOF after the last one.
func (d *Decoder) Next() (*GeneratedEvent, error) {
	var ev GeneratedEvent
	if err := d.dec.Decode(&ev); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &StageError{Stage: StageDecode, Index: d.n, Err: err}
	}
	d.n++
	if ev.Record == nil {
		return nil, &StageError{Stage: StageDecode, Index: d.n - 1, Err: ErrMissingRecord}
	}
	return &ev, nil
}

// DecodeEvents reads every event from r.
func DecodeEvents(r io.Reader) ([]*GeneratedEvent, error) {
	d := NewDecoder(r)
	var events []*GeneratedEvent
	for {
		ev, err := d.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}

// EncodeEvents writes events to w as JSON lines.
func EncodeEvents(w io.Writer, events []*GeneratedEvent) error {
	enc := json.NewEncoder(w)
	for i, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encode event %d: %w", i, err)
		}
	}
	return nil
}

// Stage names the pipeline step an error occurred in.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageTranslate Stage = "translate"
	StageSave      Stage = "save"
)

// StageError is returned when an event fails in one stage.
type StageError struct {
	Stage Stage
	Index int // position in the input, -1 when not known
	Err   error
}

func (e *StageError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s event %d: %v", e.Stage, e.Index, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
