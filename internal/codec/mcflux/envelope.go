package mcflux

import (
	"errors"
	"fmt"
)

// Envelope kinds.
const (
	KindNuMI    = "numi"
	KindSimple  = "simple"
	KindDk2Nu   = "dk2nu"
	KindBlender = "blender"
	KindOpaque  = "opaque"
)

var (
	// ErrUnknownDriverKind is returned for an envelope kind with no driver.
	ErrUnknownDriverKind = errors.New("unknown flux driver kind")
	// ErrMissingPayload is returned when an envelope lacks the payload its
	// kind requires.
	ErrMissingPayload = errors.New("flux envelope missing payload")
)

// Envelope is the serialized form of a Driver. Exactly one payload matching
// Kind is expected; a blender carries its wrapped driver in Inner.
type Envelope struct {
	Kind   string        `json:"kind"`
	NuMI   *NuMIDriver   `json:"numi,omitempty"`
	Simple *SimpleDriver `json:"simple,omitempty"`
	Dk2Nu  *Dk2NuDriver  `json:"dk2nu,omitempty"`
	Inner  *Envelope     `json:"inner,omitempty"`
	Name   string        `json:"name,omitempty"`
}

// Driver decodes the envelope.
func (e *Envelope) Driver() (Driver, error) {
	switch e.Kind {
	case KindNuMI:
		if e.NuMI == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayload, e.Kind)
		}
		return e.NuMI, nil
	case KindSimple:
		if e.Simple == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayload, e.Kind)
		}
		return e.Simple, nil
	case KindDk2Nu:
		if e.Dk2Nu == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayload, e.Kind)
		}
		return e.Dk2Nu, nil
	case KindBlender:
		if e.Inner == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayload, e.Kind)
		}
		inner, err := e.Inner.Driver()
		if err != nil {
			return nil, fmt.Errorf("blender: %w", err)
		}
		return &Blender{Inner: inner}, nil
	case KindOpaque:
		return &Opaque{Name: e.Name}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriverKind, e.Kind)
}

// Wrap encodes d as an envelope.
func Wrap(d Driver) (*Envelope, error) {
	switch drv := d.(type) {
	case *NuMIDriver:
		return &Envelope{Kind: KindNuMI, NuMI: drv}, nil
	case *SimpleDriver:
		return &Envelope{Kind: KindSimple, Simple: drv}, nil
	case *Dk2NuDriver:
		return &Envelope{Kind: KindDk2Nu, Dk2Nu: drv}, nil
	case *Blender:
		inner, err := Wrap(drv.Inner)
		if err != nil {
			return nil, fmt.Errorf("blender: %w", err)
		}
		return &Envelope{Kind: KindBlender, Inner: inner}, nil
	case *Opaque:
		return &Envelope{Kind: KindOpaque, Name: drv.Name}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownDriverKind, d)
}
