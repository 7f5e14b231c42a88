// Package genie models the generator's in-memory event record: the ordered
// particle stack, the interaction summary and the event-level bookkeeping.
//
// The record is the read-only input of the forward codecs and the output of the
// reconstructor. Lookups follow the generator's slot conventions: the probe sits
// in slot 0 and the target in slot 0 or 1.
package genie

import (
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/units"
)

// EventRecord is one generated interaction.
type EventRecord struct {
	Particles    []Particle        `json:"particles"`
	Summary      *Interaction      `json:"summary,omitempty"`
	Vertex       units.LabPosition `json:"vertex"`
	Weight       float64           `json:"weight"`
	Probability  float64           `json:"probability"`
	XSec         float64           `json:"xsec"`
	DiffXSec     float64           `json:"diff_xsec"`
	DiffXSecVars KinePhaseSpace    `json:"diff_xsec_vars"`
}

// NewEventRecord returns an empty record with unit weight.
func NewEventRecord() *EventRecord {
	return &EventRecord{Weight: 1, DiffXSecVars: PSUndefined}
}

// AddParticle appends p to the stack. Daughter links are not maintained.
func (r *EventRecord) AddParticle(p Particle) {
	r.Particles = append(r.Particles, p)
}

// AttachSummary hands ownership of in to the record.
func (r *EventRecord) AttachSummary(in *Interaction) { r.Summary = in }

// SetDiffXSec records the differential cross section and its phase space.
func (r *EventRecord) SetDiffXSec(xsec float64, ps KinePhaseSpace) {
	r.DiffXSec = xsec
	r.DiffXSecVars = ps
}

// Len returns the number of stack entries.
func (r *EventRecord) Len() int { return len(r.Particles) }

// Particle returns the entry at position i, or nil when out of range.
func (r *EventRecord) Particle(i int) *Particle {
	if i < 0 || i >= len(r.Particles) {
		return nil
	}
	return &r.Particles[i]
}

// ProbePosition returns the slot of the incoming probe, or -1.
func (r *EventRecord) ProbePosition() int {
	p := r.Particle(0)
	if p == nil || p.Status != StatusInitialState || pdg.IsIon(p.Pdg) {
		return -1
	}
	return 0
}

// Probe returns the incoming probe, or nil.
func (r *EventRecord) Probe() *Particle { return r.Particle(r.ProbePosition()) }

// TargetNucleusPosition returns the slot of the initial-state nucleus, or -1.
func (r *EventRecord) TargetNucleusPosition() int {
	for i := 0; i < 2; i++ {
		p := r.Particle(i)
		if p != nil && p.Status == StatusInitialState && pdg.IsIon(p.Pdg) {
			return i
		}
	}
	return -1
}

// TargetNucleus returns the initial-state nucleus, or nil.
func (r *EventRecord) TargetNucleus() *Particle {
	return r.Particle(r.TargetNucleusPosition())
}

// HitNucleonPosition returns the slot of the struck nucleon, or -1. A free
// nucleon target sits in slot 1; inside a nucleus the first nucleon flagged as
// the nucleon target is used.
func (r *EventRecord) HitNucleonPosition() int {
	if p := r.Particle(1); p != nil && p.Status == StatusInitialState && pdg.IsNucleon(p.Pdg) {
		return 1
	}
	for i := range r.Particles {
		p := &r.Particles[i]
		if p.Status == StatusNucleonTarget && pdg.IsNucleon(p.Pdg) {
			return i
		}
	}
	return -1
}

// HitNucleon returns the struck nucleon, or nil.
func (r *EventRecord) HitNucleon() *Particle {
	return r.Particle(r.HitNucleonPosition())
}

// FinalStatePrimaryLeptonPosition returns the slot of the first lepton produced
// directly by the probe, or -1.
func (r *EventRecord) FinalStatePrimaryLeptonPosition() int {
	probe := r.ProbePosition()
	if probe < 0 {
		return -1
	}
	for i := range r.Particles {
		p := &r.Particles[i]
		if i != probe && p.FirstMother == probe && pdg.IsLepton(p.Pdg) {
			return i
		}
	}
	return -1
}

// FinalStatePrimaryLepton returns the outgoing primary lepton, or nil.
func (r *EventRecord) FinalStatePrimaryLepton() *Particle {
	return r.Particle(r.FinalStatePrimaryLeptonPosition())
}
