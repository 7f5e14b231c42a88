package genie

import (
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/units"
)

// Status is the particle status code carried on the generator stack.
type Status int

const (
	StatusUndefined                Status = -1
	StatusInitialState             Status = 0
	StatusStableFinalState         Status = 1
	StatusIntermediateState        Status = 2
	StatusDecayedState             Status = 3
	StatusCorrelatedNucleon        Status = 10
	StatusNucleonTarget            Status = 11
	StatusDISPreFragmHadronicState Status = 12
	StatusPreDecayResonantState    Status = 13
	StatusHadronInTheNucleus       Status = 14
	StatusFinalStateNuclearRemnant Status = 15
	StatusNucleonClusterTarget     Status = 16
)

// Particle is one entry of the generator particle stack. Momentum is in GeV,
// position is relative to the struck nucleus.
type Particle struct {
	Pdg           int                   `json:"pdg"`
	Status        Status                `json:"status"`
	FirstMother   int                   `json:"first_mother"`
	LastMother    int                   `json:"last_mother"`
	FirstDaughter int                   `json:"first_daughter"`
	LastDaughter  int                   `json:"last_daughter"`
	P4            lorentz.Vec4          `json:"p4"`
	X4            units.NucleusPosition `json:"x4"`
	Polarization  *lorentz.Vec3         `json:"polarization,omitempty"`
	RescatterCode int                   `json:"rescatter_code"`
}

// NewParticle returns a particle with no mother or daughter links.
func NewParticle(pdg int, status Status, p4 lorentz.Vec4, x4 units.NucleusPosition) Particle {
	return Particle{
		Pdg:           pdg,
		Status:        status,
		FirstMother:   -1,
		LastMother:    -1,
		FirstDaughter: -1,
		LastDaughter:  -1,
		P4:            p4,
		X4:            x4,
		RescatterCode: -1,
	}
}

// PolarizationIsSet reports whether the polarization was explicitly assigned.
func (p *Particle) PolarizationIsSet() bool { return p.Polarization != nil }

// SetPolarization assigns a copy of v as the particle polarization.
func (p *Particle) SetPolarization(v lorentz.Vec3) {
	p.Polarization = &v
}
