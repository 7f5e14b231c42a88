package mctruth

import (
	"math"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
)

// ProcessFlags holds one flag per process predicate used for classification.
type ProcessFlags struct {
	QuasiElastic       bool
	DeepInelastic      bool
	Resonant           bool
	CoherentProduction bool
	CoherentElastic    bool
	ElectronScattering bool
	NuElectronElastic  bool
	InverseMuDecay     bool
	IMDAnnihilation    bool
	InverseBetaDecay   bool
	GlashowResonance   bool
	AMNuGamma          bool
	MEC                bool
	Diffractive        bool
	EM                 bool
	WeakMix            bool
	WeakNC             bool
}

// FlagsFromProcess evaluates every predicate of p.
func FlagsFromProcess(p genie.ProcessInfo) ProcessFlags {
	return ProcessFlags{
		QuasiElastic:       p.IsQuasiElastic(),
		DeepInelastic:      p.IsDeepInelastic(),
		Resonant:           p.IsResonant(),
		CoherentProduction: p.IsCoherentProduction(),
		CoherentElastic:    p.IsCoherentElastic(),
		ElectronScattering: p.IsElectronScattering(),
		NuElectronElastic:  p.IsNuElectronElastic(),
		InverseMuDecay:     p.IsInverseMuDecay(),
		IMDAnnihilation:    p.IsIMDAnnihilation(),
		InverseBetaDecay:   p.IsInverseBetaDecay(),
		GlashowResonance:   p.IsGlashowResonance(),
		AMNuGamma:          p.IsAMNuGamma(),
		MEC:                p.IsMEC(),
		Diffractive:        p.IsDiffractive(),
		EM:                 p.IsEM(),
		WeakMix:            p.IsWeakMix(),
		WeakNC:             p.IsWeakNC(),
	}
}

// modePriority is evaluated in order; the first predicate that holds wins.
var modePriority = []struct {
	holds func(ProcessFlags) bool
	mode  simb.InteractionMode
}{
	{func(f ProcessFlags) bool { return f.QuasiElastic }, simb.ModeQE},
	{func(f ProcessFlags) bool { return f.DeepInelastic }, simb.ModeDIS},
	{func(f ProcessFlags) bool { return f.Resonant }, simb.ModeRes},
	{func(f ProcessFlags) bool { return f.CoherentProduction }, simb.ModeCoh},
	{func(f ProcessFlags) bool { return f.CoherentElastic }, simb.ModeCohElastic},
	{func(f ProcessFlags) bool { return f.ElectronScattering }, simb.ModeElectronScattering},
	{func(f ProcessFlags) bool { return f.NuElectronElastic }, simb.ModeNuElectronElastic},
	{func(f ProcessFlags) bool { return f.InverseMuDecay }, simb.ModeInverseMuDecay},
	{func(f ProcessFlags) bool { return f.IMDAnnihilation }, simb.ModeIMDAnnihilation},
	{func(f ProcessFlags) bool { return f.InverseBetaDecay }, simb.ModeInverseBetaDecay},
	{func(f ProcessFlags) bool { return f.GlashowResonance }, simb.ModeGlashowResonance},
	{func(f ProcessFlags) bool { return f.AMNuGamma }, simb.ModeAMNuGamma},
	{func(f ProcessFlags) bool { return f.MEC }, simb.ModeMEC},
	{func(f ProcessFlags) bool { return f.Diffractive }, simb.ModeDiffractive},
	{func(f ProcessFlags) bool { return f.EM }, simb.ModeEM},
	{func(f ProcessFlags) bool { return f.WeakMix }, simb.ModeWeakMix},
}

// Mode returns the interaction mode for f, or ModeUnknown when no predicate
// holds.
func Mode(f ProcessFlags) simb.InteractionMode {
	for _, p := range modePriority {
		if p.holds(f) {
			return p.mode
		}
	}
	return simb.ModeUnknown
}

// Current returns NC for weak neutral current processes and CC otherwise.
func Current(f ProcessFlags) simb.CurrentType {
	if f.WeakNC {
		return simb.NC
	}
	return simb.CC
}

// Kinematics are the observables recomputed from the leptonic system.
// Quantities that cannot be formed are simb.Unavailable.
type Kinematics struct {
	Q2 float64
	Nu float64
	X  float64
	Y  float64
	W2 float64
	W  float64
}

// ComputeKinematics derives Q², ν, y and, when a nucleon was struck or the
// process is coherent, x, W² and W from the probe (k1) and outgoing lepton
// (k2) four-momenta. The nucleon is taken on shell and at rest.
func ComputeKinematics(k1, k2 lorentz.Vec4, hasHitNucleon, coherent bool) Kinematics {
	q := k1.Sub(k2)
	k := Kinematics{
		Q2: -q.M2(),
		Nu: q.E(),
		X:  simb.Unavailable,
		Y:  simb.Unavailable,
		W2: simb.Unavailable,
		W:  simb.Unavailable,
	}
	if k1.E() != 0 {
		k.Y = k.Nu / k1.E()
	}
	if !hasHitNucleon && !coherent {
		return k
	}

	const m = pdg.NucleonMass
	if k.Nu != 0 {
		k.X = 0.5 * k.Q2 / (m * k.Nu)
	}
	k.W2 = m*m + 2*m*k.Nu - k.Q2
	if k.W2 >= 0 {
		k.W = math.Sqrt(k.W2)
	}
	return k
}

// ClassifierInput is what Classify needs from an interaction.
type ClassifierInput struct {
	Flags      ProcessFlags
	Probe      lorentz.Vec4
	Lepton     lorentz.Vec4
	HitNucleon *lorentz.Vec4
	NuanceCode int
}

// Classification is the result of Classify.
type Classification struct {
	Current         simb.CurrentType
	Mode            simb.InteractionMode
	InteractionType int
	Kinematics
}

// Classify derives the current, mode, interaction type and experimental
// kinematics of an interaction.
func Classify(in ClassifierInput) Classification {
	return Classification{
		Current:         Current(in.Flags),
		Mode:            Mode(in.Flags),
		InteractionType: simb.NuanceOffset + in.NuanceCode,
		Kinematics:      ComputeKinematics(in.Probe, in.Lepton, in.HitNucleon != nil, in.Flags.CoherentProduction),
	}
}
