package genie

import "github.com/nugen/evgb/internal/pdg"

const pdgEta = 221

// NuanceReactionCode maps the record's interaction onto the NUANCE reaction
// code table. Unclassified interactions map to 0.
func NuanceReactionCode(r *EventRecord) int {
	if r == nil || r.Summary == nil {
		return 0
	}
	proc := r.Summary.ProcInfo

	switch {
	case proc.IsQuasiElastic() && proc.IsWeakCC():
		return 1
	case proc.IsQuasiElastic() && proc.IsWeakNC():
		return 2
	case proc.IsDeepInelastic() && proc.IsWeakCC():
		return 91
	case proc.IsDeepInelastic() && proc.IsWeakNC():
		return 92
	case proc.IsCoherentProduction() && proc.IsWeakNC():
		return 96
	case proc.IsCoherentProduction() && proc.IsWeakCC():
		return 97
	case proc.IsNuElectronElastic():
		return 98
	case proc.IsInverseMuDecay():
		return 99
	case proc.IsResonant():
		return resonantChannel(r)
	}
	return 0
}

type hadronCounts struct {
	p, n, pi0, piPlus, piMinus int
}

func (c hadronCounts) is(p, n, pi0, piPlus, piMinus int) bool {
	return c == hadronCounts{p, n, pi0, piPlus, piMinus}
}

// resonantChannel identifies the single-pion resonant channels 3-16 from the
// hadrons leaving the primary vertex.
func resonantChannel(r *EventRecord) int {
	state := r.Summary.InitState
	proc := r.Summary.ProcInfo
	nuclear := state.Tgt.IsNucleus()

	var c hadronCounts
	for i := range r.Particles {
		p := &r.Particles[i]

		var count bool
		switch {
		case nuclear:
			count = p.Status == StatusHadronInTheNucleus
		case p.Status == StatusDecayedState:
			count = p.Pdg == pdg.Pi0 || p.Pdg == pdgEta
		case p.Status == StatusStableFinalState:
			mother := r.Particle(p.FirstMother)
			count = mother == nil || (mother.Pdg != pdg.Pi0 && mother.Pdg != pdgEta)
		}
		if !count {
			continue
		}

		switch p.Pdg {
		case pdg.Proton:
			c.p++
		case pdg.Neutron:
			c.n++
		case pdg.Pi0:
			c.pi0++
		case pdg.PiPlus:
			c.piPlus++
		case pdg.PiMinus:
			c.piMinus++
		}
	}

	nu := pdg.IsNeutrino(state.ProbePdg)
	nubar := pdg.IsAntiNeutrino(state.ProbePdg)
	onP := state.Tgt.HitNucPdg == pdg.Proton
	onN := state.Tgt.HitNucPdg == pdg.Neutron
	cc, nc := proc.IsWeakCC(), proc.IsWeakNC()

	switch {
	case nu && cc && onP && c.is(1, 0, 0, 1, 0):
		return 3
	case nu && cc && onN && c.is(1, 0, 1, 0, 0):
		return 4
	case nu && cc && onN && c.is(0, 1, 0, 1, 0):
		return 5
	case nu && nc && onP && c.is(1, 0, 1, 0, 0):
		return 6
	case nu && nc && onP && c.is(0, 1, 0, 1, 0):
		return 7
	case nu && nc && onN && c.is(0, 1, 1, 0, 0):
		return 8
	case nu && nc && onN && c.is(1, 0, 0, 0, 1):
		return 9
	case nubar && cc && onP && c.is(1, 0, 0, 0, 1):
		return 10
	case nubar && cc && onP && c.is(0, 1, 1, 0, 0):
		return 11
	case nubar && cc && onN && c.is(0, 1, 0, 0, 1):
		return 12
	case nubar && nc && onP && c.is(1, 0, 1, 0, 0):
		return 13
	case nubar && nc && onP && c.is(0, 1, 0, 1, 0):
		return 14
	case nubar && nc && onN && c.is(0, 1, 1, 0, 0):
		return 15
	case nubar && nc && onN && c.is(1, 0, 0, 0, 1):
		return 16
	}
	return 0
}
