package genie

import (
	"errors"
	"fmt"

	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/units"
)

// ErrUnknownSpecies is returned when an initial state refers to a species the
// species table does not know.
var ErrUnknownSpecies = errors.New("unknown species")

// Target describes the struck target and the constituent that was hit.
type Target struct {
	Z              int               `json:"z"`
	A              int               `json:"a"`
	Pdg            int               `json:"pdg"`
	HitNucPdg      int               `json:"hit_nuc_pdg"`
	HitQrkPdg      int               `json:"hit_qrk_pdg"`
	HitSeaQrk      bool              `json:"hit_sea_qrk"`
	HitNucP4       lorentz.Vec4      `json:"hit_nuc_p4"`
	HitNucPosition units.Femtometers `json:"hit_nuc_position"`
}

// IsNucleus reports whether the target is a nucleus with more than one nucleon.
func (t Target) IsNucleus() bool { return t.A > 1 }

// IsFreeNucleon reports whether the target is a single nucleon.
func (t Target) IsFreeNucleon() bool { return t.A == 1 }

// InitialState is the probe plus target before the interaction.
type InitialState struct {
	ProbePdg int          `json:"probe_pdg"`
	Tgt      Target       `json:"tgt"`
	ProbeP4  lorentz.Vec4 `json:"probe_p4"`
	TgtP4    lorentz.Vec4 `json:"tgt_p4"`
}

// NewInitialState builds an initial state for a probe hitting a target at
// rest. Both species must be present in the species table.
func NewInitialState(tgtPdg, probePdg int, species pdg.Table) (InitialState, error) {
	if _, ok := species.Find(probePdg); !ok {
		return InitialState{}, fmt.Errorf("probe %d: %w", probePdg, ErrUnknownSpecies)
	}
	tgt, ok := species.Find(tgtPdg)
	if !ok {
		return InitialState{}, fmt.Errorf("target %d: %w", tgtPdg, ErrUnknownSpecies)
	}

	t := Target{Pdg: tgtPdg}
	switch {
	case pdg.IsIon(tgtPdg):
		t.Z, t.A = pdg.IonZ(tgtPdg), pdg.IonA(tgtPdg)
	case pdg.IsProton(tgtPdg):
		t.Z, t.A = 1, 1
	case pdg.IsNeutron(tgtPdg):
		t.Z, t.A = 0, 1
	}

	return InitialState{
		ProbePdg: probePdg,
		Tgt:      t,
		TgtP4:    lorentz.New4(0, 0, 0, tgt.Mass),
	}, nil
}

// XclsTag summarises the exclusive hadronic final state before any
// intranuclear rescattering. A zero pdg code means not set.
type XclsTag struct {
	IsCharm          bool `json:"is_charm"`
	CharmHadronPdg   int  `json:"charm_hadron_pdg"`
	IsStrange        bool `json:"is_strange"`
	StrangeHadronPdg int  `json:"strange_hadron_pdg"`
	Resonance        int  `json:"resonance"`
	DecayMode        int  `json:"decay_mode"`
	NProtons         int  `json:"n_protons"`
	NNeutrons        int  `json:"n_neutrons"`
	NPi0             int  `json:"n_pi0"`
	NPiPlus          int  `json:"n_pi_plus"`
	NPiMinus         int  `json:"n_pi_minus"`
	NSingleGammas    int  `json:"n_single_gammas"`
	NRho0            int  `json:"n_rho0"`
	NRhoPlus         int  `json:"n_rho_plus"`
	NRhoMinus        int  `json:"n_rho_minus"`
	FinalQuarkPdg    int  `json:"final_quark_pdg"`
	FinalLeptonPdg   int  `json:"final_lepton_pdg"`
}

// NoResonance marks an XclsTag without a resonance.
const NoResonance = -1

// NewXclsTag returns an empty tag.
func NewXclsTag() XclsTag {
	return XclsTag{Resonance: NoResonance, DecayMode: -1}
}

// SetCharm marks the event as charm production of hadron code.
func (x *XclsTag) SetCharm(code int) { x.IsCharm, x.CharmHadronPdg = true, code }

func (x *XclsTag) UnsetCharm() { x.IsCharm, x.CharmHadronPdg = false, 0 }

// SetStrange marks the event as strange production of hadron code.
func (x *XclsTag) SetStrange(code int) { x.IsStrange, x.StrangeHadronPdg = true, code }

func (x *XclsTag) UnsetStrange() { x.IsStrange, x.StrangeHadronPdg = false, 0 }

// Interaction is the summary attached to an event record.
type Interaction struct {
	InitState InitialState `json:"init_state"`
	ProcInfo  ProcessInfo  `json:"proc_info"`
	Kine      Kinematics   `json:"kine"`
	ExclTag   XclsTag      `json:"excl_tag"`
}

// NewInteraction returns a summary for state and proc with empty kinematics.
func NewInteraction(state InitialState, proc ProcessInfo) *Interaction {
	return &Interaction{InitState: state, ProcInfo: proc, ExclTag: NewXclsTag()}
}
