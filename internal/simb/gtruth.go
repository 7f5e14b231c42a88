package simb

import (
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/units"
)

// GTruth is the generator-level truth kept next to MCTruth so that the
// interaction summary can be rebuilt offline.
type GTruth struct {
	// process
	Gint     int `json:"gint"`
	Gscatter int `json:"gscatter"`

	// event
	Weight      float64           `json:"weight"`
	Probability float64           `json:"probability"`
	XSec        float64           `json:"xsec"`
	DiffXSec    float64           `json:"diff_xsec"`
	GPhaseSpace int               `json:"gphase_space"`
	Vertex      units.LabPosition `json:"vertex"`

	// exclusive final state, before intranuclear rescattering
	IsCharm          bool `json:"is_charm"`
	CharmHadronPdg   int  `json:"charm_hadron_pdg"`
	IsStrange        bool `json:"is_strange"`
	StrangeHadronPdg int  `json:"strange_hadron_pdg"`
	ResNum           int  `json:"res_num"`
	DecayMode        int  `json:"decay_mode"`
	NumPiPlus        int  `json:"num_pi_plus"`
	NumPiMinus       int  `json:"num_pi_minus"`
	NumPi0           int  `json:"num_pi0"`
	NumProton        int  `json:"num_proton"`
	NumNeutron       int  `json:"num_neutron"`
	NumSingleGammas  int  `json:"num_single_gammas"`
	NumRho0          int  `json:"num_rho0"`
	NumRhoPlus       int  `json:"num_rho_plus"`
	NumRhoMinus      int  `json:"num_rho_minus"`
	FinalQuarkPdg    int  `json:"final_quark_pdg"`
	FinalLeptonPdg   int  `json:"final_lepton_pdg"`

	// kinematics as selected by the generator; GWrun is the running W
	GQ2   OptFloat `json:"gQ2"`
	Gq2   OptFloat `json:"gq2"`
	GW    OptFloat `json:"gW"`
	GT    OptFloat `json:"gT"`
	GX    OptFloat `json:"gX"`
	GY    OptFloat `json:"gY"`
	GWrun OptFloat `json:"gWrun"`

	FSHadSystP4 lorentz.Vec4 `json:"fs_had_syst_p4"`

	// initial state
	ProbePDG   int               `json:"probe_pdg"`
	ProbeP4    lorentz.Vec4      `json:"probe_p4"`
	TgtP4      lorentz.Vec4      `json:"tgt_p4"`
	IsSeaQuark bool              `json:"is_sea_quark"`
	HitNucP4   lorentz.Vec4      `json:"hit_nuc_p4"`
	HitNucPos  units.Femtometers `json:"hit_nuc_pos"`
	TgtZ       int               `json:"tgt_z"`
	TgtA       int               `json:"tgt_a"`
	TgtPDG     int               `json:"tgt_pdg"`
}

// NewGTruth returns a reset record.
func NewGTruth() *GTruth {
	g := &GTruth{}
	g.Reset()
	return g
}

// Reset restores every field to its unfilled default.
func (g *GTruth) Reset() {
	*g = GTruth{
		Gint:            -1,
		Gscatter:        -1,
		GPhaseSpace:     -1,
		ResNum:          -1,
		DecayMode:       -1,
		NumPiPlus:       -1,
		NumPiMinus:      -1,
		NumPi0:          -1,
		NumProton:       -1,
		NumNeutron:      -1,
		NumSingleGammas: -1,
		NumRho0:         -1,
		NumRhoPlus:      -1,
		NumRhoMinus:     -1,
		ProbePDG:        -1,
	}
}
