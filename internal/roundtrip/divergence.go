package roundtrip

import (
	"fmt"
	"math"
	"slices"

	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/simb"
)

// relTolerance is the relative difference below which two recomputed
// floating-point values are considered equal.
const relTolerance = 1e-9

// Divergence describes a difference between the first translation of an event
// and the translation of its reconstruction.
type Divergence struct {
	// Type categorizes the kind of divergence
	Type DivergenceType `json:"type"`

	// Path names the differing field, e.g. "particles[3].pdg"
	Path string `json:"path"`

	// Description provides a human-readable explanation
	Description string `json:"description"`

	Primary any `json:"primary,omitempty"`
	Replay  any `json:"replay,omitempty"`
}

// DivergenceType categorizes a divergence.
type DivergenceType string

const (
	// DivergenceValueMismatch indicates different values for the same field
	DivergenceValueMismatch DivergenceType = "value_mismatch"

	// DivergenceArrayLength indicates different list lengths
	DivergenceArrayLength DivergenceType = "array_length"

	// DivergenceNullMismatch indicates a value set on one side only
	DivergenceNullMismatch DivergenceType = "null_mismatch"
)

type comparer struct {
	divs []Divergence
}

func (c *comparer) mismatch(path string, primary, replay any) {
	c.divs = append(c.divs, Divergence{
		Type:        DivergenceValueMismatch,
		Path:        path,
		Primary:     primary,
		Replay:      replay,
		Description: fmt.Sprintf("%s differs: primary=%v, replay=%v", path, primary, replay),
	})
}

func (c *comparer) ints(path string, a, b int) {
	if a != b {
		c.mismatch(path, a, b)
	}
}

func (c *comparer) bools(path string, a, b bool) {
	if a != b {
		c.mismatch(path, a, b)
	}
}

func (c *comparer) floats(path string, a, b float64) {
	if !closeTo(a, b) {
		c.mismatch(path, a, b)
	}
}

func (c *comparer) vec4(path string, a, b lorentz.Vec4) {
	c.floats(path+".x", a.X, b.X)
	c.floats(path+".y", a.Y, b.Y)
	c.floats(path+".z", a.Z, b.Z)
	c.floats(path+".t", a.T, b.T)
}

func (c *comparer) opt(path string, a, b simb.OptFloat) {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok != bok:
		c.divs = append(c.divs, Divergence{
			Type:        DivergenceNullMismatch,
			Path:        path,
			Primary:     fmt.Sprintf("set=%v", aok),
			Replay:      fmt.Sprintf("set=%v", bok),
			Description: path + " is set on one side only",
		})
	case aok:
		c.floats(path, av, bv)
	}
}

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= relTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// CompareGTruth compares the GTruth fields that reconstruction carries
// through unchanged. Target and initial-state four-momenta are rebuilt from
// the particle list and species table and are not compared.
func CompareGTruth(primary, replay *simb.GTruth) []Divergence {
	var c comparer
	a, b := primary, replay

	c.floats("gtruth.weight", a.Weight, b.Weight)
	c.floats("gtruth.probability", a.Probability, b.Probability)
	c.floats("gtruth.xsec", a.XSec, b.XSec)
	c.floats("gtruth.diff_xsec", a.DiffXSec, b.DiffXSec)
	c.ints("gtruth.phase_space", a.GPhaseSpace, b.GPhaseSpace)
	c.floats("gtruth.vertex.x", float64(a.Vertex.X), float64(b.Vertex.X))
	c.floats("gtruth.vertex.y", float64(a.Vertex.Y), float64(b.Vertex.Y))
	c.floats("gtruth.vertex.z", float64(a.Vertex.Z), float64(b.Vertex.Z))
	c.floats("gtruth.vertex.t", float64(a.Vertex.T), float64(b.Vertex.T))

	c.ints("gtruth.gint", a.Gint, b.Gint)
	c.ints("gtruth.gscatter", a.Gscatter, b.Gscatter)
	c.bools("gtruth.is_charm", a.IsCharm, b.IsCharm)
	c.ints("gtruth.charm_hadron_pdg", a.CharmHadronPdg, b.CharmHadronPdg)
	c.bools("gtruth.is_strange", a.IsStrange, b.IsStrange)
	c.ints("gtruth.strange_hadron_pdg", a.StrangeHadronPdg, b.StrangeHadronPdg)
	c.ints("gtruth.res_num", a.ResNum, b.ResNum)
	c.ints("gtruth.decay_mode", a.DecayMode, b.DecayMode)
	c.ints("gtruth.num_pi_plus", a.NumPiPlus, b.NumPiPlus)
	c.ints("gtruth.num_pi_minus", a.NumPiMinus, b.NumPiMinus)
	c.ints("gtruth.num_pi0", a.NumPi0, b.NumPi0)
	c.ints("gtruth.num_proton", a.NumProton, b.NumProton)
	c.ints("gtruth.num_neutron", a.NumNeutron, b.NumNeutron)
	c.ints("gtruth.num_single_gammas", a.NumSingleGammas, b.NumSingleGammas)
	c.ints("gtruth.num_rho0", a.NumRho0, b.NumRho0)
	c.ints("gtruth.num_rho_plus", a.NumRhoPlus, b.NumRhoPlus)
	c.ints("gtruth.num_rho_minus", a.NumRhoMinus, b.NumRhoMinus)
	c.ints("gtruth.final_quark_pdg", a.FinalQuarkPdg, b.FinalQuarkPdg)
	c.ints("gtruth.final_lepton_pdg", a.FinalLeptonPdg, b.FinalLeptonPdg)

	c.opt("gtruth.gQ2", a.GQ2, b.GQ2)
	c.opt("gtruth.gq2", a.Gq2, b.Gq2)
	c.opt("gtruth.gW", a.GW, b.GW)
	c.opt("gtruth.gT", a.GT, b.GT)
	c.opt("gtruth.gX", a.GX, b.GX)
	c.opt("gtruth.gY", a.GY, b.GY)
	c.opt("gtruth.gW_run", a.GWrun, b.GWrun)
	c.vec4("gtruth.fs_had_syst_p4", a.FSHadSystP4, b.FSHadSystP4)
	c.ints("gtruth.probe_pdg", a.ProbePDG, b.ProbePDG)
	return c.divs
}

// CompareParticles compares two particle lists entry by entry. Detector
// positions depend on the spill offset of each translation and are not
// compared.
func CompareParticles(primary, replay []simb.MCParticle) []Divergence {
	var c comparer
	if len(primary) != len(replay) {
		c.divs = append(c.divs, Divergence{
			Type:        DivergenceArrayLength,
			Path:        "particles",
			Primary:     len(primary),
			Replay:      len(replay),
			Description: fmt.Sprintf("particle count differs: primary=%d, replay=%d", len(primary), len(replay)),
		})
	}

	for i := range min(len(primary), len(replay)) {
		a, b := &primary[i], &replay[i]
		path := fmt.Sprintf("particles[%d]", i)
		c.ints(path+".pdg", a.Pdg, b.Pdg)
		c.ints(path+".status", a.Status, b.Status)
		c.ints(path+".mother", a.Mother, b.Mother)
		c.ints(path+".rescatter", a.Rescatter, b.Rescatter)
		c.floats(path+".mass", a.Mass, b.Mass)
		c.vec4(path+".momentum", a.Momentum(), b.Momentum())
		c.floats(path+".gvtx.x", float64(a.Gvtx.X), float64(b.Gvtx.X))
		c.floats(path+".gvtx.y", float64(a.Gvtx.Y), float64(b.Gvtx.Y))
		c.floats(path+".gvtx.z", float64(a.Gvtx.Z), float64(b.Gvtx.Z))
		c.floats(path+".gvtx.t", float64(a.Gvtx.T), float64(b.Gvtx.T))
		if a.Polarization != b.Polarization {
			c.mismatch(path+".polarization", a.Polarization, b.Polarization)
		}
	}
	return c.divs
}

// CompareNeutrino compares the interaction summary of two MCTruth records.
// The target code is rebuilt from Z and A and is not compared.
func CompareNeutrino(primary, replay *simb.MCTruth) []Divergence {
	var c comparer
	if primary.NeutrinoSet != replay.NeutrinoSet {
		c.divs = append(c.divs, Divergence{
			Type:        DivergenceNullMismatch,
			Path:        "neutrino",
			Primary:     fmt.Sprintf("set=%v", primary.NeutrinoSet),
			Replay:      fmt.Sprintf("set=%v", replay.NeutrinoSet),
			Description: "neutrino summary is set on one side only",
		})
		return c.divs
	}

	a, b := &primary.Neutrino, &replay.Neutrino
	c.ints("neutrino.ccnc", int(a.CCNC), int(b.CCNC))
	c.ints("neutrino.mode", int(a.Mode), int(b.Mode))
	c.ints("neutrino.interaction_type", a.InteractionType, b.InteractionType)
	c.ints("neutrino.hit_nuc", a.HitNuc, b.HitNuc)
	c.ints("neutrino.hit_quark", a.HitQuark, b.HitQuark)
	c.floats("neutrino.w", a.W, b.W)
	c.floats("neutrino.x", a.X, b.X)
	c.floats("neutrino.y", a.Y, b.Y)
	c.floats("neutrino.q_sqr", a.QSqr, b.QSqr)
	c.floats("neutrino.pt", a.Pt, b.Pt)
	c.floats("neutrino.theta", a.Theta, b.Theta)
	return c.divs
}

// Types returns the distinct divergence types in divs, sorted.
func Types(divs []Divergence) []string {
	var types []string
	for _, d := range divs {
		if !slices.Contains(types, string(d.Type)) {
			types = append(types, string(d.Type))
		}
	}
	slices.Sort(types)
	return types
}
