// Package simb holds the framework's persisted truth records: the particle
// list and neutrino summary (MCTruth), the generator bookkeeping (GTruth) and
// the flux ancestry (MCFlux). All records are plain data with JSON tags so
// that they can be stored and served as-is.
package simb

import (
	"maps"
	"slices"

	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/units"
)

// Unavailable marks a derived kinematic quantity that could not be computed.
const Unavailable = -1.0

// CurrentType distinguishes charged and neutral current interactions.
type CurrentType int

const (
	CC CurrentType = 0
	NC CurrentType = 1
)

func (c CurrentType) String() string {
	if c == NC {
		return "NC"
	}
	return "CC"
}

// InteractionMode is the framework's coarse interaction classification.
type InteractionMode int

const (
	ModeUnknown            InteractionMode = -1
	ModeQE                 InteractionMode = 0
	ModeRes                InteractionMode = 1
	ModeDIS                InteractionMode = 2
	ModeCoh                InteractionMode = 3
	ModeCohElastic         InteractionMode = 4
	ModeElectronScattering InteractionMode = 5
	ModeIMDAnnihilation    InteractionMode = 6
	ModeInverseBetaDecay   InteractionMode = 7
	ModeGlashowResonance   InteractionMode = 8
	ModeAMNuGamma          InteractionMode = 9
	ModeMEC                InteractionMode = 10
	ModeDiffractive        InteractionMode = 11
	ModeEM                 InteractionMode = 12
	ModeWeakMix            InteractionMode = 13
	ModeNuElectronElastic  InteractionMode = 1098
	ModeInverseMuDecay     InteractionMode = 1099
)

var modeNames = map[InteractionMode]string{
	ModeUnknown:            "Unknown",
	ModeQE:                 "QE",
	ModeRes:                "Res",
	ModeDIS:                "DIS",
	ModeCoh:                "Coh",
	ModeCohElastic:         "CohElastic",
	ModeElectronScattering: "ElectronScattering",
	ModeIMDAnnihilation:    "IMDAnnihilation",
	ModeInverseBetaDecay:   "InverseBetaDecay",
	ModeGlashowResonance:   "GlashowResonance",
	ModeAMNuGamma:          "AMNuGamma",
	ModeMEC:                "MEC",
	ModeDiffractive:        "Diffractive",
	ModeEM:                 "EM",
	ModeWeakMix:            "WeakMix",
	ModeNuElectronElastic:  "NuElectronElastic",
	ModeInverseMuDecay:     "InverseMuDecay",
}

func (m InteractionMode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "Unknown"
}

// NuanceOffset is added to a NUANCE reaction code to form the interaction type.
const NuanceOffset = 1000

// Origin names the source of a truth record.
type Origin int

const (
	OriginUnknown        Origin = 0
	OriginBeamNeutrino   Origin = 1
	OriginCosmicRay      Origin = 2
	OriginSuperNova      Origin = 3
	OriginSingleParticle Origin = 4
)

// Generator identifies the program that produced a truth record.
type Generator int

const (
	GeneratorUnknown Generator = 0
	GeneratorGENIE   Generator = 1
)

func (g Generator) String() string {
	if g == GeneratorGENIE {
		return "GENIE"
	}
	return "unknown"
}

// TuneConfigKey is the generator config entry holding the tune name.
const TuneConfigKey = "tune"

// GeneratorInfo is the generator identification metadata.
type GeneratorInfo struct {
	Generator Generator         `json:"generator"`
	Version   string            `json:"version"`
	Config    map[string]string `json:"config,omitempty"`
}

// Tune returns the configured tune name.
func (g GeneratorInfo) Tune() string { return g.Config[TuneConfigKey] }

// TrajectoryPoint is one sampled position and momentum of a particle.
type TrajectoryPoint struct {
	Position units.DetectorPosition `json:"position"`
	Momentum lorentz.Vec4           `json:"momentum"`
}

// MCParticle is one particle of the truth list.
type MCParticle struct {
	TrackID      int                   `json:"track_id"`
	Pdg          int                   `json:"pdg"`
	Process      string                `json:"process"`
	Mother       int                   `json:"mother"`
	Mass         float64               `json:"mass"`
	Status       int                   `json:"status"`
	Trajectory   []TrajectoryPoint     `json:"trajectory"`
	Gvtx         units.NucleusPosition `json:"gvtx"`
	Rescatter    int                   `json:"rescatter"`
	Polarization lorentz.Vec3          `json:"polarization"`
}

// Clone returns a copy of p sharing no trajectory storage with it.
func (p MCParticle) Clone() MCParticle {
	p.Trajectory = slices.Clone(p.Trajectory)
	return p
}

// PrimaryProcess tags particles created at the primary vertex.
const PrimaryProcess = "primary"

// AddTrajectoryPoint appends a sampled point.
func (p *MCParticle) AddTrajectoryPoint(pos units.DetectorPosition, mom lorentz.Vec4) {
	p.Trajectory = append(p.Trajectory, TrajectoryPoint{Position: pos, Momentum: mom})
}

// NumberTrajectoryPoints returns the number of sampled points.
func (p MCParticle) NumberTrajectoryPoints() int { return len(p.Trajectory) }

// Momentum returns the momentum at the first point, or zero.
func (p MCParticle) Momentum() lorentz.Vec4 {
	if len(p.Trajectory) == 0 {
		return lorentz.Vec4{}
	}
	return p.Trajectory[0].Momentum
}

// Position returns the position at the first point, or zero.
func (p MCParticle) Position() units.DetectorPosition {
	if len(p.Trajectory) == 0 {
		return units.DetectorPosition{}
	}
	return p.Trajectory[0].Position
}

// MCNeutrino summarises the neutrino interaction of a truth record.
type MCNeutrino struct {
	Nu              MCParticle      `json:"nu"`
	Lepton          MCParticle      `json:"lepton"`
	CCNC            CurrentType     `json:"ccnc"`
	Mode            InteractionMode `json:"mode"`
	InteractionType int             `json:"interaction_type"`
	Target          int             `json:"target"`
	HitNuc          int             `json:"hit_nuc"`
	HitQuark        int             `json:"hit_quark"`
	W               float64         `json:"w"`
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	QSqr            float64         `json:"qsqr"`
	Pt              float64         `json:"pt"`
	Theta           float64         `json:"theta"`
}

// NeutrinoParams carries the classification passed to SetNeutrino.
type NeutrinoParams struct {
	CCNC            CurrentType
	Mode            InteractionMode
	InteractionType int
	Target          int
	HitNuc          int
	HitQuark        int
	W, X, Y, QSqr   float64
}

// MCTruth is the framework's per-interaction truth record.
type MCTruth struct {
	Particles     []MCParticle  `json:"particles"`
	Neutrino      MCNeutrino    `json:"neutrino"`
	NeutrinoSet   bool          `json:"neutrino_set"`
	Origin        Origin        `json:"origin"`
	GeneratorInfo GeneratorInfo `json:"generator_info"`
}

// Clone returns a deep copy of t.
func (t *MCTruth) Clone() *MCTruth {
	c := *t
	c.Particles = make([]MCParticle, len(t.Particles))
	for i, p := range t.Particles {
		c.Particles[i] = p.Clone()
	}
	if t.Particles == nil {
		c.Particles = nil
	}
	c.Neutrino.Nu = t.Neutrino.Nu.Clone()
	c.Neutrino.Lepton = t.Neutrino.Lepton.Clone()
	c.GeneratorInfo.Config = maps.Clone(t.GeneratorInfo.Config)
	return &c
}

// Reset clears t for reuse.
func (t *MCTruth) Reset() { *t = MCTruth{} }

// Add appends a particle.
func (t *MCTruth) Add(p MCParticle) { t.Particles = append(t.Particles, p) }

// NParticles returns the number of particles.
func (t *MCTruth) NParticles() int { return len(t.Particles) }

// SetOrigin records the source of the record.
func (t *MCTruth) SetOrigin(o Origin) { t.Origin = o }

// SetGeneratorInfo records the generator metadata.
func (t *MCTruth) SetGeneratorInfo(g Generator, version string, config map[string]string) {
	t.GeneratorInfo = GeneratorInfo{Generator: g, Version: version, Config: config}
}

// SetNeutrino fills the neutrino summary from the particle list. Particle 0 is
// the incoming neutrino; the outgoing lepton is the first later particle whose
// mother is the neutrino and whose species is the neutrino itself or its
// charged partner. With no such particle the lepton is the neutrino. Returns
// false if the summary was already set.
func (t *MCTruth) SetNeutrino(p NeutrinoParams) bool {
	if t.NeutrinoSet {
		return false
	}
	t.NeutrinoSet = true

	var nu MCParticle
	if len(t.Particles) > 0 {
		nu = t.Particles[0]
	}
	lep := nu
	for _, cand := range t.Particles[min(1, len(t.Particles)):] {
		if cand.Mother == nu.TrackID && (cand.Pdg == nu.Pdg || abs(cand.Pdg) == abs(nu.Pdg)-1) {
			lep = cand
			break
		}
	}

	nuP := nu.Momentum().Vect()
	lepP := lep.Momentum().Vect()
	t.Neutrino = MCNeutrino{
		Nu:              nu.Clone(),
		Lepton:          lep.Clone(),
		CCNC:            p.CCNC,
		Mode:            p.Mode,
		InteractionType: p.InteractionType,
		Target:          p.Target,
		HitNuc:          p.HitNuc,
		HitQuark:        p.HitQuark,
		W:               p.W,
		X:               p.X,
		Y:               p.Y,
		QSqr:            p.QSqr,
		Pt:              lepP.Perp(nuP),
		Theta:           lepP.Angle(nuP),
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
