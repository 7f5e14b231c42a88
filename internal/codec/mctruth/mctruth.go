// Package mctruth translates a generator event record into the framework's
// MCTruth: the particle stack is converted into the detector frame and the
// interaction is classified from its leptonic system.
package mctruth

import (
	"log/slog"
	"maps"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/units"
)

const unknownValue = "unknown"

// Options control one forward translation.
type Options struct {
	// Offset is added to every particle position, e.g. a spill time shift.
	Offset units.DetectorPosition
	// AddVertexTime folds the generator's absolute vertex time into each
	// particle time.
	AddVertexTime bool

	GeneratorVersion string
	Tune             string
	GeneratorConfig  map[string]string
}

// SpillOffset returns an offset that only shifts time.
func SpillOffset(t units.Nanoseconds) units.DetectorPosition {
	return units.DetectorPosition{T: t}
}

// Codec fills MCTruth records. It is safe for concurrent use.
type Codec struct {
	species pdg.Table
	logger  *slog.Logger
}

// New returns a codec that looks rest masses up in species.
func New(species pdg.Table, logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{species: species, logger: logger}
}

// AppendParticles appends the converted particle stack of rec to dst. Track ids
// continue from len(dst) in stack order.
func (c *Codec) AppendParticles(dst []simb.MCParticle, rec *genie.EventRecord, offset units.DetectorPosition, addVertexTime bool) []simb.MCParticle {
	for _, p := range rec.Particles {
		mass, ok := pdg.Mass(c.species, p.Pdg)
		if !ok {
			c.logger.Debug("no species entry, using zero mass", slog.Int("pdg", p.Pdg))
		}

		mp := simb.MCParticle{
			TrackID:   len(dst),
			Pdg:       p.Pdg,
			Process:   simb.PrimaryProcess,
			Mother:    p.FirstMother,
			Mass:      mass,
			Status:    int(p.Status),
			Gvtx:      p.X4,
			Rescatter: p.RescatterCode,
		}
		pos := units.ToDetector(p.X4, rec.Vertex, addVertexTime).Add(offset)
		mp.AddTrajectoryPoint(pos, p.P4)
		if p.PolarizationIsSet() {
			mp.Polarization = *p.Polarization
		}
		dst = append(dst, mp)
	}
	return dst
}

// Fill resets out and populates it from rec.
func (c *Codec) Fill(rec *genie.EventRecord, opts Options, out *simb.MCTruth) {
	out.Reset()
	if rec == nil {
		return
	}
	out.Particles = c.AppendParticles(out.Particles, rec, opts.Offset, opts.AddVertexTime)

	var (
		proc  genie.ProcessInfo
		state genie.InitialState
	)
	if rec.Summary != nil {
		proc = rec.Summary.ProcInfo
		state = rec.Summary.InitState
	} else {
		c.logger.Warn("event record has no interaction summary")
	}

	in := ClassifierInput{
		Flags:      FlagsFromProcess(proc),
		NuanceCode: genie.NuanceReactionCode(rec),
	}
	if p := rec.Probe(); p != nil {
		in.Probe = p.P4
	}
	if l := rec.FinalStatePrimaryLepton(); l != nil {
		in.Lepton = l.P4
	}
	if n := rec.HitNucleon(); n != nil {
		p4 := n.P4
		in.HitNucleon = &p4
	}
	cl := Classify(in)

	out.SetOrigin(simb.OriginBeamNeutrino)
	out.SetGeneratorInfo(simb.GeneratorGENIE, orUnknown(opts.GeneratorVersion), generatorConfig(opts))

	out.SetNeutrino(simb.NeutrinoParams{
		CCNC:            cl.Current,
		Mode:            cl.Mode,
		InteractionType: cl.InteractionType,
		Target:          state.Tgt.Pdg,
		HitNuc:          state.Tgt.HitNucPdg,
		HitQuark:        state.Tgt.HitQrkPdg,
		W:               cl.W,
		X:               cl.X,
		Y:               cl.Y,
		QSqr:            cl.Q2,
	})
}

// generatorConfig copies the free config map and adds the tune under its
// reserved key. An explicit tune entry in the map is kept.
func generatorConfig(opts Options) map[string]string {
	cfg := make(map[string]string, len(opts.GeneratorConfig)+1)
	maps.Copy(cfg, opts.GeneratorConfig)
	if _, ok := cfg[simb.TuneConfigKey]; !ok {
		cfg[simb.TuneConfigKey] = orUnknown(opts.Tune)
	}
	return cfg
}

func orUnknown(s string) string {
	if s == "" {
		return unknownValue
	}
	return s
}
