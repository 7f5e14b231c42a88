// Package ghep rebuilds a generator event record from stored MCTruth and
// GTruth records, so that reweighting can be driven from persisted data.
//
// The rebuilt record is approximate where the flat records lose information:
// daughter links are not restored, and degenerate target or probe codes are
// replaced with hydrogen-1 and a photon.
package ghep

import (
	"log/slog"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
)

// Reconstructor rebuilds event records. It is safe for concurrent use.
type Reconstructor struct {
	species pdg.Table
	logger  *slog.Logger
}

// New returns a reconstructor resolving species in species.
func New(species pdg.Table, logger *slog.Logger) *Reconstructor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconstructor{species: species, logger: logger}
}

// Retrieve allocates a new event record from mct and gt. The caller owns the
// returned record and its attached summary. A nil mct or gt yields an empty
// record with no summary.
func (r *Reconstructor) Retrieve(mct *simb.MCTruth, gt *simb.GTruth) *genie.EventRecord {
	rec := genie.NewEventRecord()
	if mct == nil || gt == nil {
		r.logger.Warn("missing truth record, returning empty event",
			slog.Bool("mctruth", mct != nil), slog.Bool("gtruth", gt != nil))
		return rec
	}
	rec.Weight = gt.Weight
	rec.Probability = gt.Probability
	rec.XSec = gt.XSec
	rec.SetDiffXSec(gt.DiffXSec, genie.KinePhaseSpace(gt.GPhaseSpace))
	rec.Vertex = gt.Vertex

	for _, mp := range mct.Particles {
		p := genie.NewParticle(mp.Pdg, genie.Status(mp.Status), mp.Momentum(), mp.Gvtx)
		p.FirstMother = mp.Mother
		p.RescatterCode = mp.Rescatter
		if !mp.Polarization.IsZero() {
			p.SetPolarization(mp.Polarization)
		}
		rec.AddParticle(p)
	}

	proc := genie.ProcessInfo{
		Scattering:  genie.ScatteringType(gt.Gscatter),
		Interaction: genie.InteractionType(gt.Gint),
	}

	in := genie.NewInteraction(r.initialState(rec, mct, gt), proc)
	in.Kine = kinematics(mct, gt)
	in.ExclTag = exclusiveTag(gt)
	rec.AttachSummary(in)
	return rec
}

func (r *Reconstructor) initialState(rec *genie.EventRecord, mct *simb.MCTruth, gt *simb.GTruth) genie.InitialState {
	probePdg := gt.ProbePDG
	z, a := gt.TgtZ, gt.TgtA

	if z == 0 || a == 0 {
		r.logger.Info("degenerate target, substituting hydrogen-1",
			slog.Int("tgt_z", z), slog.Int("tgt_a", a))
		z, a = 1, 1
	}
	if probePdg == 0 || probePdg == -1 {
		r.logger.Info("degenerate probe, substituting photon", slog.Int("probe_pdg", probePdg))
		probePdg = pdg.Gamma
	}
	targetPdg := pdg.IonPdgCode(a, z)

	state, err := genie.NewInitialState(targetPdg, probePdg, r.species)
	if err != nil {
		r.logger.Warn("initial state from unknown species",
			slog.Int("target_pdg", targetPdg),
			slog.Int("probe_pdg", probePdg),
			slog.String("error", err.Error()))
		state = genie.InitialState{
			ProbePdg: probePdg,
			Tgt:      genie.Target{Z: z, A: a, Pdg: targetPdg},
		}
	}

	nu := mct.Neutrino
	state.Tgt.HitNucPdg = nu.HitNuc
	state.Tgt.HitNucPosition = gt.HitNucPos
	state.Tgt.HitQrkPdg = nu.HitQuark
	state.Tgt.HitSeaQrk = gt.IsSeaQuark

	if hit := rec.HitNucleon(); hit != nil {
		state.Tgt.HitNucP4 = hit.P4
	} else {
		r.logger.Info("no hit nucleon in particle list, using zero momentum",
			slog.Int("hit_nuc_pdg", nu.HitNuc))
		state.Tgt.HitNucP4 = lorentz.Vec4{}
	}

	if tgt := rec.TargetNucleus(); tgt != nil {
		state.TgtP4 = tgt.P4
	} else {
		var rest float64
		if gt.TgtPDG != 0 {
			m, ok := pdg.Mass(r.species, gt.TgtPDG)
			if !ok {
				r.logger.Warn("target nucleus of unknown species, using zero mass",
					slog.Int("tgt_pdg", gt.TgtPDG))
			}
			rest = m
		}
		r.logger.Info("no target nucleus in particle list, target at rest",
			slog.Int("tgt_pdg", gt.TgtPDG), slog.Float64("rest_mass", rest))
		state.TgtP4 = lorentz.New4(0, 0, 0, rest)
	}

	if probe := rec.Probe(); probe != nil {
		state.ProbeP4 = probe.P4
	} else {
		r.logger.Debug("no probe in particle list")
		state.ProbeP4 = lorentz.Vec4{}
	}
	return state
}

func kinematics(mct *simb.MCTruth, gt *simb.GTruth) genie.Kinematics {
	var k genie.Kinematics
	for _, kv := range []struct {
		v   genie.KineVar
		val simb.OptFloat
	}{
		{genie.KVSelx, gt.GX},
		{genie.KVSely, gt.GY},
		{genie.KVSelt, gt.GT},
		{genie.KVSelW, gt.GW},
		{genie.KVSelQ2, gt.GQ2},
		{genie.KVSelq2, gt.Gq2},
		{genie.KVW, gt.GWrun},
	} {
		if val, ok := kv.val.Get(); ok {
			k.Set(kv.v, val)
		}
	}

	if lep := mct.Neutrino.Lepton; lep.NumberTrajectoryPoints() > 0 {
		k.FSLeptonP4 = lep.Momentum()
	}
	k.HadSystP4 = gt.FSHadSystP4
	return k
}

func exclusiveTag(gt *simb.GTruth) genie.XclsTag {
	x := genie.NewXclsTag()
	x.Resonance = gt.ResNum
	x.DecayMode = gt.DecayMode
	x.NPiPlus, x.NPi0, x.NPiMinus = gt.NumPiPlus, gt.NumPi0, gt.NumPiMinus
	x.NProtons, x.NNeutrons = gt.NumProton, gt.NumNeutron
	x.NSingleGammas = gt.NumSingleGammas
	x.NRhoPlus, x.NRho0, x.NRhoMinus = gt.NumRhoPlus, gt.NumRho0, gt.NumRhoMinus
	if gt.FinalQuarkPdg != 0 {
		x.FinalQuarkPdg = gt.FinalQuarkPdg
	}
	if gt.FinalLeptonPdg != 0 {
		x.FinalLeptonPdg = gt.FinalLeptonPdg
	}

	if gt.IsCharm {
		x.SetCharm(gt.CharmHadronPdg)
	} else {
		x.UnsetCharm()
	}
	if gt.IsStrange {
		x.SetStrange(gt.StrangeHadronPdg)
	} else {
		x.UnsetStrange()
	}
	return x
}
