// Package gtruth projects a generator event record onto GTruth.
package gtruth

import (
	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/simb"
)

// Fill resets out and copies the event bookkeeping and interaction summary of
// rec into it. Kinematic variables are only copied when the generator set
// them. A record without summary yields the event-level fields only.
func Fill(rec *genie.EventRecord, out *simb.GTruth) {
	out.Reset()
	if rec == nil {
		return
	}

	out.Weight = rec.Weight
	out.Probability = rec.Probability
	out.XSec = rec.XSec
	out.DiffXSec = rec.DiffXSec
	out.GPhaseSpace = int(rec.DiffXSecVars)
	out.Vertex = rec.Vertex

	in := rec.Summary
	if in == nil {
		return
	}

	out.Gint = int(in.ProcInfo.Interaction)
	out.Gscatter = int(in.ProcInfo.Scattering)

	x := in.ExclTag
	out.IsCharm = x.IsCharm
	out.CharmHadronPdg = x.CharmHadronPdg
	out.IsStrange = x.IsStrange
	out.StrangeHadronPdg = x.StrangeHadronPdg
	out.ResNum = x.Resonance
	out.DecayMode = x.DecayMode
	out.NumProton = x.NProtons
	out.NumNeutron = x.NNeutrons
	out.NumPi0 = x.NPi0
	out.NumPiPlus = x.NPiPlus
	out.NumPiMinus = x.NPiMinus
	out.NumSingleGammas = x.NSingleGammas
	out.NumRho0 = x.NRho0
	out.NumRhoPlus = x.NRhoPlus
	out.NumRhoMinus = x.NRhoMinus
	out.FinalQuarkPdg = x.FinalQuarkPdg
	out.FinalLeptonPdg = x.FinalLeptonPdg

	k := in.Kine
	out.GQ2 = kineVar(k, genie.KVSelQ2)
	out.Gq2 = kineVar(k, genie.KVSelq2)
	out.GW = kineVar(k, genie.KVSelW)
	out.GT = kineVar(k, genie.KVSelt)
	out.GX = kineVar(k, genie.KVSelx)
	out.GY = kineVar(k, genie.KVSely)
	out.GWrun = kineVar(k, genie.KVW)
	out.FSHadSystP4 = k.HadSystP4

	st := in.InitState
	out.ProbePDG = st.ProbePdg
	out.ProbeP4 = st.ProbeP4
	out.TgtP4 = st.TgtP4

	tgt := st.Tgt
	out.IsSeaQuark = tgt.HitSeaQrk
	out.HitNucP4 = tgt.HitNucP4
	out.HitNucPos = tgt.HitNucPosition
	out.TgtZ = tgt.Z
	out.TgtA = tgt.A
	out.TgtPDG = tgt.Pdg
}

func kineVar(k genie.Kinematics, v genie.KineVar) simb.OptFloat {
	if val, ok := k.Get(v); ok {
		return simb.Some(val)
	}
	return simb.None()
}
