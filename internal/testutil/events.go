// Package testutil provides event fixtures and log capture shared by the
// package tests.
package testutil

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/units"
)

const argon40 = 1000180400

var vertex = units.LabPosition{X: 1.5, Y: -0.3, Z: 10.2, T: 1.0e-6}

func particle(code int, st genie.Status, mother int, p4 lorentz.Vec4, x4 units.NucleusPosition) genie.Particle {
	p := genie.NewParticle(code, st, p4, x4)
	p.FirstMother = mother
	p.LastMother = mother
	return p
}

// CCQE returns a muon-neutrino charged-current quasi-elastic event on argon
// with the probe (0,0,1,1) GeV and muon (0,0,0.8,0.85) GeV.
func CCQE() *genie.EventRecord {
	rec := genie.NewEventRecord()
	rec.Vertex = vertex
	rec.Weight = 1.25
	rec.Probability = 3.1e-38
	rec.XSec = 7.5e-39
	rec.SetDiffXSec(2.2e-39, 11)

	hit := units.NucleusPosition{X: 1.2, Y: -0.8, Z: 2.1}
	rec.AddParticle(particle(pdg.NuMu, genie.StatusInitialState, -1, lorentz.New4(0, 0, 1, 1), units.NucleusPosition{}))
	rec.AddParticle(particle(argon40, genie.StatusInitialState, -1, lorentz.New4(0, 0, 0, 37.2247), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Neutron, genie.StatusNucleonTarget, 1, lorentz.New4(0.05, -0.1, 0.12, 0.93), hit))
	mu := particle(pdg.Muon, genie.StatusStableFinalState, 0, lorentz.New4(0, 0, 0.8, 0.85), hit)
	mu.SetPolarization(lorentz.Vec3{Z: -1})
	rec.AddParticle(mu)
	rec.AddParticle(particle(pdg.Proton, genie.StatusHadronInTheNucleus, 2, lorentz.New4(0.05, -0.1, 0.32, 1.08), hit))
	rec.AddParticle(particle(pdg.Proton, genie.StatusStableFinalState, 4, lorentz.New4(0.04, -0.12, 0.3, 1.06), units.NucleusPosition{X: 3.9, Y: -2.2, Z: 5.0, T: 12.5}))
	rec.AddParticle(particle(1000180390, genie.StatusFinalStateNuclearRemnant, 1, lorentz.New4(-0.05, 0.1, -0.12, 36.3), units.NucleusPosition{}))

	in := genie.NewInteraction(genie.InitialState{
		ProbePdg: pdg.NuMu,
		Tgt: genie.Target{
			Z: 18, A: 40, Pdg: argon40,
			HitNucPdg:      pdg.Neutron,
			HitNucP4:       lorentz.New4(0.05, -0.1, 0.12, 0.93),
			HitNucPosition: 2.5,
		},
		ProbeP4: lorentz.New4(0, 0, 1, 1),
		TgtP4:   lorentz.New4(0, 0, 0, 37.2247),
	}, genie.ProcessInfo{Scattering: genie.ScQuasiElastic, Interaction: genie.IntWeakCC})
	in.Kine.Set(genie.KVSelQ2, 0.0175)
	in.Kine.Set(genie.KVSelq2, -0.0175)
	in.Kine.Set(genie.KVSelW, 0.938)
	in.Kine.Set(genie.KVSelx, 0.062)
	in.Kine.Set(genie.KVSely, 0.15)
	in.Kine.Set(genie.KVW, 0.941)
	in.Kine.FSLeptonP4 = lorentz.New4(0, 0, 0.8, 0.85)
	in.Kine.HadSystP4 = lorentz.New4(0.05, -0.1, 0.32, 1.08)
	in.ExclTag.NProtons = 1
	in.ExclTag.FinalLeptonPdg = pdg.Muon
	rec.AttachSummary(in)
	return rec
}

// CCRes returns a charged-current single pion resonant event on a free proton.
func CCRes() *genie.EventRecord {
	rec := genie.NewEventRecord()
	rec.Vertex = vertex
	rec.XSec = 1.1e-38

	rec.AddParticle(particle(pdg.NuMu, genie.StatusInitialState, -1, lorentz.New4(0, 0, 2.5, 2.5), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Proton, genie.StatusInitialState, -1, lorentz.New4(0, 0, 0, 0.938272), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Muon, genie.StatusStableFinalState, 0, lorentz.New4(0.2, 0.1, 1.6, 1.63), units.NucleusPosition{}))
	rec.AddParticle(particle(2224, genie.StatusPreDecayResonantState, 1, lorentz.New4(-0.2, -0.1, 0.9, 1.81), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Proton, genie.StatusStableFinalState, 3, lorentz.New4(-0.1, 0, 0.5, 1.08), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.PiPlus, genie.StatusStableFinalState, 3, lorentz.New4(-0.1, -0.1, 0.4, 0.73), units.NucleusPosition{}))

	in := genie.NewInteraction(genie.InitialState{
		ProbePdg: pdg.NuMu,
		Tgt:      genie.Target{Z: 1, A: 1, Pdg: pdg.Proton, HitNucPdg: pdg.Proton},
		ProbeP4:  lorentz.New4(0, 0, 2.5, 2.5),
		TgtP4:    lorentz.New4(0, 0, 0, 0.938272),
	}, genie.ProcessInfo{Scattering: genie.ScResonant, Interaction: genie.IntWeakCC})
	in.Kine.Set(genie.KVSelW, 1.232)
	in.Kine.Set(genie.KVSelQ2, 0.51)
	in.ExclTag.Resonance = 0
	in.ExclTag.DecayMode = 2
	in.ExclTag.NProtons = 1
	in.ExclTag.NPiPlus = 1
	rec.AttachSummary(in)
	return rec
}

// NuElectronElastic returns a neutrino-electron elastic event with no struck
// nucleon.
func NuElectronElastic() *genie.EventRecord {
	rec := genie.NewEventRecord()
	rec.Vertex = vertex

	rec.AddParticle(particle(pdg.NuMu, genie.StatusInitialState, -1, lorentz.New4(0, 0, 3, 3), units.NucleusPosition{}))
	rec.AddParticle(particle(argon40, genie.StatusInitialState, -1, lorentz.New4(0, 0, 0, 37.2247), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Electron, genie.StatusInitialState, 1, lorentz.New4(0, 0, 0, 0.000511), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.NuMu, genie.StatusStableFinalState, 0, lorentz.New4(0, 0.1, 2.2, 2.2023), units.NucleusPosition{}))
	rec.AddParticle(particle(pdg.Electron, genie.StatusStableFinalState, 2, lorentz.New4(0, -0.1, 0.8, 0.8068), units.NucleusPosition{}))

	in := genie.NewInteraction(genie.InitialState{
		ProbePdg: pdg.NuMu,
		Tgt:      genie.Target{Z: 18, A: 40, Pdg: argon40},
		ProbeP4:  lorentz.New4(0, 0, 3, 3),
		TgtP4:    lorentz.New4(0, 0, 0, 37.2247),
	}, genie.ProcessInfo{Scattering: genie.ScNuElectronElastic, Interaction: genie.IntWeakMix})
	in.Kine.Set(genie.KVSely, 0.27)
	rec.AttachSummary(in)
	return rec
}

// CaptureLogger returns a debug-level text logger writing into the returned
// buffer.
func CaptureLogger() (*slog.Logger, *SyncBuffer) {
	buf := &SyncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// SyncBuffer is a bytes.Buffer safe for concurrent writers.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
