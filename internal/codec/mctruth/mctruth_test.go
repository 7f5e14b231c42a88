package mctruth

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/testutil"
	"github.com/nugen/evgb/internal/units"
)

func TestComputeKinematicsQuasiElastic(t *testing.T) {
	k := ComputeKinematics(lorentz.New4(0, 0, 1, 1), lorentz.New4(0, 0, 0.8, 0.85), true, false)

	const m = pdg.NucleonMass
	wantQ2 := 0.2*0.2 - 0.15*0.15
	wantX := 0.5 * wantQ2 / (m * 0.15)
	wantW2 := m*m + 2*m*0.15 - wantQ2

	assert.InEpsilon(t, 0.0175, k.Q2, 1e-9)
	assert.InEpsilon(t, wantQ2, k.Q2, 1e-9)
	assert.InEpsilon(t, 0.15, k.Nu, 1e-9)
	assert.InEpsilon(t, 0.15, k.Y, 1e-9)
	assert.InEpsilon(t, wantX, k.X, 1e-9)
	assert.InEpsilon(t, wantW2, k.W2, 1e-9)
	assert.InEpsilon(t, math.Sqrt(wantW2), k.W, 1e-9)
}

func TestComputeKinematicsWithoutNucleon(t *testing.T) {
	k := ComputeKinematics(lorentz.New4(0, 0, 3, 3), lorentz.New4(0, 0.1, 2.2, 2.2023), false, false)

	assert.Equal(t, simb.Unavailable, k.X)
	assert.Equal(t, simb.Unavailable, k.W)
	assert.Equal(t, simb.Unavailable, k.W2)
	assert.GreaterOrEqual(t, k.Q2, 0.0)
	assert.GreaterOrEqual(t, k.Y, 0.0)

	coh := ComputeKinematics(lorentz.New4(0, 0, 3, 3), lorentz.New4(0, 0.1, 2.2, 2.2023), false, true)
	assert.NotEqual(t, simb.Unavailable, coh.X)
	assert.NotEqual(t, simb.Unavailable, coh.W)
}

func TestComputeKinematicsMissingProbe(t *testing.T) {
	k := ComputeKinematics(lorentz.Vec4{}, lorentz.Vec4{}, true, false)
	assert.Equal(t, simb.Unavailable, k.Y)
	assert.Equal(t, simb.Unavailable, k.X)
	assert.False(t, math.IsNaN(k.W))
}

var everyFlag = []struct {
	name string
	set  func(*ProcessFlags)
	want simb.InteractionMode
}{
	{"QE", func(f *ProcessFlags) { f.QuasiElastic = true }, simb.ModeQE},
	{"DIS", func(f *ProcessFlags) { f.DeepInelastic = true }, simb.ModeDIS},
	{"Res", func(f *ProcessFlags) { f.Resonant = true }, simb.ModeRes},
	{"CohProduction", func(f *ProcessFlags) { f.CoherentProduction = true }, simb.ModeCoh},
	{"CohElastic", func(f *ProcessFlags) { f.CoherentElastic = true }, simb.ModeCohElastic},
	{"ElectronScattering", func(f *ProcessFlags) { f.ElectronScattering = true }, simb.ModeElectronScattering},
	{"NuElectronElastic", func(f *ProcessFlags) { f.NuElectronElastic = true }, simb.ModeNuElectronElastic},
	{"InverseMuDecay", func(f *ProcessFlags) { f.InverseMuDecay = true }, simb.ModeInverseMuDecay},
	{"IMDAnnihilation", func(f *ProcessFlags) { f.IMDAnnihilation = true }, simb.ModeIMDAnnihilation},
	{"InverseBetaDecay", func(f *ProcessFlags) { f.InverseBetaDecay = true }, simb.ModeInverseBetaDecay},
	{"GlashowResonance", func(f *ProcessFlags) { f.GlashowResonance = true }, simb.ModeGlashowResonance},
	{"AMNuGamma", func(f *ProcessFlags) { f.AMNuGamma = true }, simb.ModeAMNuGamma},
	{"MEC", func(f *ProcessFlags) { f.MEC = true }, simb.ModeMEC},
	{"Diffractive", func(f *ProcessFlags) { f.Diffractive = true }, simb.ModeDiffractive},
	{"EM", func(f *ProcessFlags) { f.EM = true }, simb.ModeEM},
	{"WeakMix", func(f *ProcessFlags) { f.WeakMix = true }, simb.ModeWeakMix},
}

func TestModeSinglePredicate(t *testing.T) {
	assert.Equal(t, simb.ModeUnknown, Mode(ProcessFlags{}))
	assert.Equal(t, simb.ModeUnknown, Mode(ProcessFlags{WeakNC: true}))

	for _, tt := range everyFlag {
		t.Run(tt.name, func(t *testing.T) {
			var f ProcessFlags
			tt.set(&f)
			assert.Equal(t, tt.want, Mode(f))
		})
	}
}

func TestModePriority(t *testing.T) {
	for i, hi := range everyFlag {
		for _, lo := range everyFlag[i+1:] {
			var f ProcessFlags
			hi.set(&f)
			lo.set(&f)
			assert.Equal(t, hi.want, Mode(f), "%s over %s", hi.name, lo.name)
		}
	}
}

func TestModeFromProcess(t *testing.T) {
	// an IMD event is both electron scattering and inverse muon decay
	f := FlagsFromProcess(genie.ProcessInfo{Scattering: genie.ScInverseMuDecay, Interaction: genie.IntWeakCC})
	assert.Equal(t, simb.ModeElectronScattering, Mode(f))
	assert.Equal(t, simb.CC, Current(f))

	f = FlagsFromProcess(genie.ProcessInfo{Scattering: genie.ScDeepInelastic, Interaction: genie.IntWeakNC})
	assert.Equal(t, simb.ModeDIS, Mode(f))
	assert.Equal(t, simb.NC, Current(f))
}

func TestFillCCQE(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	c := New(pdg.Default(), logger)
	rec := testutil.CCQE()

	var mct simb.MCTruth
	c.Fill(rec, Options{
		Offset:           SpillOffset(250),
		GeneratorVersion: "3.4.2",
		Tune:             "AR23_20i_00_000",
		GeneratorConfig:  map[string]string{"flux": "booster"},
	}, &mct)

	require.Equal(t, rec.Len(), mct.NParticles())
	for i, p := range mct.Particles {
		assert.Equal(t, i, p.TrackID)
		assert.Equal(t, simb.PrimaryProcess, p.Process)
		assert.Equal(t, rec.Particles[i].FirstMother, p.Mother)
		assert.Equal(t, rec.Particles[i].X4, p.Gvtx)
		require.Equal(t, 1, p.NumberTrajectoryPoints())
	}

	mu := mct.Particles[3]
	assert.InDelta(t, 150+1.2e-13, float64(mu.Position().X), 1e-9)
	assert.InDelta(t, 1020+2.1e-13, float64(mu.Position().Z), 1e-9)
	assert.InDelta(t, 250, float64(mu.Position().T), 1e-12)
	assert.Equal(t, lorentz.Vec3{Z: -1}, mu.Polarization)
	assert.InDelta(t, 0.10566, mu.Mass, 1e-5)
	assert.Equal(t, lorentz.Vec3{}, mct.Particles[0].Polarization)

	late := mct.Particles[5]
	assert.InDelta(t, 250+12.5e-15, float64(late.Position().T), 1e-12)

	nu := mct.Neutrino
	assert.True(t, mct.NeutrinoSet)
	assert.Equal(t, simb.CC, nu.CCNC)
	assert.Equal(t, simb.ModeQE, nu.Mode)
	assert.Equal(t, simb.NuanceOffset+1, nu.InteractionType)
	assert.Equal(t, 1000180400, nu.Target)
	assert.Equal(t, pdg.Neutron, nu.HitNuc)
	assert.InEpsilon(t, 0.0175, nu.QSqr, 1e-9)
	assert.InEpsilon(t, 0.15, nu.Y, 1e-9)
	assert.Equal(t, pdg.Muon, nu.Lepton.Pdg)

	assert.Equal(t, simb.OriginBeamNeutrino, mct.Origin)
	assert.Equal(t, simb.GeneratorGENIE, mct.GeneratorInfo.Generator)
	assert.Equal(t, "3.4.2", mct.GeneratorInfo.Version)
	assert.Equal(t, "AR23_20i_00_000", mct.GeneratorInfo.Tune())
	assert.Equal(t, "booster", mct.GeneratorInfo.Config["flux"])

	assert.True(t, strings.Contains(logs.String(), "no species entry"), "remnant nucleus lookup should be logged")
}

func TestFillAddsVertexTime(t *testing.T) {
	c := New(pdg.Default(), nil)
	var mct simb.MCTruth
	c.Fill(testutil.CCQE(), Options{AddVertexTime: true}, &mct)

	assert.InDelta(t, 1000, float64(mct.Particles[0].Position().T), 1e-9)
	assert.Equal(t, "unknown", mct.GeneratorInfo.Version)
	assert.Equal(t, "unknown", mct.GeneratorInfo.Tune())
}

func TestFillResetsPreviousContent(t *testing.T) {
	c := New(pdg.Default(), nil)
	var mct simb.MCTruth
	c.Fill(testutil.CCQE(), Options{}, &mct)
	c.Fill(testutil.NuElectronElastic(), Options{}, &mct)

	assert.Equal(t, 5, mct.NParticles())
	assert.Equal(t, simb.ModeElectronScattering, mct.Neutrino.Mode)
	assert.Equal(t, simb.NuanceOffset+98, mct.Neutrino.InteractionType)
	assert.Equal(t, simb.Unavailable, mct.Neutrino.X)
	assert.Equal(t, simb.Unavailable, mct.Neutrino.W)
	assert.Equal(t, pdg.NuMu, mct.Neutrino.Lepton.Pdg)
}

func TestFillResonantChannel(t *testing.T) {
	c := New(pdg.Default(), nil)
	var mct simb.MCTruth
	c.Fill(testutil.CCRes(), Options{}, &mct)

	assert.Equal(t, simb.ModeRes, mct.Neutrino.Mode)
	assert.Equal(t, simb.NuanceOffset+3, mct.Neutrino.InteractionType)
	assert.Greater(t, mct.Neutrino.W, 0.0)
}

func TestFillWithoutSummary(t *testing.T) {
	rec := genie.NewEventRecord()
	rec.AddParticle(genie.NewParticle(pdg.Gamma, genie.StatusInitialState, lorentz.New4(0, 0, 1, 1), units.NucleusPosition{}))

	var mct simb.MCTruth
	New(pdg.Default(), nil).Fill(rec, Options{}, &mct)
	assert.Equal(t, 1, mct.NParticles())
	assert.Equal(t, simb.ModeUnknown, mct.Neutrino.Mode)
	assert.Equal(t, simb.NuanceOffset, mct.Neutrino.InteractionType)
}

func TestGeneratorConfigKeepsExplicitTune(t *testing.T) {
	cfg := generatorConfig(Options{Tune: "G18_02a_00_000", GeneratorConfig: map[string]string{"tune": "override"}})
	assert.Equal(t, "override", cfg["tune"])
}
