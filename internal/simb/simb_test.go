package simb

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nugen/evgb/internal/lorentz"
	"github.com/nugen/evgb/internal/units"
)

func particle(id, pdg, mother int, p lorentz.Vec4) MCParticle {
	mp := MCParticle{TrackID: id, Pdg: pdg, Mother: mother, Process: PrimaryProcess}
	mp.AddTrajectoryPoint(units.DetectorPosition{}, p)
	return mp
}

func TestSetNeutrinoPicksChargedPartner(t *testing.T) {
	var mct MCTruth
	mct.Add(particle(0, 14, -1, lorentz.New4(0, 0, 1, 1)))
	mct.Add(particle(1, 1000180400, -1, lorentz.New4(0, 0, 0, 37.2)))
	mct.Add(particle(2, 2212, 1, lorentz.New4(0, 0, 0.1, 0.95)))
	mct.Add(particle(3, 13, 0, lorentz.New4(0.3, 0, 0.4, 0.52)))

	require.True(t, mct.SetNeutrino(NeutrinoParams{CCNC: CC, Mode: ModeQE, W: 1, X: 0.5}))
	assert.Equal(t, 13, mct.Neutrino.Lepton.Pdg)
	assert.Equal(t, 14, mct.Neutrino.Nu.Pdg)
	assert.InDelta(t, 0.3, mct.Neutrino.Pt, 1e-12)
	assert.InDelta(t, math.Atan2(0.3, 0.4), mct.Neutrino.Theta, 1e-12)

	assert.False(t, mct.SetNeutrino(NeutrinoParams{}), "second SetNeutrino must be refused")
	assert.Equal(t, ModeQE, mct.Neutrino.Mode)
}

func TestSetNeutrinoNeutralCurrentKeepsNeutrino(t *testing.T) {
	var mct MCTruth
	mct.Add(particle(0, -12, -1, lorentz.New4(0, 0, 2, 2)))
	mct.Add(particle(1, 2112, -1, lorentz.New4(0, 0, 0, 0.94)))
	mct.Add(particle(2, -12, 0, lorentz.New4(0, 0, 1.5, 1.5)))

	mct.SetNeutrino(NeutrinoParams{CCNC: NC})
	assert.Equal(t, 2, mct.Neutrino.Lepton.TrackID)
	assert.Zero(t, mct.Neutrino.Pt)
}

func TestSetNeutrinoWithoutParticles(t *testing.T) {
	var mct MCTruth
	assert.True(t, mct.SetNeutrino(NeutrinoParams{Mode: ModeUnknown}))
	assert.Zero(t, mct.Neutrino.Nu.Pdg)
}

func TestCloneIsDeep(t *testing.T) {
	var mct MCTruth
	mct.Add(particle(0, 14, -1, lorentz.Vec4{T: 2}))
	mct.Add(particle(1, 13, 0, lorentz.Vec4{T: 1.5}))
	mct.SetNeutrino(NeutrinoParams{})
	mct.SetGeneratorInfo(GeneratorGENIE, "3.4.2", map[string]string{TuneConfigKey: "AR23_20i_00_000"})

	c := mct.Clone()
	c.Particles[0].Trajectory[0].Momentum.T = 99
	c.Neutrino.Nu.Trajectory[0].Momentum.T = 99
	c.Neutrino.Lepton.Trajectory[0].Momentum.T = 99
	c.GeneratorInfo.Config[TuneConfigKey] = "other"

	assert.Equal(t, 2.0, mct.Particles[0].Momentum().T)
	assert.Equal(t, 2.0, mct.Neutrino.Nu.Momentum().T)
	assert.Equal(t, 1.5, mct.Neutrino.Lepton.Momentum().T)
	assert.Equal(t, "AR23_20i_00_000", mct.GeneratorInfo.Tune())
	assert.Nil(t, (&MCTruth{}).Clone().Particles)
}

func TestResetClearsEverything(t *testing.T) {
	var mct MCTruth
	mct.Add(particle(0, 14, -1, lorentz.Vec4{}))
	mct.SetNeutrino(NeutrinoParams{})
	mct.SetGeneratorInfo(GeneratorGENIE, "3.4.2", map[string]string{TuneConfigKey: "AR23_20i_00_000"})

	mct.Reset()
	assert.Zero(t, mct.NParticles())
	assert.False(t, mct.NeutrinoSet)
	assert.Empty(t, mct.GeneratorInfo.Tune())
}

func TestOptFloatJSON(t *testing.T) {
	type doc struct {
		A OptFloat `json:"a"`
		B OptFloat `json:"b"`
	}
	data, err := json.Marshal(doc{A: Some(0), B: None()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0,"b":null}`, string(data))

	var back doc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Some(0), back.A)
	assert.False(t, back.B.IsSet())

	assert.Equal(t, KineUndefined, None().Flat())
	assert.Equal(t, 1.5, Some(1.5).Flat())
	assert.False(t, FromFlat(KineUndefined).IsSet())
	assert.Equal(t, Some(-1), FromFlat(-1))
}

func TestMCFluxReset(t *testing.T) {
	f := NewMCFlux()
	assert.Equal(t, FluxReset, f.Run)
	assert.Equal(t, float64(FluxReset), f.Dk2gen)
	assert.Equal(t, float64(FluxReset), f.Beampz)
	assert.Equal(t, FluxUnknown, f.FluxType)

	f.FluxType = FluxDk2Nu
	f.Nimpwt = 1
	f.Reset()
	assert.Equal(t, *NewMCFlux(), *f)
}

func TestGTruthReset(t *testing.T) {
	g := NewGTruth()
	assert.Equal(t, -1, g.Gint)
	assert.Equal(t, -1, g.ProbePDG)
	assert.False(t, g.GQ2.IsSet())
	assert.Equal(t, KineUndefined, g.GWrun.Flat())
}
