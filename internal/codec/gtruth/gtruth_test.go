package gtruth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/testutil"
)

func TestFillCopiesSummary(t *testing.T) {
	rec := testutil.CCQE()
	var gt simb.GTruth
	Fill(rec, &gt)

	assert.Equal(t, int(genie.IntWeakCC), gt.Gint)
	assert.Equal(t, int(genie.ScQuasiElastic), gt.Gscatter)
	assert.Equal(t, 1.25, gt.Weight)
	assert.Equal(t, rec.XSec, gt.XSec)
	assert.Equal(t, rec.DiffXSec, gt.DiffXSec)
	assert.Equal(t, 11, gt.GPhaseSpace)
	assert.Equal(t, rec.Vertex, gt.Vertex)

	assert.Equal(t, 1, gt.NumProton)
	assert.Equal(t, 0, gt.NumPiPlus)
	assert.Equal(t, 13, gt.FinalLeptonPdg)
	assert.Equal(t, genie.NoResonance, gt.ResNum)

	assert.Equal(t, simb.Some(0.0175), gt.GQ2)
	assert.Equal(t, simb.Some(0.941), gt.GWrun)
	assert.False(t, gt.GT.IsSet(), "t was never selected")
	assert.Equal(t, simb.KineUndefined, gt.GT.Flat())

	assert.Equal(t, 14, gt.ProbePDG)
	assert.Equal(t, 18, gt.TgtZ)
	assert.Equal(t, 40, gt.TgtA)
	assert.Equal(t, 1000180400, gt.TgtPDG)
	assert.Equal(t, rec.Summary.InitState.Tgt.HitNucP4, gt.HitNucP4)
	assert.EqualValues(t, 2.5, gt.HitNucPos)
	assert.Equal(t, rec.Summary.Kine.HadSystP4, gt.FSHadSystP4)
}

func TestFillZeroValueIsSet(t *testing.T) {
	rec := testutil.CCQE()
	rec.Summary.Kine.Set(genie.KVSelt, 0)

	var gt simb.GTruth
	Fill(rec, &gt)
	assert.Equal(t, simb.Some(0), gt.GT)
}

func TestFillDegenerateTarget(t *testing.T) {
	rec := genie.NewEventRecord()
	rec.AttachSummary(genie.NewInteraction(genie.InitialState{}, genie.ProcessInfo{}))

	gt := simb.GTruth{Weight: 99, TgtZ: 6}
	Fill(rec, &gt)
	assert.Equal(t, 1.0, gt.Weight)
	assert.Zero(t, gt.TgtZ)
	assert.Zero(t, gt.TgtA)
	assert.Zero(t, gt.ProbePDG)
}

func TestFillWithoutSummary(t *testing.T) {
	rec := genie.NewEventRecord()
	rec.XSec = 4

	var gt simb.GTruth
	Fill(rec, &gt)
	assert.Equal(t, 4.0, gt.XSec)
	assert.Equal(t, -1, gt.Gint)
	assert.Equal(t, -1, gt.ProbePDG)
}
