// Package roundtrip checks that an event survives translation, reconstruction
// and a second translation.
package roundtrip

import (
	"log/slog"

	"github.com/nugen/evgb/internal/codec/ghep"
	"github.com/nugen/evgb/internal/codec/gtruth"
	"github.com/nugen/evgb/internal/codec/mctruth"
	"github.com/nugen/evgb/internal/genie"
	"github.com/nugen/evgb/internal/pdg"
	"github.com/nugen/evgb/internal/simb"
)

// Report is the outcome of one round trip.
type Report struct {
	Particles   int          `json:"particles"`
	Divergences []Divergence `json:"divergences,omitempty"`
}

// Clean reports whether the round trip found no divergence.
func (r *Report) Clean() bool { return len(r.Divergences) == 0 }

// Summary is a lightweight view of a report.
type Summary struct {
	Clean           bool     `json:"clean"`
	DivergenceCount int      `json:"divergence_count"`
	DivergenceTypes []string `json:"divergence_types,omitempty"`
}

// Summary returns the report summary.
func (r *Report) Summary() Summary {
	return Summary{
		Clean:           r.Clean(),
		DivergenceCount: len(r.Divergences),
		DivergenceTypes: Types(r.Divergences),
	}
}

// Checker runs round trips. It is safe for concurrent use.
type Checker struct {
	codec *mctruth.Codec
	ghep  *ghep.Reconstructor
	opts  mctruth.Options
}

// NewChecker returns a checker translating with opts.
func NewChecker(species pdg.Table, opts mctruth.Options, logger *slog.Logger) *Checker {
	return &Checker{
		codec: mctruth.New(species, logger),
		ghep:  ghep.New(species, logger),
		opts:  opts,
	}
}

// Check translates rec, reconstructs it from the result and compares the
// second translation against the first.
func (c *Checker) Check(rec *genie.EventRecord) *Report {
	var mct simb.MCTruth
	var gt simb.GTruth
	c.codec.Fill(rec, c.opts, &mct)
	gtruth.Fill(rec, &gt)
	return c.CheckStored(&mct, &gt)
}

// CheckStored reconstructs an event from stored records and compares its
// translation against them.
func (c *Checker) CheckStored(mct *simb.MCTruth, gt *simb.GTruth) *Report {
	rec := c.ghep.Retrieve(mct, gt)

	var mct2 simb.MCTruth
	var gt2 simb.GTruth
	c.codec.Fill(rec, c.opts, &mct2)
	gtruth.Fill(rec, &gt2)

	r := &Report{Particles: mct.NParticles()}
	r.Divergences = append(r.Divergences, CompareParticles(mct.Particles, mct2.Particles)...)
	r.Divergences = append(r.Divergences, CompareNeutrino(mct, &mct2)...)
	r.Divergences = append(r.Divergences, CompareGTruth(gt, &gt2)...)
	return r
}
