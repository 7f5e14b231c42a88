// Package mcflux copies flux-driver pass-through data into MCFlux.
//
// Each supported driver shape has its own adapter. Blenders are unwrapped to
// the driver they mix; shapes without pass-through data leave the output
// reset.
package mcflux

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/nugen/evgb/internal/simb"
)

// minParentPz bounds |pppz| away from zero when forming slopes.
const minParentPz = 1.0e-30

// Translator fills MCFlux records from flux drivers. It is safe for
// concurrent use.
type Translator struct {
	logger *slog.Logger
	warned atomic.Bool
}

// NewTranslator returns a translator logging to logger.
func NewTranslator(logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{logger: logger}
}

// ResetWarnings re-arms the one-time unsupported-driver diagnostic.
func (t *Translator) ResetWarnings() { t.warned.Store(false) }

// Fill copies the pass-through data of d into out and reports whether d had
// a supported shape. Unsupported shapes leave out reset.
func (t *Translator) Fill(d Driver, out *simb.MCFlux) bool {
	for {
		b, ok := d.(*Blender)
		if !ok || b == nil {
			break
		}
		d = b.Inner
	}

	switch drv := d.(type) {
	case *NuMIDriver:
		if drv != nil {
			t.fillNuMI(&drv.PassThrough, drv.DecayDist, out)
			return true
		}
	case *SimpleDriver:
		if drv != nil {
			fillSimple(drv, out)
			return true
		}
	case *Dk2NuDriver:
		if drv != nil {
			fillDk2Nu(drv.Dk2Nu, drv.NuChoice, out)
			// the adapter resets, so the decay distance goes on after it
			out.Dk2gen = drv.DecayDist
			return true
		}
	}

	out.Reset()
	if t.warned.CompareAndSwap(false, true) {
		t.logger.Info("no flux translation for this driver", slog.String("driver", driverName(d)))
	}
	return false
}

func driverName(d Driver) string {
	if o, ok := d.(*Opaque); ok && o != nil && o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("%T", d)
}

func (t *Translator) fillNuMI(n *NuMIPassThrough, dk2gen float64, out *simb.MCFlux) {
	out.Reset()
	out.FluxType = simb.FluxNtuple

	if n.Pcodes != 1 && n.Units != 0 {
		t.logger.Error("unexpected particle codes or units in flux pass-through",
			slog.Int("pcodes", n.Pcodes), slog.Int("units", n.Units))
	}

	out.Run = n.Run
	out.Evtno = n.Evtno
	out.Ndxdz = n.Ndxdz
	out.Ndydz = n.Ndydz
	out.Npz = n.Npz
	out.Nenergy = n.Nenergy
	out.Ndxdznea = n.Ndxdznea
	out.Ndydznea = n.Ndydznea
	out.Nenergyn = n.Nenergyn
	out.Nwtnear = n.Nwtnear
	out.Ndxdzfar = n.Ndxdzfar
	out.Ndydzfar = n.Ndydzfar
	out.Nenergyf = n.Nenergyf
	out.Nwtfar = n.Nwtfar
	out.Norig = n.Norig
	out.Ndecay = n.Ndecay
	out.Ntype = n.Ntype
	out.Vx, out.Vy, out.Vz = n.Vx, n.Vy, n.Vz
	out.Pdpx, out.Pdpy, out.Pdpz = n.Pdpx, n.Pdpy, n.Pdpz
	out.Ppdxdz = n.Ppdxdz
	out.Ppdydz = n.Ppdydz
	out.Pppz = n.Pppz
	out.Ppenergy = n.Ppenergy
	out.Ppmedium = n.Ppmedium
	out.Ptype = n.Ptype
	out.Ppvx, out.Ppvy, out.Ppvz = n.Ppvx, n.Ppvy, n.Ppvz
	out.Muparpx, out.Muparpy, out.Muparpz = n.Muparpx, n.Muparpy, n.Muparpz
	out.Mupare = n.Mupare
	out.Necm = n.Necm
	out.Nimpwt = n.Nimpwt
	out.Xpoint, out.Ypoint, out.Zpoint = n.Xpoint, n.Ypoint, n.Zpoint
	out.Tvx, out.Tvy, out.Tvz = n.Tvx, n.Tvy, n.Tvz
	out.Tpx, out.Tpy, out.Tpz = n.Tpx, n.Tpy, n.Tpz
	out.Tptype = n.Tptype
	out.Tgen = n.Tgen
	out.Tgptype = n.Tgptype
	out.Tgppx, out.Tgppy, out.Tgppz = n.Tgppx, n.Tgppy, n.Tgppz
	out.Tprivx, out.Tprivy, out.Tprivz = n.Tprivx, n.Tprivy, n.Tprivz
	out.Beamx, out.Beamy, out.Beamz = n.Beamx, n.Beamy, n.Beamz
	out.Beampx, out.Beampy, out.Beampz = n.Beampx, n.Beampy, n.Beampz

	out.Dk2gen = dk2gen
}

func fillSimple(s *SimpleDriver, out *simb.MCFlux) {
	out.Reset()
	out.FluxType = simb.FluxSimple

	e := s.Entry
	out.Ntype = e.Pdg
	out.Nimpwt = e.Wgt
	out.Dk2gen = e.Dist
	out.Nenergyn, out.Nenergyf = e.E, e.E

	if n := s.NuMI; n != nil {
		out.Run = n.Run
		out.Evtno = n.Evtno
		out.Tpx, out.Tpy, out.Tpz = n.Tpx, n.Tpy, n.Tpz
		out.Tptype = n.Tptype
		out.Vx, out.Vy, out.Vz = n.Vx, n.Vy, n.Vz
		out.Ndecay = n.Ndecay
		out.Ppmedium = n.Ppmedium
		out.Pdpx, out.Pdpy, out.Pdpz = n.Pdpx, n.Pdpy, n.Pdpz

		pz := n.Pppz
		if math.Abs(pz) < minParentPz {
			pz = minParentPz
		}
		out.Ppdxdz = n.Pppx / pz
		out.Ppdydz = n.Pppy / pz
		out.Pppz = n.Pppz
		out.Ptype = n.Ptype
	}

	if s.Aux == nil || s.Meta == nil {
		return
	}
	for i, name := range s.Meta.AuxDblName {
		if i >= len(s.Aux.AuxDbl) {
			break
		}
		v := s.Aux.AuxDbl[i]
		switch name {
		case "muparpx":
			out.Muparpx = v
		case "muparpy":
			out.Muparpy = v
		case "muparpz":
			out.Muparpz = v
		case "mupare":
			out.Mupare = v
		case "necm":
			out.Necm = v
		case "nimpwt":
			out.Nimpwt = v
		case "fgXYWgt":
			out.Nwtnear, out.Nwtfar = v, v
		}
	}
	for i, name := range s.Meta.AuxIntName {
		if i >= len(s.Aux.AuxInt) {
			break
		}
		switch name {
		case "tgen":
			out.Tgen = s.Aux.AuxInt[i]
		case "tgptype":
			out.Tgptype = s.Aux.AuxInt[i]
		}
	}
}

func fillDk2Nu(dk *Dk2Nu, nc *NuChoice, out *simb.MCFlux) {
	out.Reset()
	out.FluxType = simb.FluxDk2Nu

	if dk != nil {
		out.Run = dk.Job
		out.Evtno = dk.Potnum

		d := dk.Decay
		out.Norig = d.Norig
		out.Ndecay = d.Ndecay
		out.Ntype = d.Ntype
		out.Ppmedium = d.Ppmedium
		out.Ptype = d.Ptype
		out.Vx, out.Vy, out.Vz = d.Vx, d.Vy, d.Vz
		out.Pdpx, out.Pdpy, out.Pdpz = d.Pdpx, d.Pdpy, d.Pdpz
		out.Ppdxdz = d.Ppdxdz
		out.Ppdydz = d.Ppdydz
		out.Pppz = d.Pppz
		out.Ppenergy = d.Ppenergy
		out.Muparpx, out.Muparpy, out.Muparpz = d.Muparpx, d.Muparpy, d.Muparpz
		out.Mupare = d.Mupare
		out.Necm = d.Necm
		out.Nimpwt = d.Nimpwt

		out.Ppvx, out.Ppvy, out.Ppvz = dk.Ppvx, dk.Ppvy, dk.Ppvz

		x := dk.TgtExit
		out.Tvx, out.Tvy, out.Tvz = x.Tvx, x.Tvy, x.Tvz
		out.Tpx, out.Tpy, out.Tpz = x.Tpx, x.Tpy, x.Tpz
		out.Tptype = x.Tptype
		out.Tgen = x.Tgen
	}

	if nc != nil {
		out.Ntype = nc.PdgNu
		out.Nimpwt = nc.ImpWgt
		out.Nenergyn, out.Nenergyf = nc.P4NuUser.E(), nc.P4NuUser.E()
		out.Nwtnear, out.Nwtfar = nc.XyWgt, nc.XyWgt
	}
}
