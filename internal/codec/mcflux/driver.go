package mcflux

import "github.com/nugen/evgb/internal/lorentz"

// Driver is a flux driver whose per-ray pass-through data can be copied into
// an MCFlux. The set of implementations is closed: NuMIDriver, SimpleDriver,
// Dk2NuDriver, Blender and Opaque.
type Driver interface {
	fluxDriver()
}

// NuMIPassThrough is the gnumi ntuple entry behind the current ray.
type NuMIPassThrough struct {
	// Pcodes is 0 for GEANT particle codes, 1 once converted to PDG.
	Pcodes int `json:"pcodes"`
	// Units is 0 for GEANT cm, 1 for meters.
	Units int `json:"units"`

	Run      int     `json:"run"`
	Evtno    int     `json:"evtno"`
	Ndxdz    float64 `json:"ndxdz"`
	Ndydz    float64 `json:"ndydz"`
	Npz      float64 `json:"npz"`
	Nenergy  float64 `json:"nenergy"`
	Ndxdznea float64 `json:"ndxdznea"`
	Ndydznea float64 `json:"ndydznea"`
	Nenergyn float64 `json:"nenergyn"`
	Nwtnear  float64 `json:"nwtnear"`
	Ndxdzfar float64 `json:"ndxdzfar"`
	Ndydzfar float64 `json:"ndydzfar"`
	Nenergyf float64 `json:"nenergyf"`
	Nwtfar   float64 `json:"nwtfar"`
	Norig    int     `json:"norig"`
	Ndecay   int     `json:"ndecay"`
	Ntype    int     `json:"ntype"`
	Vx       float64 `json:"vx"`
	Vy       float64 `json:"vy"`
	Vz       float64 `json:"vz"`
	Pdpx     float64 `json:"pdpx"`
	Pdpy     float64 `json:"pdpy"`
	Pdpz     float64 `json:"pdpz"`
	Ppdxdz   float64 `json:"ppdxdz"`
	Ppdydz   float64 `json:"ppdydz"`
	Pppz     float64 `json:"pppz"`
	Ppenergy float64 `json:"ppenergy"`
	Ppmedium int     `json:"ppmedium"`
	Ptype    int     `json:"ptype"`
	Ppvx     float64 `json:"ppvx"`
	Ppvy     float64 `json:"ppvy"`
	Ppvz     float64 `json:"ppvz"`
	Muparpx  float64 `json:"muparpx"`
	Muparpy  float64 `json:"muparpy"`
	Muparpz  float64 `json:"muparpz"`
	Mupare   float64 `json:"mupare"`
	Necm     float64 `json:"necm"`
	Nimpwt   float64 `json:"nimpwt"`
	Xpoint   float64 `json:"xpoint"`
	Ypoint   float64 `json:"ypoint"`
	Zpoint   float64 `json:"zpoint"`
	Tvx      float64 `json:"tvx"`
	Tvy      float64 `json:"tvy"`
	Tvz      float64 `json:"tvz"`
	Tpx      float64 `json:"tpx"`
	Tpy      float64 `json:"tpy"`
	Tpz      float64 `json:"tpz"`
	Tptype   int     `json:"tptype"`
	Tgen     int     `json:"tgen"`
	Tgptype  int     `json:"tgptype"`
	Tgppx    float64 `json:"tgppx"`
	Tgppy    float64 `json:"tgppy"`
	Tgppz    float64 `json:"tgppz"`
	Tprivx   float64 `json:"tprivx"`
	Tprivy   float64 `json:"tprivy"`
	Tprivz   float64 `json:"tprivz"`
	Beamx    float64 `json:"beamx"`
	Beamy    float64 `json:"beamy"`
	Beamz    float64 `json:"beamz"`
	Beampx   float64 `json:"beampx"`
	Beampy   float64 `json:"beampy"`
	Beampz   float64 `json:"beampz"`
}

// NuMIDriver is a gnumi ntuple flux driver.
type NuMIDriver struct {
	PassThrough NuMIPassThrough `json:"pass_through"`
	DecayDist   float64         `json:"decay_dist"`
}

// SimpleEntry is the mandatory part of a gsimple ray.
type SimpleEntry struct {
	Pdg  int     `json:"pdg"`
	Wgt  float64 `json:"wgt"`
	Dist float64 `json:"dist"`
	E    float64 `json:"E"`
}

// SimpleNuMI is the optional gnumi ancestry attached to a gsimple ray.
type SimpleNuMI struct {
	Run      int     `json:"run"`
	Evtno    int     `json:"evtno"`
	Tpx      float64 `json:"tpx"`
	Tpy      float64 `json:"tpy"`
	Tpz      float64 `json:"tpz"`
	Tptype   int     `json:"tptype"`
	Vx       float64 `json:"vx"`
	Vy       float64 `json:"vy"`
	Vz       float64 `json:"vz"`
	Ndecay   int     `json:"ndecay"`
	Ppmedium int     `json:"ppmedium"`
	Pdpx     float64 `json:"pdpx"`
	Pdpy     float64 `json:"pdpy"`
	Pdpz     float64 `json:"pdpz"`
	Pppx     float64 `json:"pppx"`
	Pppy     float64 `json:"pppy"`
	Pppz     float64 `json:"pppz"`
	Ptype    int     `json:"ptype"`
}

// SimpleAux holds the per-ray auxiliary values named by SimpleMeta.
type SimpleAux struct {
	AuxInt []int     `json:"auxint"`
	AuxDbl []float64 `json:"auxdbl"`
}

// SimpleMeta names the auxiliary slots of a gsimple file.
type SimpleMeta struct {
	AuxIntName []string `json:"auxintname"`
	AuxDblName []string `json:"auxdblname"`
}

// SimpleDriver is a gsimple ntuple flux driver. NuMI, Aux and Meta are
// optional.
type SimpleDriver struct {
	Entry SimpleEntry `json:"entry"`
	NuMI  *SimpleNuMI `json:"numi,omitempty"`
	Aux   *SimpleAux  `json:"aux,omitempty"`
	Meta  *SimpleMeta `json:"meta,omitempty"`
}

// Dk2NuDecay is the parent decay block of a dk2nu entry.
type Dk2NuDecay struct {
	Norig    int     `json:"norig"`
	Ndecay   int     `json:"ndecay"`
	Ntype    int     `json:"ntype"`
	Ppmedium int     `json:"ppmedium"`
	Ptype    int     `json:"ptype"`
	Vx       float64 `json:"vx"`
	Vy       float64 `json:"vy"`
	Vz       float64 `json:"vz"`
	Pdpx     float64 `json:"pdpx"`
	Pdpy     float64 `json:"pdpy"`
	Pdpz     float64 `json:"pdpz"`
	Ppdxdz   float64 `json:"ppdxdz"`
	Ppdydz   float64 `json:"ppdydz"`
	Pppz     float64 `json:"pppz"`
	Ppenergy float64 `json:"ppenergy"`
	Muparpx  float64 `json:"muparpx"`
	Muparpy  float64 `json:"muparpy"`
	Muparpz  float64 `json:"muparpz"`
	Mupare   float64 `json:"mupare"`
	Necm     float64 `json:"necm"`
	Nimpwt   float64 `json:"nimpwt"`
}

// Dk2NuTgtExit is the ancestor leaving the target.
type Dk2NuTgtExit struct {
	Tvx    float64 `json:"tvx"`
	Tvy    float64 `json:"tvy"`
	Tvz    float64 `json:"tvz"`
	Tpx    float64 `json:"tpx"`
	Tpy    float64 `json:"tpy"`
	Tpz    float64 `json:"tpz"`
	Tptype int     `json:"tptype"`
	Tgen   int     `json:"tgen"`
}

// Dk2Nu is a dk2nu entry. Ray lists, ancestor chains and trajectories are
// not carried since MCFlux has no place for them.
type Dk2Nu struct {
	Job     int          `json:"job"`
	Potnum  int          `json:"potnum"`
	Decay   Dk2NuDecay   `json:"decay"`
	Ppvx    float64      `json:"ppvx"`
	Ppvy    float64      `json:"ppvy"`
	Ppvz    float64      `json:"ppvz"`
	TgtExit Dk2NuTgtExit `json:"tgtexit"`
}

// NuChoice is the ray the dk2nu driver picked for the current event.
type NuChoice struct {
	PdgNu    int          `json:"pdg_nu"`
	ImpWgt   float64      `json:"imp_wgt"`
	P4NuUser lorentz.Vec4 `json:"p4_nu_user"`
	XyWgt    float64      `json:"xy_wgt"`
}

// Dk2NuDriver is a dk2nu flux driver. Dk2Nu and NuChoice are optional.
type Dk2NuDriver struct {
	Dk2Nu     *Dk2Nu    `json:"dk2nu,omitempty"`
	NuChoice  *NuChoice `json:"nu_choice,omitempty"`
	DecayDist float64   `json:"decay_dist"`
}

// Blender wraps another driver and mixes flavours; its pass-through data is
// that of Inner.
type Blender struct {
	Inner Driver `json:"-"`
}

// Opaque is a driver without per-ray pass-through data, such as an
// atmospheric flux. Name identifies it in diagnostics.
type Opaque struct {
	Name string `json:"name"`
}

func (*NuMIDriver) fluxDriver()   {}
func (*SimpleDriver) fluxDriver() {}
func (*Dk2NuDriver) fluxDriver()  {}
func (*Blender) fluxDriver()      {}
func (*Opaque) fluxDriver()       {}
