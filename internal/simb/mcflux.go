package simb

// FluxType names the flux-driver shape an MCFlux was filled from.
type FluxType int

const (
	FluxUnknown       FluxType = 0
	FluxHistPlusFocus FluxType = 1
	FluxNtuple        FluxType = 2
	FluxSimple        FluxType = 3
	FluxDk2Nu         FluxType = 4
)

func (f FluxType) String() string {
	switch f {
	case FluxHistPlusFocus:
		return "hist+focus"
	case FluxNtuple:
		return "ntuple"
	case FluxSimple:
		return "simple"
	case FluxDk2Nu:
		return "dk2nu"
	}
	return "unknown"
}

// FluxReset is the value every numeric MCFlux field holds after Reset.
const FluxReset = -9999

// MCFlux is the flux ancestry of one neutrino ray, using the gnumi ntuple
// variable names.
type MCFlux struct {
	Run   int `json:"run"`
	Evtno int `json:"evtno"`

	// neutrino direction and energy at the detector
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

	// parent at decay
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

	// ancestor at target exit
	Tvx     float64 `json:"tvx"`
	Tvy     float64 `json:"tvy"`
	Tvz     float64 `json:"tvz"`
	Tpx     float64 `json:"tpx"`
	Tpy     float64 `json:"tpy"`
	Tpz     float64 `json:"tpz"`
	Tptype  int     `json:"tptype"`
	Tgen    int     `json:"tgen"`
	Tgptype int     `json:"tgptype"`
	Tgppx   float64 `json:"tgppx"`
	Tgppy   float64 `json:"tgppy"`
	Tgppz   float64 `json:"tgppz"`
	Tprivx  float64 `json:"tprivx"`
	Tprivy  float64 `json:"tprivy"`
	Tprivz  float64 `json:"tprivz"`

	// beam
	Beamx  float64 `json:"beamx"`
	Beamy  float64 `json:"beamy"`
	Beamz  float64 `json:"beamz"`
	Beampx float64 `json:"beampx"`
	Beampy float64 `json:"beampy"`
	Beampz float64 `json:"beampz"`

	FluxType FluxType `json:"flux_type"`

	// ray generation point and distances
	Genx    float64 `json:"genx"`
	Geny    float64 `json:"geny"`
	Genz    float64 `json:"genz"`
	Dk2gen  float64 `json:"dk2gen"`
	Gen2vtx float64 `json:"gen2vtx"`
}

// NewMCFlux returns a reset record.
func NewMCFlux() *MCFlux {
	f := &MCFlux{}
	f.Reset()
	return f
}

// Reset sets every numeric field to FluxReset and the type to unknown.
func (f *MCFlux) Reset() {
	const r = FluxReset
	*f = MCFlux{
		Run: r, Evtno: r,
		Ndxdz: r, Ndydz: r, Npz: r, Nenergy: r,
		Ndxdznea: r, Ndydznea: r, Nenergyn: r, Nwtnear: r,
		Ndxdzfar: r, Ndydzfar: r, Nenergyf: r, Nwtfar: r,
		Norig: r, Ndecay: r, Ntype: r,
		Vx: r, Vy: r, Vz: r,
		Pdpx: r, Pdpy: r, Pdpz: r,
		Ppdxdz: r, Ppdydz: r, Pppz: r, Ppenergy: r, Ppmedium: r, Ptype: r,
		Ppvx: r, Ppvy: r, Ppvz: r,
		Muparpx: r, Muparpy: r, Muparpz: r, Mupare: r,
		Necm: r, Nimpwt: r,
		Xpoint: r, Ypoint: r, Zpoint: r,
		Tvx: r, Tvy: r, Tvz: r, Tpx: r, Tpy: r, Tpz: r,
		Tptype: r, Tgen: r, Tgptype: r,
		Tgppx: r, Tgppy: r, Tgppz: r,
		Tprivx: r, Tprivy: r, Tprivz: r,
		Beamx: r, Beamy: r, Beamz: r,
		Beampx: r, Beampy: r, Beampz: r,
		FluxType: FluxUnknown,
		Genx: r, Geny: r, Genz: r,
		Dk2gen: r, Gen2vtx: r,
	}
}
