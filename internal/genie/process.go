package genie

// ScatteringType is the generator's scattering process code.
type ScatteringType int

const (
	ScUnknown            ScatteringType = -100
	ScNull               ScatteringType = 0
	ScQuasiElastic       ScatteringType = 1
	ScSingleKaon         ScatteringType = 2
	ScDeepInelastic      ScatteringType = 3
	ScResonant           ScatteringType = 4
	ScCoherentProd       ScatteringType = 5
	ScDiffractive        ScatteringType = 6
	ScNuElectronElastic  ScatteringType = 7
	ScInverseMuDecay     ScatteringType = 8
	ScAMNuGamma          ScatteringType = 9
	ScMEC                ScatteringType = 10
	ScCoherentElastic    ScatteringType = 11
	ScInverseBetaDecay   ScatteringType = 12
	ScGlashowResonance   ScatteringType = 13
	ScIMDAnnihilation    ScatteringType = 14
	ScPhotonCoherent     ScatteringType = 15
	ScPhotonResonance    ScatteringType = 16
	ScSinglePion         ScatteringType = 17
	ScDarkMatterElastic  ScatteringType = 101
	ScDarkMatterDIS      ScatteringType = 102
	ScDarkMatterElectron ScatteringType = 103
	ScNorm               ScatteringType = 104
)

var scatteringNames = map[ScatteringType]string{
	ScUnknown:            "Unknown",
	ScNull:               "Null",
	ScQuasiElastic:       "QES",
	ScSingleKaon:         "1Kaon",
	ScDeepInelastic:      "DIS",
	ScResonant:           "RES",
	ScCoherentProd:       "COH",
	ScDiffractive:        "DFR",
	ScNuElectronElastic:  "NuEEL",
	ScInverseMuDecay:     "IMD",
	ScAMNuGamma:          "AMNuGamma",
	ScMEC:                "MEC",
	ScCoherentElastic:    "CEvNS",
	ScInverseBetaDecay:   "IBD",
	ScGlashowResonance:   "GLR",
	ScIMDAnnihilation:    "IMDAnh",
	ScPhotonCoherent:     "PhotonCOH",
	ScPhotonResonance:    "PhotonRES",
	ScSinglePion:         "1Pion",
	ScDarkMatterElastic:  "DMEL",
	ScDarkMatterDIS:      "DMDIS",
	ScDarkMatterElectron: "DME",
	ScNorm:               "Norm",
}

func (s ScatteringType) String() string {
	if n, ok := scatteringNames[s]; ok {
		return n
	}
	return "Unknown"
}

// InteractionType is the generator's interaction (current) code.
type InteractionType int

const (
	IntUnknown    InteractionType = -100
	IntNull       InteractionType = 0
	IntEM         InteractionType = 1
	IntWeakCC     InteractionType = 2
	IntWeakNC     InteractionType = 3
	IntWeakMix    InteractionType = 4
	IntDarkMatter InteractionType = 5
	IntNDecay     InteractionType = 6
	IntNOsc       InteractionType = 7
	IntNHL        InteractionType = 8
	IntDarkNC     InteractionType = 9
)

var interactionNames = map[InteractionType]string{
	IntUnknown:    "Unknown",
	IntNull:       "Null",
	IntEM:         "EM",
	IntWeakCC:     "Weak[CC]",
	IntWeakNC:     "Weak[NC]",
	IntWeakMix:    "Weak[CC+NC+interference]",
	IntDarkMatter: "DarkMatter",
	IntNDecay:     "NucleonDecay",
	IntNOsc:       "NeutronOsc",
	IntNHL:        "NHL",
	IntDarkNC:     "DarkNC",
}

func (i InteractionType) String() string {
	if n, ok := interactionNames[i]; ok {
		return n
	}
	return "Unknown"
}

// ProcessInfo classifies an interaction by scattering and interaction type.
type ProcessInfo struct {
	Scattering  ScatteringType  `json:"scattering"`
	Interaction InteractionType `json:"interaction"`
}

func (p ProcessInfo) IsQuasiElastic() bool       { return p.Scattering == ScQuasiElastic }
func (p ProcessInfo) IsSingleKaon() bool         { return p.Scattering == ScSingleKaon }
func (p ProcessInfo) IsDeepInelastic() bool      { return p.Scattering == ScDeepInelastic }
func (p ProcessInfo) IsResonant() bool           { return p.Scattering == ScResonant }
func (p ProcessInfo) IsCoherentProduction() bool { return p.Scattering == ScCoherentProd }
func (p ProcessInfo) IsCoherentElastic() bool    { return p.Scattering == ScCoherentElastic }
func (p ProcessInfo) IsNuElectronElastic() bool  { return p.Scattering == ScNuElectronElastic }
func (p ProcessInfo) IsInverseMuDecay() bool     { return p.Scattering == ScInverseMuDecay }
func (p ProcessInfo) IsIMDAnnihilation() bool    { return p.Scattering == ScIMDAnnihilation }
func (p ProcessInfo) IsInverseBetaDecay() bool   { return p.Scattering == ScInverseBetaDecay }
func (p ProcessInfo) IsGlashowResonance() bool   { return p.Scattering == ScGlashowResonance }
func (p ProcessInfo) IsAMNuGamma() bool          { return p.Scattering == ScAMNuGamma }
func (p ProcessInfo) IsMEC() bool                { return p.Scattering == ScMEC }
func (p ProcessInfo) IsDiffractive() bool        { return p.Scattering == ScDiffractive }

// IsElectronScattering matches every process where the probe scatters off an
// atomic electron.
func (p ProcessInfo) IsElectronScattering() bool {
	return p.IsNuElectronElastic() || p.IsInverseMuDecay() || p.IsIMDAnnihilation()
}

func (p ProcessInfo) IsEM() bool      { return p.Interaction == IntEM }
func (p ProcessInfo) IsWeakCC() bool  { return p.Interaction == IntWeakCC }
func (p ProcessInfo) IsWeakNC() bool  { return p.Interaction == IntWeakNC }
func (p ProcessInfo) IsWeakMix() bool { return p.Interaction == IntWeakMix }

func (p ProcessInfo) String() string {
	return "<" + p.Scattering.String() + " - " + p.Interaction.String() + ">"
}
