// Package pdg holds particle species codes and the species property table used
// by the codecs. The table is an external collaborator: codecs accept any Table,
// and Default returns the built-in one embedded from species.yaml.
package pdg

// Species codes used by the codecs.
const (
	Electron        = 11
	NuE             = 12
	Muon            = 13
	NuMu            = 14
	Tau             = 15
	NuTau           = 16
	Gamma           = 22
	Pi0             = 111
	PiPlus          = 211
	PiMinus         = -211
	Rho0            = 113
	RhoPlus         = 213
	RhoMinus        = -213
	Neutron         = 2112
	Proton          = 2212
	HadronicBlob    = 2000000001
	ionBase         = 1000000000
	ionUpper        = 1999999999
	reservedGeniePS = 2000000000
)

// NucleonMass is the average of the proton and neutron rest masses in GeV.
const NucleonMass = (0.9382720813 + 0.9395654133) / 2

// IonPdgCode returns the 10LZZZAAAI code of a ground-state nucleus.
func IonPdgCode(a, z int) int {
	return ionBase + z*10000 + a*10
}

// IsIon reports whether code is a nucleus code.
func IsIon(code int) bool {
	return code > ionBase && code < ionUpper
}

// IonZ returns the proton number of a nucleus code, or 0.
func IonZ(code int) int {
	if !IsIon(code) {
		return 0
	}
	return (code / 10000) % 1000
}

// IonA returns the mass number of a nucleus code, or 0.
func IonA(code int) int {
	if !IsIon(code) {
		return 0
	}
	return (code / 10) % 1000
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func IsNeutrino(code int) bool {
	return code == NuE || code == NuMu || code == NuTau
}

func IsAntiNeutrino(code int) bool {
	return code == -NuE || code == -NuMu || code == -NuTau
}

// IsNeutralLepton matches neutrinos and anti-neutrinos.
func IsNeutralLepton(code int) bool {
	return IsNeutrino(code) || IsAntiNeutrino(code)
}

func IsChargedLepton(code int) bool {
	a := abs(code)
	return a == Electron || a == Muon || a == Tau
}

func IsLepton(code int) bool {
	return IsNeutralLepton(code) || IsChargedLepton(code)
}

func IsProton(code int) bool { return code == Proton }

func IsNeutron(code int) bool { return code == Neutron }

func IsNucleon(code int) bool { return IsProton(code) || IsNeutron(code) }

// IsPseudoParticle matches generator-internal bookkeeping codes such as the
// hadronic blob.
func IsPseudoParticle(code int) bool {
	return code > reservedGeniePS
}
