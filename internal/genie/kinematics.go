package genie

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/nugen/evgb/internal/lorentz"
)

// KineVar names one kinematic variable. The Sel variants hold the values the
// generator selected for the event; the plain variants hold running values
// computed during generation.
type KineVar int

const (
	KVNull KineVar = iota
	KVx
	KVy
	KVQ2
	KVq2
	KVW
	KVt
	KVSelx
	KVSely
	KVSelQ2
	KVSelq2
	KVSelW
	KVSelt
)

var kineVarNames = map[KineVar]string{
	KVNull:  "null",
	KVx:     "x",
	KVy:     "y",
	KVQ2:    "Q2",
	KVq2:    "q2",
	KVW:     "W",
	KVt:     "t",
	KVSelx:  "selx",
	KVSely:  "sely",
	KVSelQ2: "selQ2",
	KVSelq2: "selq2",
	KVSelW:  "selW",
	KVSelt:  "selt",
}

func (v KineVar) String() string {
	if n, ok := kineVarNames[v]; ok {
		return n
	}
	return fmt.Sprintf("KineVar(%d)", int(v))
}

// ParseKineVar returns the variable with the given name.
func ParseKineVar(name string) (KineVar, bool) {
	for v, n := range kineVarNames {
		if n == name && v != KVNull {
			return v, true
		}
	}
	return KVNull, false
}

// Selected maps a running variable onto its selected counterpart.
func (v KineVar) Selected() KineVar {
	if v >= KVx && v <= KVt {
		return v + (KVSelx - KVx)
	}
	return v
}

const kineVarCount = int(KVSelt) + 1

func (v KineVar) valid() bool { return v >= KVNull && int(v) < kineVarCount }

// Kinematics is the set of kinematic variables recorded for an interaction.
// A variable is either set to a value or absent. Kinematics is a plain value:
// copies share nothing.
type Kinematics struct {
	vals       [kineVarCount]float64
	set        [kineVarCount]bool
	FSLeptonP4 lorentz.Vec4
	HadSystP4  lorentz.Vec4
}

// Set records val for v. Variables outside the known range are ignored.
func (k *Kinematics) Set(v KineVar, val float64) {
	if !v.valid() {
		return
	}
	k.vals[v], k.set[v] = val, true
}

// Unset removes v.
func (k *Kinematics) Unset(v KineVar) {
	if !v.valid() {
		return
	}
	k.vals[v], k.set[v] = 0, false
}

// Get returns the value of v and whether it is set.
func (k Kinematics) Get(v KineVar) (float64, bool) {
	if !k.IsSet(v) {
		return 0, false
	}
	return k.vals[v], true
}

// IsSet reports whether v carries a value.
func (k Kinematics) IsSet(v KineVar) bool { return v.valid() && k.set[v] }

// Len returns the number of set variables.
func (k Kinematics) Len() int {
	n := 0
	for _, ok := range k.set {
		if ok {
			n++
		}
	}
	return n
}

// All iterates over the set variables in ascending variable order.
func (k Kinematics) All() iter.Seq2[KineVar, float64] {
	return func(yield func(KineVar, float64) bool) {
		for i, ok := range k.set {
			if ok && !yield(KineVar(i), k.vals[i]) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same variables and four-vectors.
func (k Kinematics) Equal(o Kinematics) bool { return k == o }

type kinematicsJSON struct {
	Vars       map[string]float64 `json:"vars,omitempty"`
	FSLeptonP4 lorentz.Vec4       `json:"fs_lepton_p4"`
	HadSystP4  lorentz.Vec4       `json:"had_syst_p4"`
}

func (k Kinematics) MarshalJSON() ([]byte, error) {
	out := kinematicsJSON{FSLeptonP4: k.FSLeptonP4, HadSystP4: k.HadSystP4}
	for v, val := range k.All() {
		if out.Vars == nil {
			out.Vars = make(map[string]float64)
		}
		out.Vars[v.String()] = val
	}
	return json.Marshal(out)
}

func (k *Kinematics) UnmarshalJSON(data []byte) error {
	var in kinematicsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*k = Kinematics{FSLeptonP4: in.FSLeptonP4, HadSystP4: in.HadSystP4}
	for name, val := range in.Vars {
		v, ok := ParseKineVar(name)
		if !ok {
			return fmt.Errorf("unknown kinematic variable %q", name)
		}
		k.Set(v, val)
	}
	return nil
}

// KinePhaseSpace names the phase space a differential cross section is
// expressed in. Codes are carried through unchanged.
type KinePhaseSpace int

const (
	PSUndefined KinePhaseSpace = -1
	PSNull      KinePhaseSpace = 0
)
