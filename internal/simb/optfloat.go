package simb

import (
	"bytes"
	"encoding/json"
)

// KineUndefined is the flat sentinel for an unset kinematic variable.
const KineUndefined = -99999.0

// OptFloat is a float64 that may be absent. The zero value is absent.
type OptFloat struct {
	Value float64
	Valid bool
}

// Some returns a present value.
func Some(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// None returns an absent value.
func None() OptFloat { return OptFloat{} }

// FromFlat decodes a flat value, treating KineUndefined as absent.
func FromFlat(v float64) OptFloat {
	if v == KineUndefined {
		return None()
	}
	return Some(v)
}

// Get returns the value and whether it is present.
func (o OptFloat) Get() (float64, bool) { return o.Value, o.Valid }

// IsSet reports whether the value is present.
func (o OptFloat) IsSet() bool { return o.Valid }

// OrElse returns the value, or def when absent.
func (o OptFloat) OrElse(def float64) float64 {
	if !o.Valid {
		return def
	}
	return o.Value
}

// Flat returns the value, or KineUndefined when absent.
func (o OptFloat) Flat() float64 { return o.OrElse(KineUndefined) }

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
