// Package lorentz provides the three- and four-vectors shared by the generator
// record and the framework truth records. Four-vectors use the (+,-,-,-) metric.
package lorentz

import "math"

// Vec3 is a Cartesian three-vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsZero reports whether every component is zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Mag2() float64 { return v.Dot(v) }

func (v Vec3) Mag() float64 { return math.Sqrt(v.Mag2()) }

// Perp returns the component of v transverse to axis. A zero axis yields the
// magnitude of v.
func (v Vec3) Perp(axis Vec3) float64 {
	a2 := axis.Mag2()
	if a2 <= 0 {
		return v.Mag()
	}
	along := v.Dot(axis)
	perp2 := v.Mag2() - along*along/a2
	if perp2 <= 0 {
		return 0
	}
	return math.Sqrt(perp2)
}

// Angle returns the opening angle between v and o in radians, or 0 when either
// vector has zero length.
func (v Vec3) Angle(o Vec3) float64 {
	denom := math.Sqrt(v.Mag2() * o.Mag2())
	if denom <= 0 {
		return 0
	}
	c := v.Dot(o) / denom
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Vec4 is a four-vector: (px, py, pz, E) for momenta.
type Vec4 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	T float64 `json:"t"`
}

// New4 builds a four-vector from its spatial components and time/energy.
func New4(x, y, z, t float64) Vec4 { return Vec4{X: x, Y: y, Z: z, T: t} }

// Vect returns the spatial part.
func (v Vec4) Vect() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// E returns the time/energy component.
func (v Vec4) E() float64 { return v.T }

func (v Vec4) Add(o Vec4) Vec4 { return Vec4{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, T: v.T + o.T} }

func (v Vec4) Sub(o Vec4) Vec4 { return Vec4{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, T: v.T - o.T} }

// Dot is the Minkowski product.
func (v Vec4) Dot(o Vec4) float64 { return v.T*o.T - v.X*o.X - v.Y*o.Y - v.Z*o.Z }

// M2 is the invariant mass squared.
func (v Vec4) M2() float64 { return v.Dot(v) }

// M is the invariant mass, negative for space-like vectors.
func (v Vec4) M() float64 {
	mm := v.M2()
	if mm < 0 {
		return -math.Sqrt(-mm)
	}
	return math.Sqrt(mm)
}

// IsZero reports whether every component is zero.
func (v Vec4) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 && v.T == 0 }
