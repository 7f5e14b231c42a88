// Package units provides length and time quantities whose unit is part of the
// type, and the space-time points used on either side of the generator/framework
// boundary.
//
// The generator works in femtometers and yoctoseconds relative to the struck
// nucleus for particles, and in meters and seconds in the lab frame for the
// interaction vertex. The framework stores centimeters and nanoseconds in the lab
// frame. Conversions between the three frames only happen through the methods in
// this package.
package units

// Length quantities.
type (
	Femtometers float64
	Meters      float64
	Centimeters float64
)

// Time quantities.
type (
	Yoctoseconds float64
	Seconds      float64
	Nanoseconds  float64
)

const (
	metersPerFermi = 1.0e-15
	cmPerMeter     = 100.0
	nsPerSecond    = 1.0e9
	// 1.0e-24 s/ys divided by 1.0e-9 s/ns
	nsPerYocto = 1.0e-15
)

// Meters converts a nuclear-scale length to meters.
func (f Femtometers) Meters() Meters { return Meters(float64(f) * metersPerFermi) }

// Centimeters converts meters to centimeters.
func (m Meters) Centimeters() Centimeters { return Centimeters(float64(m) * cmPerMeter) }

// Nanoseconds converts seconds to nanoseconds.
func (s Seconds) Nanoseconds() Nanoseconds { return Nanoseconds(float64(s) * nsPerSecond) }

// Nanoseconds converts yoctoseconds to nanoseconds.
func (y Yoctoseconds) Nanoseconds() Nanoseconds { return Nanoseconds(float64(y) * nsPerYocto) }

// NucleusPosition is a space-time point relative to the centre of the struck
// nucleus, in the generator's native units.
type NucleusPosition struct {
	X Femtometers  `json:"x"`
	Y Femtometers  `json:"y"`
	Z Femtometers  `json:"z"`
	T Yoctoseconds `json:"t"`
}

// LabPosition is an absolute lab-frame space-time point in meters and seconds.
type LabPosition struct {
	X Meters  `json:"x"`
	Y Meters  `json:"y"`
	Z Meters  `json:"z"`
	T Seconds `json:"t"`
}

// DetectorPosition is a lab-frame space-time point in centimeters and
// nanoseconds, the framework's convention.
type DetectorPosition struct {
	X Centimeters `json:"x"`
	Y Centimeters `json:"y"`
	Z Centimeters `json:"z"`
	T Nanoseconds `json:"t"`
}

// Add returns the component-wise sum of two detector positions.
func (p DetectorPosition) Add(o DetectorPosition) DetectorPosition {
	return DetectorPosition{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z, T: p.T + o.T}
}

// IsZero reports whether every component is zero.
func (p NucleusPosition) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0 && p.T == 0
}

// ToDetector places a nucleus-relative point into the detector frame by adding the
// lab-frame interaction vertex. The vertex time is only folded in when
// addVertexTime is set; otherwise the result time is the particle's own
// nucleus-scale time.
func ToDetector(rel NucleusPosition, vertex LabPosition, addVertexTime bool) DetectorPosition {
	p := DetectorPosition{
		X: (rel.X.Meters() + vertex.X).Centimeters(),
		Y: (rel.Y.Meters() + vertex.Y).Centimeters(),
		Z: (rel.Z.Meters() + vertex.Z).Centimeters(),
		T: rel.T.Nanoseconds(),
	}
	if addVertexTime {
		p.T += vertex.T.Nanoseconds()
	}
	return p
}
