package units

import (
	"math"
	"testing"
)

func TestToDetector(t *testing.T) {
	rel := NucleusPosition{X: 2, Y: -3, Z: 4, T: 5e6}
	vtx := LabPosition{X: 1, Y: 2, Z: -0.5, T: 1e-6}

	tests := []struct {
		name          string
		addVertexTime bool
		wantT         Nanoseconds
	}{
		{"particle time only", false, 5e-9},
		{"with vertex time", true, 5e-9 + 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDetector(rel, vtx, tt.addVertexTime)

			wantX := Centimeters(100 * (2e-15 + 1))
			if math.Abs(float64(got.X-wantX)) > 1e-12 {
				t.Errorf("X = %v, want %v", got.X, wantX)
			}
			if math.Abs(float64(got.Z-Centimeters(-50))) > 1e-9 {
				t.Errorf("Z = %v, want -50", got.Z)
			}
			if math.Abs(float64(got.T-tt.wantT)) > 1e-12 {
				t.Errorf("T = %v, want %v", got.T, tt.wantT)
			}
		})
	}
}

func TestDetectorPositionAdd(t *testing.T) {
	a := DetectorPosition{X: 1, Y: 2, Z: 3, T: 4}
	b := DetectorPosition{T: 1500}
	got := a.Add(b)
	if got != (DetectorPosition{X: 1, Y: 2, Z: 3, T: 1504}) {
		t.Errorf("Add() = %+v", got)
	}
}
