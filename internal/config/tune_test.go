package config

import (
	"errors"
	"testing"
)

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("EVGB_TEST_TUNE", "G18_10a_02_11a")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "literal", input: "AR23_20i_00_000", want: "AR23_20i_00_000"},
		{name: "empty", input: "", want: ""},
		{name: "bare", input: "$EVGB_TEST_TUNE", want: "G18_10a_02_11a"},
		{name: "braces", input: "${EVGB_TEST_TUNE}", want: "G18_10a_02_11a"},
		{name: "parens with spaces", input: "$( EVGB_TEST_TUNE )", want: "G18_10a_02_11a"},
		{name: "not leading", input: "x${EVGB_TEST_TUNE}", want: "x${EVGB_TEST_TUNE}"},
		{name: "unset", input: "${EVGB_TEST_NOT_SET}", wantErr: ErrUnresolvedEnvVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnvVar(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExpandEnvVar(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandEnvVar(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetEventGeneratorListAndTune(t *testing.T) {
	t.Setenv("EVGB_TEST_TUNE", "G18_10a_02_11a")
	t.Setenv("EVGB_TEST_LIST", "CCQE")

	o := NewRunOptions(nil)
	if err := o.SetEventGeneratorListAndTune("$EVGB_TEST_LIST", "${EVGB_TEST_TUNE}"); err != nil {
		t.Fatalf("SetEventGeneratorListAndTune() error = %v", err)
	}
	if o.EventGeneratorList() != "CCQE" {
		t.Errorf("EventGeneratorList() = %q, want CCQE", o.EventGeneratorList())
	}
	if o.Tune() != "G18_10a_02_11a" {
		t.Errorf("Tune() = %q, want G18_10a_02_11a", o.Tune())
	}

	// same tune again, empty list keeps the previous selection
	if err := o.SetEventGeneratorListAndTune("", "G18_10a_02_11a"); err != nil {
		t.Fatalf("SetEventGeneratorListAndTune() error = %v", err)
	}
	if o.EventGeneratorList() != "CCQE" {
		t.Errorf("EventGeneratorList() = %q, want CCQE", o.EventGeneratorList())
	}

	err := o.SetEventGeneratorListAndTune("", "AR23_20i_00_000")
	if !errors.Is(err, ErrTuneNameMismatch) {
		t.Fatalf("SetEventGeneratorListAndTune() error = %v, want %v", err, ErrTuneNameMismatch)
	}
	if o.Tune() != "G18_10a_02_11a" {
		t.Errorf("Tune() = %q after mismatch, want unchanged", o.Tune())
	}
}

func TestSetEventGeneratorListAndTuneUnresolved(t *testing.T) {
	o := NewRunOptions(nil)
	err := o.SetEventGeneratorListAndTune("", "$EVGB_TEST_NOT_SET")
	if !errors.Is(err, ErrUnresolvedEnvVariable) {
		t.Fatalf("SetEventGeneratorListAndTune() error = %v, want %v", err, ErrUnresolvedEnvVariable)
	}
	if o.Tune() != "" {
		t.Errorf("Tune() = %q, want empty", o.Tune())
	}
}
