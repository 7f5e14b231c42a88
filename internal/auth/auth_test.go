package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateAPIKey(t *testing.T) {
	a, err := NewAuthenticator(map[string]string{"ci": HashAPIKey("valid-key-123")})
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}

	name, err := a.ValidateAPIKey("valid-key-123")
	if err != nil {
		t.Fatalf("ValidateAPIKey() error = %v", err)
	}
	if name != "ci" {
		t.Errorf("ValidateAPIKey() = %q, want ci", name)
	}

	if _, err := a.ValidateAPIKey("other"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("ValidateAPIKey() error = %v, want %v", err, ErrInvalidKey)
	}
}

func TestNewAuthenticatorRejectsBadHash(t *testing.T) {
	tests := map[string]string{
		"short":   "abc",
		"not hex": strings.Repeat("z", 64),
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewAuthenticator(map[string]string{"k": h}); err == nil {
				t.Fatal("NewAuthenticator() error = nil, want error")
			}
		})
	}
}

func TestNewAuthenticatorNormalizesHash(t *testing.T) {
	a, err := NewAuthenticator(map[string]string{"k": " " + strings.ToUpper(HashAPIKey("x")) + " "})
	if err != nil {
		t.Fatalf("NewAuthenticator() error = %v", err)
	}
	if _, err := a.ValidateAPIKey("x"); err != nil {
		t.Errorf("ValidateAPIKey() error = %v", err)
	}
}

func TestEmpty(t *testing.T) {
	var nilAuth *Authenticator
	if !nilAuth.Empty() {
		t.Error("nil authenticator should be empty")
	}
	a, _ := NewAuthenticator(nil)
	if !a.Empty() {
		t.Error("authenticator without keys should be empty")
	}
}

func TestExtractAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer k1", want: "k1"},
		{name: "lowercase scheme", header: "bearer k1", want: "k1"},
		{name: "bare key", header: "k1", want: "k1"},
		{name: "missing", header: "", wantErr: true},
		{name: "basic", header: "Basic dXNlcg==", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := ExtractAPIKey(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
