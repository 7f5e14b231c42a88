// Package auth validates the API keys that guard write access to the event
// store.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrMissingKey = errors.New("missing Authorization header")
	ErrInvalidKey = errors.New("invalid API key")
)

// Authenticator holds the SHA-256 hashes of the accepted keys.
type Authenticator struct {
	hashes map[string]string // keyhash -> key name
}

// NewAuthenticator returns an authenticator accepting the keys whose hex
// SHA-256 hashes are given, keyed by a name used in logs.
func NewAuthenticator(hashes map[string]string) (*Authenticator, error) {
	a := &Authenticator{hashes: make(map[string]string, len(hashes))}
	for name, h := range hashes {
		h = strings.ToLower(strings.TrimSpace(h))
		if len(h) != sha256.Size*2 {
			return nil, fmt.Errorf("key %q: hash must be %d hex characters", name, sha256.Size*2)
		}
		if _, err := hex.DecodeString(h); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
		a.hashes[h] = name
	}
	return a, nil
}

// Empty reports whether no key is configured.
func (a *Authenticator) Empty() bool { return a == nil || len(a.hashes) == 0 }

// ValidateAPIKey returns the name of apiKey when it is accepted.
func (a *Authenticator) ValidateAPIKey(apiKey string) (string, error) {
	keyHash := HashAPIKey(apiKey)
	for h, name := range a.hashes {
		if subtle.ConstantTimeCompare([]byte(keyHash), []byte(h)) == 1 {
			return name, nil
		}
	}
	return "", ErrInvalidKey
}

// ExtractAPIKey returns the key of a "Bearer <key>" Authorization header. A
// header without scheme is taken as the key itself.
func ExtractAPIKey(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", ErrMissingKey
	}
	scheme, key, found := strings.Cut(h, " ")
	if !found {
		return h, nil
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", errors.New("unsupported authorization scheme")
	}
	return key, nil
}

// HashAPIKey creates a SHA-256 hash of an API key for storage
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}
