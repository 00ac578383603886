package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix enables
// future algorithm migration without colliding with old hashes.
const (
	DomainTransition = "tabula/transition/v1"
	DomainMove       = "tabula/move/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TransitionHash computes a content-addressed hash for a state transition.
// Stable across restarts given the same inputs; used by the journal for
// idempotent writes.
func TransitionHash(seq int64, from, to State) (string, error) {
	obj := Object{
		"seq":  Int(seq),
		"from": from,
		"to":   to,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("TransitionHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainTransition, canonical), nil
}

// MoveHash computes a content-addressed hash for a performed move.
func MoveHash(seq int64, name string, params Object) (string, error) {
	obj := Object{
		"seq":    Int(seq),
		"name":   String(name),
		"params": params,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("MoveHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainMove, canonical), nil
}

// MustTransitionHash is like TransitionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustTransitionHash(seq int64, from, to State) string {
	h, err := TransitionHash(seq, from, to)
	if err != nil {
		panic(err)
	}
	return h
}

// MustMoveHash is like MoveHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustMoveHash(seq int64, name string, params Object) string {
	h, err := MoveHash(seq, name, params)
	if err != nil {
		panic(err)
	}
	return h
}
