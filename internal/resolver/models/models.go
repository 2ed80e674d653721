package models

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// PublicKeySize is the length of an identity public key (x-only, 32 bytes).
const PublicKeySize = 32

// PublicKey is a fixed-length identity signing key.
type PublicKey [PublicKeySize]byte

// ParsePublicKey decodes a strict lowercase-hex public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	if len(s) != PublicKeySize*2 {
		return pk, fmt.Errorf("public key must be %d hex chars, got %d", PublicKeySize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pk, fmt.Errorf("public key is not valid hex: %w", err)
	}
	copy(pk[:], raw)
	return pk, nil
}

// String returns the lowercase hex encoding.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// Artifact binds a human-readable handle to a signing key. Artifacts are
// provisioned out-of-band by the account platform and are read-only here.
type Artifact struct {
	Name     string    `json:"name"`
	Domain   string    `json:"domain"`
	PubKey   string    `json:"pubkey"`
	IssuedAt time.Time `json:"issued_at"`
	// IntegrityTag is the keyed digest over (name, domain, pubkey). It may
	// be empty on records provisioned before tagging was introduced; strict
	// deployments refuse those.
	IntegrityTag string `json:"integrity_tag,omitempty"`
}

// Identifier is a parsed "name@domain" handle.
type Identifier struct {
	Name   string
	Domain string
}

// ParseIdentifier splits and normalizes an identifier. A bare name takes the
// given home domain. Normalization here is cosmetic; the resolver still
// treats anything unresolvable as uniformly not found.
func ParseIdentifier(raw, homeDomain string) Identifier {
	raw = strings.TrimSpace(raw)
	name, domain, ok := strings.Cut(raw, "@")
	if !ok {
		domain = homeDomain
	}
	return Identifier{
		Name:   strings.ToLower(strings.TrimSpace(name)),
		Domain: strings.ToLower(strings.TrimSpace(domain)),
	}
}

// String renders the canonical "name@domain" form.
func (id Identifier) String() string {
	return id.Name + "@" + id.Domain
}
