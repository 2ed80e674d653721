// Package keyring holds the versioned server secrets behind private
// identifier resolution. Lookup keys and integrity tags are both keyed
// digests under material derived from a master secret, so enumerating the
// artifact store reveals nothing about which handles exist.
//
// Rotation procedure: prepend a new "version:hex" entry to the configured
// secret list and deploy. New lookup keys are minted under the head (active)
// version while resolution still tries older versions, so artifacts can be
// re-keyed out-of-band during the migration window. Once every artifact is
// stored under the new version, drop the old entry; lookup keys minted under
// it are invalid from that point on.
package keyring

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	infoLookup = "identifier-lookup"
	infoTag    = "artifact-integrity"

	// minSecretLen guards against trivially brute-forceable masters.
	minSecretLen = 16
)

// Version is one generation of derived secret material.
type Version struct {
	Name      string
	lookupKey []byte
	tagKey    []byte
}

// Keyring is an ordered set of secret versions, newest first.
type Keyring struct {
	versions []Version
}

// Parse builds a keyring from a comma-separated "version:hex" list, newest
// version first. An empty input yields an error: resolution without a secret
// must fail closed, never fall back to an unkeyed lookup.
func Parse(spec string) (*Keyring, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("no resolution secrets configured")
	}

	var versions []Version
	seen := make(map[string]bool)
	for _, entry := range strings.Split(spec, ",") {
		name, hexSecret, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed secret entry %q, want version:hex", entry)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate secret version %q", name)
		}
		seen[name] = true

		master, err := hex.DecodeString(hexSecret)
		if err != nil {
			return nil, fmt.Errorf("secret version %q is not valid hex: %w", name, err)
		}
		if len(master) < minSecretLen {
			return nil, fmt.Errorf("secret version %q is shorter than %d bytes", name, minSecretLen)
		}

		v := Version{Name: name}
		if v.lookupKey, err = derive(master, infoLookup); err != nil {
			return nil, err
		}
		if v.tagKey, err = derive(master, infoTag); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return &Keyring{versions: versions}, nil
}

func derive(master []byte, info string) ([]byte, error) {
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// Active returns the version used to mint new lookup keys and tags.
func (k *Keyring) Active() Version {
	return k.versions[0]
}

// Versions returns all versions newest-first for rotation-window lookups.
func (k *Keyring) Versions() []Version {
	return k.versions
}

// LookupKey computes the keyed digest of "name@domain" under this version.
// It is the only key the artifact store ever sees.
func (v Version) LookupKey(name, domain string) string {
	mac := hmac.New(sha256.New, v.lookupKey)
	mac.Write([]byte(name + "@" + domain))
	return hex.EncodeToString(mac.Sum(nil))
}

// IntegrityTag computes the keyed digest over the canonical artifact tuple.
func (v Version) IntegrityTag(name, domain, pubKeyHex string) string {
	mac := hmac.New(sha256.New, v.tagKey)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write([]byte(domain))
	mac.Write([]byte{0})
	mac.Write([]byte(pubKeyHex))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyTag reports whether tag matches the canonical tuple in constant time.
func (v Version) VerifyTag(name, domain, pubKeyHex, tag string) bool {
	want := v.IntegrityTag(name, domain, pubKeyHex)
	return hmac.Equal([]byte(want), []byte(tag))
}
