// Package invoice synthesizes and decodes BOLT11-style payment requests:
// bech32 encoding over a timestamped, tagged payload with a recoverable
// ECDSA signature from the node key. The embedded amount always equals the
// amount requested, never a rounded or coerced value.
package invoice

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Tagged field types per the BOLT11 five-bit alphabet.
const (
	tagPaymentHash     = 1  // p
	tagExpiry          = 6  // x
	tagPaymentSecret   = 16 // s
	tagDescriptionHash = 23 // h
	tagMinFinalCLTV    = 24 // c
)

const (
	hashLen      = 32
	timestampLen = 7 // 35 bits
	sigLen       = 104
	// compactSigMagic is the header offset for a compressed-key compact
	// signature; the recovery ID rides in the header byte.
	compactSigMagic = 27 + 4
)

// Params carries everything one invoice encodes.
type Params struct {
	AmountMsat      int64
	Timestamp       time.Time
	PaymentHash     [hashLen]byte
	PaymentSecret   [hashLen]byte
	DescriptionHash [hashLen]byte
	Expiry          time.Duration
	MinFinalCLTV    uint64
}

// Signer holds the node secret key used to sign synthesized invoices.
type Signer struct {
	key      *secp256k1.PrivateKey
	currency string
}

// NewSigner builds a signer from a 32-byte hex secret key and a currency
// prefix ("bc" mainnet, "tb" testnet).
func NewSigner(hexKey, currency string) (*Signer, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("node key is not valid hex: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("node key must be 32 bytes, got %d", len(raw))
	}
	if currency == "" {
		return nil, fmt.Errorf("currency prefix is required")
	}
	return &Signer{
		key:      secp256k1.PrivKeyFromBytes(raw),
		currency: currency,
	}, nil
}

// NodePubKey returns the compressed hex public key invoices recover to.
func (s *Signer) NodePubKey() string {
	return hex.EncodeToString(s.key.PubKey().SerializeCompressed())
}

// Encode produces the bech32 payment request for p.
func (s *Signer) Encode(p Params) (string, error) {
	if p.AmountMsat <= 0 {
		return "", fmt.Errorf("amount must be positive, got %d", p.AmountMsat)
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	hrp := "ln" + s.currency + hrpAmount(p.AmountMsat)

	data := encodeUint(uint64(p.Timestamp.Unix()), timestampLen)
	var err error
	if data, err = appendHashField(data, tagPaymentHash, p.PaymentHash); err != nil {
		return "", err
	}
	if data, err = appendHashField(data, tagDescriptionHash, p.DescriptionHash); err != nil {
		return "", err
	}
	if data, err = appendHashField(data, tagPaymentSecret, p.PaymentSecret); err != nil {
		return "", err
	}
	data = appendIntField(data, tagExpiry, uint64(p.Expiry/time.Second))
	data = appendIntField(data, tagMinFinalCLTV, p.MinFinalCLTV)

	sig, err := s.sign(hrp, data)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, append(data, sig...))
}

// sign hashes hrp||data (the five-bit groups repacked into bytes) and
// returns the 65-byte recoverable signature as 104 five-bit groups plus the
// recovery ID.
func (s *Signer) sign(hrp string, data []byte) ([]byte, error) {
	packed, err := bech32.ConvertBits(data, 5, 8, true)
	if err != nil {
		return nil, fmt.Errorf("pack signing payload: %w", err)
	}
	digest := sha256.Sum256(append([]byte(hrp), packed...))

	compact := secpecdsa.SignCompact(s.key, digest[:], true)
	recID := compact[0] - compactSigMagic
	sig64 := append(append([]byte{}, compact[1:]...), recID)

	groups, err := bech32.ConvertBits(sig64, 8, 5, true)
	if err != nil {
		return nil, fmt.Errorf("convert signature: %w", err)
	}
	return groups, nil
}

// hrpAmount renders the amount with the smallest multiplier that encodes it
// exactly, reducing to larger units when divisible.
func hrpAmount(msat int64) string {
	multipliers := []byte{'p', 'n', 'u', 'm'}
	value := msat * 10 // pico-bitcoin
	i := 0
	for i < len(multipliers)-1 && value%1000 == 0 {
		value /= 1000
		i++
	}
	if value%1000 == 0 {
		// Whole bitcoin: no multiplier letter.
		return strconv.FormatInt(value/1000, 10)
	}
	return strconv.FormatInt(value, 10) + string(multipliers[i])
}

func appendHashField(data []byte, tag byte, hash [hashLen]byte) ([]byte, error) {
	groups, err := bech32.ConvertBits(hash[:], 8, 5, true)
	if err != nil {
		return nil, fmt.Errorf("convert field %d: %w", tag, err)
	}
	data = append(data, tag, byte(len(groups)>>5), byte(len(groups)&31))
	return append(data, groups...), nil
}

func appendIntField(data []byte, tag byte, value uint64) []byte {
	groups := encodeUint(value, 0)
	data = append(data, tag, byte(len(groups)>>5), byte(len(groups)&31))
	return append(data, groups...)
}

// encodeUint renders value as big-endian five-bit groups. A non-zero width
// left-pads to exactly that many groups.
func encodeUint(value uint64, width int) []byte {
	var groups []byte
	for value > 0 {
		groups = append([]byte{byte(value & 31)}, groups...)
		value >>= 5
	}
	for len(groups) < width || len(groups) == 0 {
		groups = append([]byte{0}, groups...)
		if width == 0 {
			break
		}
	}
	return groups
}

// Decoded is a parsed and signature-verified payment request.
type Decoded struct {
	Currency        string
	AmountMsat      int64
	Timestamp       time.Time
	PaymentHash     [hashLen]byte
	PaymentSecret   [hashLen]byte
	DescriptionHash [hashLen]byte
	Expiry          time.Duration
	MinFinalCLTV    uint64
	// NodePubKey is the compressed hex key recovered from the signature.
	NodePubKey string
}

// Decode parses a payment request and recovers the signing key. It exists so
// counterparties (and tests) can independently check what an instrument
// commits to.
func Decode(inv string) (*Decoded, error) {
	hrp, data, err := bech32.DecodeNoLimit(strings.ToLower(inv))
	if err != nil {
		return nil, fmt.Errorf("decode bech32: %w", err)
	}
	if !strings.HasPrefix(hrp, "ln") {
		return nil, fmt.Errorf("unexpected prefix %q", hrp)
	}
	if len(data) < timestampLen+sigLen {
		return nil, fmt.Errorf("payload too short")
	}

	d := &Decoded{}
	if d.Currency, d.AmountMsat, err = parseHRP(hrp[2:]); err != nil {
		return nil, err
	}

	payload := data[:len(data)-sigLen]
	sigGroups := data[len(data)-sigLen:]

	d.Timestamp = time.Unix(int64(decodeUint(payload[:timestampLen])), 0).UTC()
	if err := d.parseTags(payload[timestampLen:]); err != nil {
		return nil, err
	}

	if d.NodePubKey, err = recoverKey(hrp, payload, sigGroups); err != nil {
		return nil, err
	}
	return d, nil
}

func parseHRP(s string) (string, int64, error) {
	split := len(s)
	for i, r := range s {
		if r >= '0' && r <= '9' {
			split = i
			break
		}
	}
	currency := s[:split]
	amount := s[split:]
	if currency == "" || amount == "" {
		return "", 0, fmt.Errorf("malformed amount hrp %q", s)
	}

	pico := int64(1000) // bare digits mean whole bitcoin: 10^12 pico
	switch amount[len(amount)-1] {
	case 'p':
		pico, amount = 1, amount[:len(amount)-1]
	case 'n':
		pico, amount = 1_000, amount[:len(amount)-1]
	case 'u':
		pico, amount = 1_000_000, amount[:len(amount)-1]
	case 'm':
		pico, amount = 1_000_000_000, amount[:len(amount)-1]
	default:
		pico = 1_000_000_000_000
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse amount: %w", err)
	}
	return currency, n * pico / 10, nil
}

func (d *Decoded) parseTags(fields []byte) error {
	for len(fields) >= 3 {
		tag := fields[0]
		length := int(fields[1])<<5 | int(fields[2])
		fields = fields[3:]
		if length > len(fields) {
			return fmt.Errorf("truncated field %d", tag)
		}
		value := fields[:length]
		fields = fields[length:]

		switch tag {
		case tagPaymentHash:
			if err := copyHash(&d.PaymentHash, value); err != nil {
				return err
			}
		case tagDescriptionHash:
			if err := copyHash(&d.DescriptionHash, value); err != nil {
				return err
			}
		case tagPaymentSecret:
			if err := copyHash(&d.PaymentSecret, value); err != nil {
				return err
			}
		case tagExpiry:
			d.Expiry = time.Duration(decodeUint(value)) * time.Second
		case tagMinFinalCLTV:
			d.MinFinalCLTV = decodeUint(value)
		}
		// Unknown tags are skipped, matching lenient wallet behavior.
	}
	if len(fields) != 0 {
		return fmt.Errorf("trailing field bytes")
	}
	return nil
}

func copyHash(dst *[hashLen]byte, groups []byte) error {
	raw, err := bech32.ConvertBits(groups, 5, 8, false)
	if err != nil {
		return fmt.Errorf("convert hash field: %w", err)
	}
	if len(raw) != hashLen {
		return fmt.Errorf("hash field is %d bytes, want %d", len(raw), hashLen)
	}
	copy(dst[:], raw)
	return nil
}

func recoverKey(hrp string, payload, sigGroups []byte) (string, error) {
	sig64, err := bech32.ConvertBits(sigGroups, 5, 8, false)
	if err != nil || len(sig64) != 65 {
		return "", fmt.Errorf("malformed signature")
	}

	packed, err := bech32.ConvertBits(payload, 5, 8, true)
	if err != nil {
		return "", fmt.Errorf("pack signed payload: %w", err)
	}
	digest := sha256.Sum256(append([]byte(hrp), packed...))

	compact := append([]byte{sig64[64] + compactSigMagic}, sig64[:64]...)
	pub, _, err := secpecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return "", fmt.Errorf("recover signing key: %w", err)
	}
	return hex.EncodeToString(pub.SerializeCompressed()), nil
}

func decodeUint(groups []byte) uint64 {
	var value uint64
	for _, g := range groups {
		value = value<<5 | uint64(g)
	}
	return value
}
