package models

import "time"

// RailKind enumerates the settlement rails the selector knows about.
type RailKind string

const (
	// RailInternalLedger is a book transfer inside the platform ledger,
	// admissible only between members of the same trust group.
	RailInternalLedger RailKind = "internal_ledger"
	// RailPullPayment is the LNURL-pay handshake over Lightning.
	RailPullPayment RailKind = "pull_payment"
	// RailTokenTransfer settles with bearer ecash tokens.
	RailTokenTransfer RailKind = "token_transfer"
)

// IsValid checks if the rail kind is one of the supported enum values.
func (k RailKind) IsValid() bool {
	switch k {
	case RailInternalLedger, RailPullPayment, RailTokenTransfer:
		return true
	}
	return false
}

// String returns the string representation.
func (k RailKind) String() string { return string(k) }

// PrivacyLevel is an ordinal leak-resistance rating.
type PrivacyLevel string

const (
	PrivacyLow    PrivacyLevel = "low"
	PrivacyMedium PrivacyLevel = "medium"
	PrivacyHigh   PrivacyLevel = "high"
)

// Candidate is one admissible settlement rail for a specific transfer.
// Candidates are computed fresh per request and never cached or persisted.
type Candidate struct {
	Rail             RailKind      `json:"rail"`
	EstimatedFeeMsat int64         `json:"estimated_fee_msat"`
	LatencyMin       time.Duration `json:"latency_min"`
	LatencyMax       time.Duration `json:"latency_max"`
	Privacy          PrivacyLevel  `json:"privacy"`
	// Reliability is a delivery probability in [0,1].
	Reliability float64 `json:"reliability"`
}
