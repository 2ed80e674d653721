package service

import (
	"time"

	"satnam/internal/routing/models"
)

// RailProfile declares the cost model for one rail. Fees are
// base + amount·ppm/1e6 in millisatoshis; latency is a fixed range and
// reliability a fixed delivery probability.
type RailProfile struct {
	BaseFeeMsat int64
	FeePPM      int64
	LatencyMin  time.Duration
	LatencyMax  time.Duration
	Privacy     models.PrivacyLevel
	Reliability float64
}

// Config holds per-rail profiles and collaborator bounds.
type Config struct {
	Profiles          map[models.RailKind]RailProfile
	MembershipTimeout time.Duration
}

// DefaultConfig returns the declared cost model: the internal ledger and
// token transfers carry no fee, the pull-payment rail charges a routing fee
// proportional to the amount.
func DefaultConfig() *Config {
	return &Config{
		MembershipTimeout: 2 * time.Second,
		Profiles: map[models.RailKind]RailProfile{
			models.RailInternalLedger: {
				LatencyMin:  0,
				LatencyMax:  2 * time.Second,
				Privacy:     models.PrivacyHigh,
				Reliability: 0.999,
			},
			models.RailPullPayment: {
				BaseFeeMsat: 1_000,
				FeePPM:      1_000,
				LatencyMin:  time.Second,
				LatencyMax:  15 * time.Second,
				Privacy:     models.PrivacyMedium,
				Reliability: 0.97,
			},
			models.RailTokenTransfer: {
				LatencyMin:  2 * time.Second,
				LatencyMax:  60 * time.Second,
				Privacy:     models.PrivacyHigh,
				Reliability: 0.95,
			},
		},
	}
}
