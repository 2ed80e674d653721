// Package audit emits operational events (service lifecycle, keyring loads,
// collaborator outages). Per-request data never flows through here: the core
// retains no transaction metadata, so events carry no identifiers, amounts,
// or lookup keys.
package audit

import (
	"context"
	"time"
)

// Category classifies events by their primary purpose.
type Category string

const (
	// CategorySecurity covers events relevant to security monitoring:
	// keyring loads and rotations, auth middleware configuration.
	CategorySecurity Category = "security"

	// CategoryOperations covers events useful for operational visibility:
	// startup, shutdown, collaborator outages.
	CategoryOperations Category = "operations"
)

// Event is a transport-agnostic operational fact.
type Event struct {
	Category  Category  `json:"category"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Operational event actions.
const (
	ActionServiceStarted        = "service_started"
	ActionServiceStopped        = "service_stopped"
	ActionKeyringLoaded         = "keyring_loaded"
	ActionStoreUnavailable      = "artifact_store_unavailable"
	ActionMembershipUnavailable = "membership_verifier_unavailable"
)

// Publisher captures operational events. Implementations must be safe for
// concurrent use and must not block request handling on broker availability.
type Publisher interface {
	Emit(ctx context.Context, event Event)
	Close()
}

// Noop discards all events. Used when no broker is configured.
type Noop struct{}

func (Noop) Emit(context.Context, Event) {}
func (Noop) Close()                      {}
