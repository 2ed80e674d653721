package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so services can translate them into domain
// errors without inspecting backend-specific failures.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: no artifact or record exists under the given key
// - ErrUnavailable: backend or required secret unreachable; callers fail closed
// - ErrTimeout: a collaborator call exceeded its per-call bound
//
// For caller-input problems (bad amount, oversized comment), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrTimeout     = errors.New("timeout")
)
