package models

import "encoding/json"

// PayParams is the phase-1 response of the pull-payment handshake. It is
// constructed fresh per request and never persisted; phase 2 re-derives
// everything from the identifier and the supplied amount.
type PayParams struct {
	Callback string `json:"callback"`
	// Amounts are millisatoshis, one-thousandth of a satoshi.
	MinSendable int64 `json:"minSendable"`
	MaxSendable int64 `json:"maxSendable"`
	// Metadata is the display-only payee description, serialized as the
	// conventional [["text/plain",...],["text/identifier",...]] array. It
	// must never contain secret material or raw lookup keys.
	Metadata string `json:"metadata"`
	// CommentAllowed is the maximum comment length; 0 disables comments.
	CommentAllowed int    `json:"commentAllowed"`
	Tag            string `json:"tag"`
}

// NewMetadata builds the canonical metadata string for an identifier.
func NewMetadata(identifier string) (string, error) {
	entries := [][]string{
		{"text/plain", "Pay to " + identifier},
		{"text/identifier", identifier},
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SuccessAction is an opaque display hint returned with the instrument.
// Non-sensitive by contract.
type SuccessAction struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// PaymentRequest is the concrete instrument returned by phase 2.
type PaymentRequest struct {
	Invoice string `json:"pr"`
	// RouteHints is advisory and may be empty; hints never bind the payer.
	RouteHints    []string       `json:"routes"`
	SuccessAction *SuccessAction `json:"successAction,omitempty"`
	// Disposable reports whether the instrument may be reused. Synthesized
	// invoices are single-use.
	Disposable bool `json:"disposable"`
}
