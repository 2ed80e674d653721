// Package shared centralizes response envelopes so every handler preserves
// the same found / not-found / rejected distinctions without inventing new
// ones.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "satnam/pkg/domain-errors"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope. Only
// rejected and bad_request responses carry the specific message; not_found
// and unavailable stay opaque so the body is byte-for-byte identical for
// every failure of that kind.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if disclosable(code) {
		if reason := reasonOf(err); reason != "" {
			body["reason"] = reason
		}
	}
	WriteJSON(w, dErrors.HTTPStatus(code), body)
}

// WriteLNURLError writes the LNURL-conventional error envelope. The reason
// for opaque codes is a fixed string, never an internal detail.
func WriteLNURLError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	reason := opaqueReason(code)
	if disclosable(code) {
		if r := reasonOf(err); r != "" {
			reason = r
		}
	}
	WriteJSON(w, dErrors.HTTPStatus(code), map[string]string{
		"status": "ERROR",
		"reason": reason,
	})
}

func disclosable(code dErrors.Code) bool {
	return code == dErrors.CodeRejected || code == dErrors.CodeBadRequest
}

func opaqueReason(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not found"
	case dErrors.CodeTimeout:
		return "timeout"
	default:
		return "service unavailable"
	}
}

func reasonOf(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
