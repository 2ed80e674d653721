package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"satnam/internal/platform/metrics"
	resolverModel "satnam/internal/resolver/models"
	"satnam/internal/transport/http/shared"
	dErrors "satnam/pkg/domain-errors"
)

// ResolveService defines the interface for identifier resolution.
type ResolveService interface {
	Resolve(ctx context.Context, name, domain string) (resolverModel.PublicKey, error)
}

// ResolveHandler serves the direct resolution endpoint.
type ResolveHandler struct {
	resolver ResolveService
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewResolveHandler creates a new ResolveHandler.
func NewResolveHandler(resolver ResolveService, logger *slog.Logger, m *metrics.Metrics) *ResolveHandler {
	return &ResolveHandler{resolver: resolver, logger: logger, metrics: m}
}

// Register registers the resolution routes with the chi router.
func (h *ResolveHandler) Register(r chi.Router) {
	r.Get("/v1/resolve", h.handleResolve)
}

// resolveResponse carries only the public key. Lookup keys and integrity
// tags never leave the service.
type resolveResponse struct {
	PubKey string `json:"pubkey"`
}

func (h *ResolveHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.URL.Query().Get("name")
	domain := r.URL.Query().Get("domain")

	pubKey, err := h.resolver.Resolve(ctx, name, domain)
	if err != nil {
		h.observe(outcomeLabel(err))
		shared.WriteError(w, err)
		return
	}

	h.observe("ok")
	shared.WriteJSON(w, http.StatusOK, resolveResponse{PubKey: pubKey.String()})
}

func (h *ResolveHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.Resolutions.WithLabelValues(outcome).Inc()
	}
}

// outcomeLabel maps a service error to a low-cardinality metric label.
func outcomeLabel(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeRejected:
		return "rejected"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeTimeout:
		return "timeout"
	case dErrors.CodeUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}
