package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	lnurlModel "satnam/internal/lnurl/models"
	"satnam/internal/platform/metrics"
	"satnam/internal/transport/http/shared"
	dErrors "satnam/pkg/domain-errors"
)

// PayService defines the interface for pull-payment negotiation.
type PayService interface {
	GetPayParameters(ctx context.Context, identifier string) (*lnurlModel.PayParams, error)
	RequestPayment(ctx context.Context, identifier string, amountMsat int64, comment string) (*lnurlModel.PaymentRequest, error)
}

// LNURLHandler serves the two-phase pull-payment endpoints.
type LNURLHandler struct {
	pay     PayService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewLNURLHandler creates a new LNURLHandler.
func NewLNURLHandler(pay PayService, logger *slog.Logger, m *metrics.Metrics) *LNURLHandler {
	return &LNURLHandler{pay: pay, logger: logger, metrics: m}
}

// Register registers the pull-payment routes with the chi router.
func (h *LNURLHandler) Register(r chi.Router) {
	r.Get("/.well-known/lnurlp/{name}", h.handlePayParameters)
	r.Get("/lnurlp/{name}/callback", h.handleCallback)
}

// handlePayParameters is phase 1 of the handshake.
func (h *LNURLHandler) handlePayParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	params, err := h.pay.GetPayParameters(ctx, name)
	if err != nil {
		h.observePayParams(outcomeLabel(err))
		shared.WriteLNURLError(w, err)
		return
	}

	h.observePayParams("ok")
	shared.WriteJSON(w, http.StatusOK, params)
}

// handleCallback is phase 2. The amount parameter must be a base-10 integer
// in millisatoshis; fractional or otherwise malformed values are rejected at
// this boundary, never coerced.
func (h *LNURLHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	amountMsat, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		h.observeInvoices("rejected")
		shared.WriteLNURLError(w, dErrors.New(dErrors.CodeRejected, "invalid amount"))
		return
	}
	comment := r.URL.Query().Get("comment")

	req, err := h.pay.RequestPayment(ctx, name, amountMsat, comment)
	if err != nil {
		h.observeInvoices(outcomeLabel(err))
		shared.WriteLNURLError(w, err)
		return
	}

	h.observeInvoices("issued")
	shared.WriteJSON(w, http.StatusOK, req)
}

// parseAmount accepts unsigned base-10 digits only. ParseInt alone would
// also take a leading sign, which is not a valid wire encoding here.
func parseAmount(raw string) (int64, error) {
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, fmt.Errorf("amount must be an unsigned integer")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (h *LNURLHandler) observePayParams(outcome string) {
	if h.metrics != nil {
		h.metrics.PayParams.WithLabelValues(outcome).Inc()
	}
}

func (h *LNURLHandler) observeInvoices(outcome string) {
	if h.metrics != nil {
		h.metrics.Invoices.WithLabelValues(outcome).Inc()
	}
}
